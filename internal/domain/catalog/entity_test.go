package catalog

import "testing"

func TestDeriveCosts(t *testing.T) {
	cases := []struct {
		hours      int
		wantCost   int64
		wantPayout int64
	}{
		{1, 1, 1},   // round(0.6) = 1
		{2, 2, 1},   // round(1.2) = 1
		{5, 5, 3},   // round(3.0) = 3
		{8, 8, 5},   // round(4.8) = 5
		{10, 10, 6}, // round(6.0) = 6
		{0, 0, 0},
	}

	for _, tc := range cases {
		jt := JobType{EstimatedHours: tc.hours}
		jt.DeriveCosts()
		if jt.TokenCost != tc.wantCost {
			t.Errorf("hours %d: token cost = %d, want %d", tc.hours, jt.TokenCost, tc.wantCost)
		}
		if jt.CreativePayoutTokens != tc.wantPayout {
			t.Errorf("hours %d: payout = %d, want %d", tc.hours, jt.CreativePayoutTokens, tc.wantPayout)
		}
	}
}
