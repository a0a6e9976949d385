package payout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// stubTierRepo serves a fixed tier list and per-window completion
// counts keyed by window days.
type stubTierRepo struct {
	tiers  []Tier
	counts map[int]int
}

func (s *stubTierRepo) ListTiers(ctx context.Context) ([]Tier, error) { return s.tiers, nil }
func (s *stubTierRepo) GetTier(ctx context.Context, id uuid.UUID) (*Tier, error) {
	for i := range s.tiers {
		if s.tiers[i].ID == id {
			return &s.tiers[i], nil
		}
	}
	return nil, ErrTierNotFound
}
func (s *stubTierRepo) CreateTier(ctx context.Context, t *Tier) error { return nil }
func (s *stubTierRepo) UpdateTier(ctx context.Context, t *Tier) error { return nil }
func (s *stubTierRepo) DeleteTier(ctx context.Context, id uuid.UUID) error {
	return nil
}
func (s *stubTierRepo) CountCompletedSince(ctx context.Context, creativeID uuid.UUID, since time.Time) (int, error) {
	days := int(time.Until(since).Hours() / -24)
	// round to nearest window size
	best, bestDiff := 0, 1<<30
	for w := range s.counts {
		diff := days - w
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best, bestDiff = w, diff
		}
	}
	return s.counts[best], nil
}

func tier(min, window, percent int) Tier {
	return Tier{
		ID:                  uuid.New(),
		MinCompletedTickets: min,
		TimeWindowDays:      window,
		PayoutPercent:       percent,
		CreatedAt:           time.Now(),
	}
}

func TestCurrentPercent_NoTiersFallsBackToBase(t *testing.T) {
	svc := NewService(&stubTierRepo{counts: map[int]int{}}, 60)

	percent, err := svc.CurrentPercent(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if percent != 60 {
		t.Fatalf("expected base percent 60, got %d", percent)
	}
}

func TestCurrentPercent_QualifiesFirstTierOnly(t *testing.T) {
	repo := &stubTierRepo{
		tiers:  []Tier{tier(5, 30, 70), tier(10, 30, 80)},
		counts: map[int]int{30: 7},
	}
	svc := NewService(repo, 60)

	percent, err := svc.CurrentPercent(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if percent != 70 {
		t.Fatalf("expected 70 with 7 completions, got %d", percent)
	}
}

func TestCurrentPercent_QualifiesHighestTier(t *testing.T) {
	repo := &stubTierRepo{
		tiers:  []Tier{tier(5, 30, 70), tier(10, 30, 80)},
		counts: map[int]int{30: 12},
	}
	svc := NewService(repo, 60)

	percent, err := svc.CurrentPercent(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if percent != 80 {
		t.Fatalf("expected 80 with 12 completions, got %d", percent)
	}
}

func TestCurrentPercent_BelowAllTiers(t *testing.T) {
	repo := &stubTierRepo{
		tiers:  []Tier{tier(5, 30, 70), tier(10, 30, 80)},
		counts: map[int]int{30: 3},
	}
	svc := NewService(repo, 60)

	percent, err := svc.CurrentPercent(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if percent != 60 {
		t.Fatalf("expected base 60 with 3 completions, got %d", percent)
	}
}

func TestCurrentStatus_ReportsQualifiedTier(t *testing.T) {
	tiers := []Tier{tier(5, 30, 70), tier(10, 30, 80)}
	repo := &stubTierRepo{tiers: tiers, counts: map[int]int{30: 7}}
	svc := NewService(repo, 60)

	status, err := svc.CurrentStatus(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.CurrentPercent != 70 {
		t.Fatalf("expected current percent 70, got %d", status.CurrentPercent)
	}
	if status.QualifiedTier == nil || status.QualifiedTier.ID != tiers[0].ID {
		t.Fatalf("expected first tier qualified, got %+v", status.QualifiedTier)
	}
	if status.BasePercent != 60 {
		t.Fatalf("expected base percent 60, got %d", status.BasePercent)
	}
	if len(status.Tiers) != 2 {
		t.Fatalf("expected 2 tiers listed, got %d", len(status.Tiers))
	}
}

func TestScaleTokens(t *testing.T) {
	svc := NewService(&stubTierRepo{}, 60)

	cases := []struct {
		base    int64
		percent int
		want    int64
	}{
		{60, 60, 60}, // base percent, unchanged
		{60, 70, 70}, // 60 * 70/60
		{60, 80, 80},
		{5, 70, 6}, // round(5.833) = 6
		{3, 70, 4}, // round(3.5) rounds half away from zero
		{0, 80, 0},
	}
	for _, tc := range cases {
		if got := svc.ScaleTokens(tc.base, tc.percent); got != tc.want {
			t.Errorf("ScaleTokens(%d, %d) = %d, want %d", tc.base, tc.percent, got, tc.want)
		}
	}
}
