package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/domain/ledger"
	"github.com/brandbite/brandbite-api/internal/domain/ticket"
	"github.com/brandbite/brandbite-api/internal/domain/user"
)

type stubCreatives struct{ users []user.User }

func (s *stubCreatives) ListCreatives(ctx context.Context) ([]user.User, error) {
	return s.users, nil
}

type stubTicketStats struct {
	counts    map[ticket.Status]int
	open      []ticket.Ticket
	completed int
}

func (s *stubTicketStats) CountByDesignerAndStatus(ctx context.Context, designerID uuid.UUID) (map[ticket.Status]int, error) {
	return s.counts, nil
}

func (s *stubTicketStats) CountCompletedSince(ctx context.Context, designerID uuid.UUID, since time.Time) (int, error) {
	return s.completed, nil
}

func (s *stubTicketStats) ListOpenByDesigner(ctx context.Context, designerID uuid.UUID) ([]ticket.Ticket, error) {
	return s.open, nil
}

type stubPayouts struct{ percent int }

func (s *stubPayouts) CurrentPercent(ctx context.Context, creativeID uuid.UUID) (int, error) {
	return s.percent, nil
}

type stubBalances struct{ balance int64 }

func (s *stubBalances) Balance(ctx context.Context, owner ledger.Owner) (int64, error) {
	return s.balance, nil
}

type stubWithdrawals struct{ pending int64 }

func (s *stubWithdrawals) PendingTotal(ctx context.Context, creativeID uuid.UUID) (int64, error) {
	return s.pending, nil
}

func TestDesignerAnalytics(t *testing.T) {
	creative := user.User{ID: uuid.New(), Email: "lena@studio.dev", Name: "Lena", Role: user.RoleCreative}

	svc := NewService(
		&stubCreatives{users: []user.User{creative}},
		&stubTicketStats{
			counts: map[ticket.Status]int{
				ticket.StatusInProgress: 2,
				ticket.StatusInReview:   1,
			},
			open: []ticket.Ticket{
				{Status: ticket.StatusInProgress, Priority: ticket.PriorityHigh},
				{Status: ticket.StatusInProgress, Priority: ticket.PriorityMedium},
				{Status: ticket.StatusInReview, Priority: ticket.PriorityLow},
			},
			completed: 7,
		},
		&stubPayouts{percent: 70},
		&stubBalances{balance: 420},
		&stubWithdrawals{pending: 150},
	)

	summaries, err := svc.DesignerAnalytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.CreativeID != creative.ID {
		t.Fatalf("wrong creative id")
	}
	if s.LoadScore != 60 { // 10 * (3 + 2 + 1)
		t.Fatalf("expected load score 60, got %d", s.LoadScore)
	}
	if s.Completed30Days != 7 {
		t.Fatalf("expected 7 completions, got %d", s.Completed30Days)
	}
	if s.PayoutPercent != 70 {
		t.Fatalf("expected payout percent 70, got %d", s.PayoutPercent)
	}
	if s.TokenBalance != 420 {
		t.Fatalf("expected balance 420, got %d", s.TokenBalance)
	}
	if s.PendingWithdrawn != 150 {
		t.Fatalf("expected pending 150, got %d", s.PendingWithdrawn)
	}
	if s.StatusCounts[ticket.StatusInProgress] != 2 {
		t.Fatalf("status counts not carried through")
	}
}

func TestDesignerAnalytics_NoCreatives(t *testing.T) {
	svc := NewService(&stubCreatives{}, &stubTicketStats{}, &stubPayouts{percent: 60}, &stubBalances{}, &stubWithdrawals{})

	summaries, err := svc.DesignerAnalytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty result, got %d", len(summaries))
	}
}
