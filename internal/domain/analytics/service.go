package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/domain/ledger"
	"github.com/brandbite/brandbite-api/internal/domain/ticket"
	"github.com/brandbite/brandbite-api/internal/domain/user"
)

const completionWindow = 30 * 24 * time.Hour

// CreativeSummary is one row of the designer analytics table.
type CreativeSummary struct {
	CreativeID       uuid.UUID             `json:"creative_id"`
	Name             string                `json:"name"`
	Email            string                `json:"email"`
	Paused           bool                  `json:"paused"`
	StatusCounts     map[ticket.Status]int `json:"status_counts"`
	LoadScore        int                   `json:"load_score"`
	Completed30Days  int                   `json:"completed_30_days"`
	PayoutPercent    int                   `json:"payout_percent"`
	TokenBalance     int64                 `json:"token_balance"`
	PendingWithdrawn int64                 `json:"pending_withdrawal_total"`
}

// CreativeDirectory lists creatives for the analytics sweep.
type CreativeDirectory interface {
	ListCreatives(ctx context.Context) ([]user.User, error)
}

// TicketStats exposes the per-creative ticket aggregates.
type TicketStats interface {
	CountByDesignerAndStatus(ctx context.Context, designerID uuid.UUID) (map[ticket.Status]int, error)
	CountCompletedSince(ctx context.Context, designerID uuid.UUID, since time.Time) (int, error)
	ListOpenByDesigner(ctx context.Context, designerID uuid.UUID) ([]ticket.Ticket, error)
}

// PayoutRates resolves a creative's current payout percentage.
type PayoutRates interface {
	CurrentPercent(ctx context.Context, creativeID uuid.UUID) (int, error)
}

// Balances reads creative token balances.
type Balances interface {
	Balance(ctx context.Context, owner ledger.Owner) (int64, error)
}

// Withdrawals reports pending withdrawal totals.
type Withdrawals interface {
	PendingTotal(ctx context.Context, creativeID uuid.UUID) (int64, error)
}

type Service struct {
	creatives   CreativeDirectory
	tickets     TicketStats
	payouts     PayoutRates
	balances    Balances
	withdrawals Withdrawals
}

func NewService(creatives CreativeDirectory, tickets TicketStats, payouts PayoutRates, balances Balances, withdrawals Withdrawals) *Service {
	return &Service{
		creatives:   creatives,
		tickets:     tickets,
		payouts:     payouts,
		balances:    balances,
		withdrawals: withdrawals,
	}
}

// DesignerAnalytics builds the per-creative summary table for the
// admin dashboard.
func (s *Service) DesignerAnalytics(ctx context.Context) ([]CreativeSummary, error) {
	creatives, err := s.creatives.ListCreatives(ctx)
	if err != nil {
		return nil, err
	}

	since := time.Now().Add(-completionWindow)
	summaries := make([]CreativeSummary, 0, len(creatives))

	for _, c := range creatives {
		counts, err := s.tickets.CountByDesignerAndStatus(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		open, err := s.tickets.ListOpenByDesigner(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		completed, err := s.tickets.CountCompletedSince(ctx, c.ID, since)
		if err != nil {
			return nil, err
		}

		percent, err := s.payouts.CurrentPercent(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		balance, err := s.balances.Balance(ctx, ledger.UserOwner(c.ID))
		if err != nil {
			return nil, err
		}

		pending, err := s.withdrawals.PendingTotal(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, CreativeSummary{
			CreativeID:       c.ID,
			Name:             c.Name,
			Email:            c.Email,
			Paused:           c.IsPaused(),
			StatusCounts:     counts,
			LoadScore:        ticket.LoadScore(open),
			Completed30Days:  completed,
			PayoutPercent:    percent,
			TokenBalance:     balance,
			PendingWithdrawn: pending,
		})
	}

	return summaries, nil
}
