package withdrawal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/brandbite/brandbite-api/internal/domain/ledger"
)

type Service struct {
	repo   *Repository
	ledger *ledger.Service
}

func NewService(repo *Repository, ledgerSvc *ledger.Service) *Service {
	return &Service{repo: repo, ledger: ledgerSvc}
}

// Request creates a PENDING withdrawal. The available balance is the
// ledger balance minus all other in-flight (PENDING/APPROVED) requests,
// so one balance cannot back several concurrent withdrawals. The check
// runs under the creative's balance row lock.
func (s *Service) Request(ctx context.Context, creativeID uuid.UUID, amountTokens int64) (*Withdrawal, error) {
	if amountTokens <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	balance, err := s.ledger.BalanceForUpdateTx(ctx, tx, ledger.UserOwner(creativeID))
	if err != nil {
		return nil, err
	}

	inFlight, err := s.repo.SumInFlightTx(ctx, tx, creativeID)
	if err != nil {
		return nil, err
	}

	if amountTokens > balance-inFlight {
		return nil, ErrInsufficientAvailable
	}

	w := &Withdrawal{
		ID:           uuid.New(),
		CreativeID:   creativeID,
		AmountTokens: amountTokens,
		Status:       StatusPending,
		RequestedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateTx(ctx, tx, w); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().Str("withdrawal_id", w.ID.String()).Str("creative_id", creativeID.String()).Int64("amount", amountTokens).Msg("withdrawal requested")
	return w, nil
}

// Approve moves PENDING → APPROVED
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Withdrawal, error) {
	return s.transition(ctx, id, StatusApproved, "", func(ctx context.Context, tx *sqlx.Tx, w *Withdrawal, at time.Time) error {
		return s.repo.SetApprovedTx(ctx, tx, id, at)
	})
}

// Reject moves PENDING → REJECTED. No ledger effect: funds were never
// debited at request time.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) (*Withdrawal, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.transition(ctx, id, StatusRejected, reason, func(ctx context.Context, tx *sqlx.Tx, w *Withdrawal, at time.Time) error {
		return s.repo.SetRejectedTx(ctx, tx, id, reason, at)
	})
}

// MarkPaid moves APPROVED → PAID and performs the actual ledger DEBIT.
// This is the point of fund movement; the status flip and the debit
// commit together.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*Withdrawal, error) {
	return s.transition(ctx, id, StatusPaid, "", func(ctx context.Context, tx *sqlx.Tx, w *Withdrawal, at time.Time) error {
		if _, err := s.ledger.DebitTx(ctx, tx, ledger.UserOwner(w.CreativeID), w.AmountTokens, "withdrawal payout", nil); err != nil {
			return err
		}
		return s.repo.SetPaidTx(ctx, tx, id, at)
	})
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to Status, reason string, apply func(context.Context, *sqlx.Tx, *Withdrawal, time.Time) error) (*Withdrawal, error) {
	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w, err := s.repo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(w.Status, to) {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	if err := apply(ctx, tx, w, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	w.Status = to
	switch to {
	case StatusApproved:
		w.ApprovedAt = &now
	case StatusRejected:
		w.RejectedAt = &now
		w.AdminRejectReason = &reason
	case StatusPaid:
		w.PaidAt = &now
	}

	log.Info().Str("withdrawal_id", id.String()).Str("status", string(to)).Msg("withdrawal transitioned")
	return w, nil
}

// ListForCreative returns a creative's withdrawal history
func (s *Service) ListForCreative(ctx context.Context, creativeID uuid.UUID) ([]Withdrawal, error) {
	return s.repo.ListByCreative(ctx, creativeID)
}

// ListAll returns withdrawals for the admin page
// PendingTotal reports a creative's total PENDING withdrawal amount.
func (s *Service) PendingTotal(ctx context.Context, creativeID uuid.UUID) (int64, error) {
	return s.repo.SumPending(ctx, creativeID)
}

func (s *Service) ListAll(ctx context.Context, status *Status, limit, offset int) ([]Withdrawal, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListAll(ctx, status, limit, offset)
}
