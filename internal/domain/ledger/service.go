package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Credit appends a CREDIT entry and bumps the cached balance
func (s *Service) Credit(ctx context.Context, owner Owner, amount int64, reason string, ticketID *uuid.UUID) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	entry, err := s.repo.Apply(ctx, owner, DirectionCredit, amount, reason, ticketID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("owner_type", string(owner.Type)).Str("owner_id", owner.ID.String()).Int64("amount", amount).Str("reason", reason).Msg("ledger credit applied")
	return entry, nil
}

// Debit appends a DEBIT entry; fails with ErrInsufficientFunds rather
// than letting the balance go negative
func (s *Service) Debit(ctx context.Context, owner Owner, amount int64, reason string, ticketID *uuid.UUID) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	entry, err := s.repo.Apply(ctx, owner, DirectionDebit, amount, reason, ticketID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("owner_type", string(owner.Type)).Str("owner_id", owner.ID.String()).Int64("amount", amount).Str("reason", reason).Msg("ledger debit applied")
	return entry, nil
}

// CreditTx is Credit inside a caller-owned transaction
func (s *Service) CreditTx(ctx context.Context, tx *sqlx.Tx, owner Owner, amount int64, reason string, ticketID *uuid.UUID) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.repo.ApplyTx(ctx, tx, owner, DirectionCredit, amount, reason, ticketID)
}

// DebitTx is Debit inside a caller-owned transaction
func (s *Service) DebitTx(ctx context.Context, tx *sqlx.Tx, owner Owner, amount int64, reason string, ticketID *uuid.UUID) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.repo.ApplyTx(ctx, tx, owner, DirectionDebit, amount, reason, ticketID)
}

// BeginTx exposes a transaction for flows that pair a movement with
// their own writes (ticket completion, withdrawal payout)
func (s *Service) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return s.repo.BeginTx(ctx)
}

func (s *Service) Balance(ctx context.Context, owner Owner) (int64, error) {
	return s.repo.Balance(ctx, owner)
}

func (s *Service) History(ctx context.Context, owner Owner, limit, offset int) ([]Entry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListForOwner(ctx, owner, limit, offset)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Entry, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}

// BalanceForUpdateTx reads a balance under a row lock inside a
// caller-owned transaction
func (s *Service) BalanceForUpdateTx(ctx context.Context, tx *sqlx.Tx, owner Owner) (int64, error) {
	return s.repo.LockBalanceTx(ctx, tx, owner)
}
