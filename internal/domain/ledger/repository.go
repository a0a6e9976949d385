package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// BeginTx starts a transaction callers can use to combine a ledger
// movement with their own writes.
func (r *Repository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (r *Repository) ensureBalance(ctx context.Context, q sqlx.ExtContext, owner Owner) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO token_balances (owner_type, owner_id, balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (owner_type, owner_id) DO NOTHING
	`, owner.Type, owner.ID)
	return err
}

// lockBalance takes a row lock on the owner's balance so concurrent
// movements against the same owner serialize.
func (r *Repository) lockBalance(ctx context.Context, tx *sqlx.Tx, owner Owner) (int64, error) {
	if err := r.ensureBalance(ctx, tx, owner); err != nil {
		return 0, err
	}

	var balance int64
	err := tx.GetContext(ctx, &balance, `
		SELECT balance FROM token_balances
		WHERE owner_type = $1 AND owner_id = $2
		FOR UPDATE
	`, owner.Type, owner.ID)
	return balance, err
}

func (r *Repository) updateBalance(ctx context.Context, tx *sqlx.Tx, owner Owner, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE token_balances SET balance = $1, updated_at = now()
		WHERE owner_type = $2 AND owner_id = $3
	`, balance, owner.Type, owner.ID)
	return err
}

func (r *Repository) insertEntry(ctx context.Context, tx *sqlx.Tx, e *Entry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, owner_type, owner_id, direction, amount, balance_before, balance_after, reason, ticket_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, e.ID, e.OwnerType, e.OwnerID, e.Direction, e.Amount, e.BalanceBefore, e.BalanceAfter, e.Reason, e.TicketID, e.CreatedAt)
	return err
}

// ApplyTx records a movement inside an existing transaction. The caller
// owns commit/rollback.
func (r *Repository) ApplyTx(ctx context.Context, tx *sqlx.Tx, owner Owner, direction Direction, amount int64, reason string, ticketID *uuid.UUID) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	balance, err := r.lockBalance(ctx, tx, owner)
	if err != nil {
		return nil, err
	}

	next := balance + amount
	if direction == DirectionDebit {
		if amount > balance {
			return nil, ErrInsufficientFunds
		}
		next = balance - amount
	}

	entry := &Entry{
		ID:            uuid.New(),
		OwnerType:     owner.Type,
		OwnerID:       owner.ID,
		Direction:     direction,
		Amount:        amount,
		BalanceBefore: balance,
		BalanceAfter:  next,
		Reason:        reason,
		TicketID:      ticketID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := r.updateBalance(ctx, tx, owner, next); err != nil {
		return nil, err
	}
	if err := r.insertEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Apply records a movement in its own transaction
func (r *Repository) Apply(ctx context.Context, owner Owner, direction Direction, amount int64, reason string, ticketID *uuid.UUID) (*Entry, error) {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entry, err := r.ApplyTx(ctx, tx, owner, direction, amount, reason, ticketID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Balance returns the cached running total for an owner
func (r *Repository) Balance(ctx context.Context, owner Owner) (int64, error) {
	if err := r.ensureBalance(ctx, r.db, owner); err != nil {
		return 0, err
	}

	var balance int64
	err := r.db.GetContext(ctx, &balance, `
		SELECT balance FROM token_balances WHERE owner_type = $1 AND owner_id = $2
	`, owner.Type, owner.ID)
	return balance, err
}

// ListForOwner returns an owner's entries, newest first
func (r *Repository) ListForOwner(ctx context.Context, owner Owner, limit, offset int) ([]Entry, error) {
	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, owner_type, owner_id, direction, amount, balance_before, balance_after, reason, ticket_id, created_at
		FROM ledger_entries
		WHERE owner_type = $1 AND owner_id = $2
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4
	`, owner.Type, owner.ID, limit, offset)
	return entries, err
}

// List returns entries across all owners for the admin ledger page
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Entry, int, error) {
	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, owner_type, owner_id, direction, amount, balance_before, balance_after, reason, ticket_id, created_at
		FROM ledger_entries
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM ledger_entries`); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// LockBalanceTx reads an owner's balance under a row lock. Callers use
// this to make a read-check-write sequence safe without moving funds.
func (r *Repository) LockBalanceTx(ctx context.Context, tx *sqlx.Tx, owner Owner) (int64, error) {
	return r.lockBalance(ctx, tx, owner)
}
