package withdrawal

import (
	"context"
	"database/sql"
	"errors"
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

const withdrawalColumns = `id, creative_id, amount_tokens, status, admin_reject_reason, requested_at, approved_at, rejected_at, paid_at`

func (r *Repository) CreateTx(ctx context.Context, tx *sqlx.Tx, w *Withdrawal) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO withdrawals (id, creative_id, amount_tokens, status, requested_at)
		VALUES ($1, $2, $3, $4, $5)
	`, w.ID, w.CreativeID, w.AmountTokens, w.Status, w.RequestedAt)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error) {
	var w Withdrawal
	err := r.db.GetContext(ctx, &w, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetForUpdateTx locks a withdrawal row so concurrent admin actions on
// the same request serialize.
func (r *Repository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Withdrawal, error) {
	var w Withdrawal
	err := tx.GetContext(ctx, &w, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// SumInFlightTx sums PENDING and APPROVED amounts for a creative inside
// the caller's transaction.
func (r *Repository) SumInFlightTx(ctx context.Context, tx *sqlx.Tx, creativeID uuid.UUID) (int64, error) {
	var sum int64
	err := tx.GetContext(ctx, &sum, `
		SELECT COALESCE(sum(amount_tokens), 0) FROM withdrawals
		WHERE creative_id = $1 AND status IN ($2, $3)
	`, creativeID, StatusPending, StatusApproved)
	return sum, err
}

// SumPending sums a creative's PENDING withdrawal amounts.
func (r *Repository) SumPending(ctx context.Context, creativeID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.GetContext(ctx, &sum, `
		SELECT COALESCE(sum(amount_tokens), 0) FROM withdrawals
		WHERE creative_id = $1 AND status = $2
	`, creativeID, StatusPending)
	return sum, err
}

func (r *Repository) SetApprovedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, at time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE withdrawals SET status = $1, approved_at = $2 WHERE id = $3
	`, StatusApproved, at, id)
	return err
}

func (r *Repository) SetRejectedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, reason string, at time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE withdrawals SET status = $1, admin_reject_reason = $2, rejected_at = $3 WHERE id = $4
	`, StatusRejected, reason, at, id)
	return err
}

func (r *Repository) SetPaidTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, at time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE withdrawals SET status = $1, paid_at = $2 WHERE id = $3
	`, StatusPaid, at, id)
	return err
}

func (r *Repository) ListByCreative(ctx context.Context, creativeID uuid.UUID) ([]Withdrawal, error) {
	var list []Withdrawal
	err := r.db.SelectContext(ctx, &list, `
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE creative_id = $1
		ORDER BY requested_at DESC
	`, creativeID)
	return list, err
}

// ListAll returns withdrawals for the admin page, optionally filtered by status
func (r *Repository) ListAll(ctx context.Context, status *Status, limit, offset int) ([]Withdrawal, int, error) {
	var list []Withdrawal
	var total int

	if status != nil {
		if err := r.db.SelectContext(ctx, &list, `
			SELECT `+withdrawalColumns+` FROM withdrawals
			WHERE status = $1
			ORDER BY requested_at DESC
			LIMIT $2 OFFSET $3
		`, *status, limit, offset); err != nil {
			return nil, 0, err
		}
		if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM withdrawals WHERE status = $1`, *status); err != nil {
			return nil, 0, err
		}
		return list, total, nil
	}

	if err := r.db.SelectContext(ctx, &list, `
		SELECT `+withdrawalColumns+` FROM withdrawals
		ORDER BY requested_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset); err != nil {
		return nil, 0, err
	}
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM withdrawals`); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
