package payout

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

// ListTiers returns tiers in creation order; the deterministic tie-break
// for equal percents relies on this ordering.
func (r *Repository) ListTiers(ctx context.Context) ([]Tier, error) {
	var tiers []Tier
	err := r.db.SelectContext(ctx, &tiers, `
		SELECT id, name, min_completed_tickets, time_window_days, payout_percent, created_at
		FROM payout_tiers
		ORDER BY created_at, id
	`)
	return tiers, err
}

func (r *Repository) GetTier(ctx context.Context, id uuid.UUID) (*Tier, error) {
	var t Tier
	err := r.db.GetContext(ctx, &t, `
		SELECT id, name, min_completed_tickets, time_window_days, payout_percent, created_at
		FROM payout_tiers WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) CreateTier(ctx context.Context, t *Tier) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payout_tiers (id, name, min_completed_tickets, time_window_days, payout_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.Name, t.MinCompletedTickets, t.TimeWindowDays, t.PayoutPercent, t.CreatedAt)
	return err
}

func (r *Repository) UpdateTier(ctx context.Context, t *Tier) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payout_tiers
		SET name = $1, min_completed_tickets = $2, time_window_days = $3, payout_percent = $4
		WHERE id = $5
	`, t.Name, t.MinCompletedTickets, t.TimeWindowDays, t.PayoutPercent, t.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTierNotFound
	}
	return nil
}

func (r *Repository) DeleteTier(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payout_tiers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTierNotFound
	}
	return nil
}

// CountCompletedSince counts a creative's DONE tickets completed at or
// after the cutoff.
func (r *Repository) CountCompletedSince(ctx context.Context, creativeID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT count(*) FROM tickets
		WHERE designer_id = $1 AND status = 'DONE' AND completed_at >= $2
	`, creativeID, since)
	return count, err
}
