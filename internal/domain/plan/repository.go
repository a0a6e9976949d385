package plan

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const planColumns = `id, name, description, price_monthly, monthly_token_grant, is_active, created_at, updated_at`

func (r *Repository) List(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, `SELECT `+planColumns+` FROM plans ORDER BY price_monthly`)
	return plans, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	var p Plan
	err := r.db.GetContext(ctx, &p, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, p *Plan) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO plans (id, name, description, price_monthly, monthly_token_grant, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.Name, p.Description, p.PriceMonthly, p.MonthlyTokenGrant, p.IsActive, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *Repository) Update(ctx context.Context, p *Plan) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE plans
		SET name = $1, description = $2, price_monthly = $3, monthly_token_grant = $4, is_active = $5, updated_at = now()
		WHERE id = $6
	`, p.Name, p.Description, p.PriceMonthly, p.MonthlyTokenGrant, p.IsActive, p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
