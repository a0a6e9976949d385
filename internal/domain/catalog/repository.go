package catalog

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

const jobTypeColumns = `id, category_id, name, description, estimated_hours, token_cost, creative_payout_tokens, is_active, created_at, updated_at`

func (r *Repository) ListJobTypes(ctx context.Context, activeOnly bool) ([]JobType, error) {
	var list []JobType
	query := `SELECT ` + jobTypeColumns + ` FROM job_types`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`
	err := r.db.SelectContext(ctx, &list, query)
	return list, err
}

func (r *Repository) GetJobType(ctx context.Context, id uuid.UUID) (*JobType, error) {
	var jt JobType
	err := r.db.GetContext(ctx, &jt, `SELECT `+jobTypeColumns+` FROM job_types WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &jt, nil
}

func (r *Repository) CreateJobType(ctx context.Context, jt *JobType) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO job_types (id, category_id, name, description, estimated_hours, token_cost, creative_payout_tokens, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, jt.ID, jt.CategoryID, jt.Name, jt.Description, jt.EstimatedHours, jt.TokenCost, jt.CreativePayoutTokens, jt.IsActive, jt.CreatedAt, jt.UpdatedAt)
	return err
}

func (r *Repository) UpdateJobType(ctx context.Context, jt *JobType) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE job_types
		SET category_id = $1, name = $2, description = $3, estimated_hours = $4,
		    token_cost = $5, creative_payout_tokens = $6, is_active = $7, updated_at = now()
		WHERE id = $8
	`, jt.CategoryID, jt.Name, jt.Description, jt.EstimatedHours, jt.TokenCost, jt.CreativePayoutTokens, jt.IsActive, jt.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobTypeNotFound
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	var list []Category
	err := r.db.SelectContext(ctx, &list, `
		SELECT id, name, is_active, created_at FROM job_type_categories ORDER BY name
	`)
	return list, err
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	err := r.db.GetContext(ctx, &c, `
		SELECT id, name, is_active, created_at FROM job_type_categories WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO job_type_categories (id, name, is_active, created_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.IsActive, c.CreatedAt)
	return err
}

func (r *Repository) UpdateCategory(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE job_type_categories SET name = $1, is_active = $2 WHERE id = $3
	`, c.Name, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// MigrateCategory re-parents every job type of the source category onto
// the target, then deactivates the source. One transaction: the catalog
// never shows a half-migrated category.
func (r *Repository) MigrateCategory(ctx context.Context, sourceID, targetID uuid.UUID) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE job_types SET category_id = $1, updated_at = now() WHERE category_id = $2
	`, targetID, sourceID)
	if err != nil {
		return 0, err
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE job_type_categories SET is_active = false WHERE id = $1
	`, sourceID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(moved), nil
}
