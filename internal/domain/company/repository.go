package company

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := r.db.GetContext(ctx, &c, `
		SELECT id, name, plan_id, created_at, updated_at FROM companies WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Create(ctx context.Context, c *Company) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, plan_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.PlanID, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *Repository) Update(ctx context.Context, c *Company) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE companies SET name = $1, plan_id = $2, updated_at = now() WHERE id = $3
	`, c.Name, c.PlanID, c.ID)
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

func (r *Repository) ListMembers(ctx context.Context, companyID uuid.UUID) ([]Member, error) {
	var members []Member
	err := r.db.SelectContext(ctx, &members, `
		SELECT m.company_id, m.user_id, m.company_role, m.created_at, u.name, u.email
		FROM company_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.company_id = $1
		ORDER BY u.name
	`, companyID)
	return members, err
}

func (r *Repository) AddMember(ctx context.Context, m *Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_members (company_id, user_id, company_role, created_at)
		VALUES ($1, $2, $3, $4)
	`, m.CompanyID, m.UserID, m.CompanyRole, m.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyMember
		}
		return err
	}
	return nil
}

// CompanyIDForUser resolves a customer's company scope (first membership).
// Satisfies auth.MembershipRepo.
func (r *Repository) CompanyIDForUser(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	var companyID uuid.UUID
	err := r.db.GetContext(ctx, &companyID, `
		SELECT company_id FROM company_members WHERE user_id = $1 ORDER BY created_at LIMIT 1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &companyID, nil
}
