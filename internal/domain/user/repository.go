package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

const userColumns = `id, email, password_hash, name, role, demo_persona, paused_at, pause_expires_at, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, demo_persona, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.DemoPersona, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByDemoPersona looks up the account backing a demo persona cookie value.
func (r *Repository) GetByDemoPersona(ctx context.Context, persona string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE demo_persona = $1`, persona)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownPersona
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ListCreatives(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY name
	`, RoleCreative)
	return users, err
}

// SetPause pauses a creative until the given expiry (nil expiry = indefinite).
func (r *Repository) SetPause(ctx context.Context, id uuid.UUID, until *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET paused_at = now(), pause_expires_at = $1, updated_at = now()
		WHERE id = $2 AND role = $3
	`, until, id, RoleCreative)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotACreative
	}
	return nil
}

// ClearPause resumes a paused creative
func (r *Repository) ClearPause(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET paused_at = NULL, pause_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	return err
}
