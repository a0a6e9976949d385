package asset

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

func (r *Repository) Create(ctx context.Context, a *Asset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (id, ticket_id, company_id, uploaded_by, object_key,
			thumbnail_key, file_name, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.TicketID, a.CompanyID, a.UploadedBy, a.ObjectKey,
		a.ThumbnailKey, a.FileName, a.ContentType, a.Size, a.CreatedAt)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	var a Asset
	err := r.db.GetContext(ctx, &a, `
		SELECT id, ticket_id, company_id, uploaded_by, object_key, thumbnail_key,
			file_name, content_type, size, created_at
		FROM assets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]Asset, error) {
	assets := []Asset{}
	err := r.db.SelectContext(ctx, &assets, `
		SELECT id, ticket_id, company_id, uploaded_by, object_key, thumbnail_key,
			file_name, content_type, size, created_at
		FROM assets WHERE ticket_id = $1 ORDER BY created_at DESC`, ticketID)
	return assets, err
}
