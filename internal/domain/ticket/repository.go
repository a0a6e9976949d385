package ticket

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

const ticketColumns = `id, company_id, company_ticket_number, job_type_id, title, description,
	status, priority, designer_id, created_by, token_cost, creative_payout_tokens,
	due_date, completed_at, created_at, updated_at`

// CreateTx inserts a ticket within an open transaction, assigning the
// next per-company sequential number. The caller holds the company
// balance row lock for the duration of the transaction, which also
// serializes number assignment per company.
func (r *Repository) CreateTx(ctx context.Context, tx *sqlx.Tx, t *Ticket) error {
	query := `
		INSERT INTO tickets (id, company_id, company_ticket_number, job_type_id, title,
			description, status, priority, designer_id, created_by, token_cost,
			creative_payout_tokens, due_date, created_at, updated_at)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(company_ticket_number), 0) + 1 FROM tickets WHERE company_id = $2),
			$3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		RETURNING company_ticket_number`
	return tx.QueryRowContext(ctx, query,
		t.ID, t.CompanyID, t.JobTypeID, t.Title, t.Description, t.Status, t.Priority,
		t.DesignerID, t.CreatedBy, t.TokenCost, t.CreativePayout, t.DueDate, t.CreatedAt,
	).Scan(&t.CompanyTicketNumber)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var t Ticket
	err := r.db.GetContext(ctx, &t, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetForUpdateTx loads a ticket with a row lock inside tx
func (r *Repository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Ticket, error) {
	var t Ticket
	err := tx.GetContext(ctx, &t, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Ticket, error) {
	tickets := []Ticket{}
	err := r.db.SelectContext(ctx, &tickets,
		`SELECT `+ticketColumns+` FROM tickets WHERE company_id = $1 ORDER BY company_ticket_number DESC`,
		companyID)
	return tickets, err
}

func (r *Repository) ListByDesigner(ctx context.Context, designerID uuid.UUID) ([]Ticket, error) {
	tickets := []Ticket{}
	err := r.db.SelectContext(ctx, &tickets,
		`SELECT `+ticketColumns+` FROM tickets WHERE designer_id = $1 ORDER BY updated_at DESC`,
		designerID)
	return tickets, err
}

// ListOpenByDesigner returns a creative's non-DONE tickets,
// used for the load score
func (r *Repository) ListOpenByDesigner(ctx context.Context, designerID uuid.UUID) ([]Ticket, error) {
	tickets := []Ticket{}
	err := r.db.SelectContext(ctx, &tickets,
		`SELECT `+ticketColumns+` FROM tickets WHERE designer_id = $1 AND status != 'DONE' ORDER BY updated_at DESC`,
		designerID)
	return tickets, err
}

func (r *Repository) ListAll(ctx context.Context, status string, limit, offset int) ([]Ticket, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	tickets := []Ticket{}
	var total int
	if status != "" {
		if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tickets WHERE status = $1`, status); err != nil {
			return nil, 0, err
		}
		err := r.db.SelectContext(ctx, &tickets,
			`SELECT `+ticketColumns+` FROM tickets WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			status, limit, offset)
		return tickets, total, err
	}

	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tickets`); err != nil {
		return nil, 0, err
	}
	err := r.db.SelectContext(ctx, &tickets,
		`SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	return tickets, total, err
}

// UpdateStatusTx moves a ticket inside tx, stamping or clearing
// completed_at depending on the target status
func (r *Repository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status Status, completedAt *time.Time, now time.Time) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE tickets SET status = $1, completed_at = $2, updated_at = $3 WHERE id = $4`,
		status, completedAt, now, id)
	return err
}

func (r *Repository) AssignDesignerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, designerID *uuid.UUID) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE tickets SET designer_id = $1, updated_at = NOW() WHERE id = $2`,
		designerID, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateFieldsTx(ctx context.Context, tx *sqlx.Tx, t *Ticket) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE tickets SET title = $1, description = $2, priority = $3, due_date = $4, updated_at = NOW()
		 WHERE id = $5`,
		t.Title, t.Description, t.Priority, t.DueDate, t.ID)
	return err
}

// CreateRevisionTx appends the next revision version for a ticket
func (r *Repository) CreateRevisionTx(ctx context.Context, tx *sqlx.Tx, rev *Revision) error {
	query := `
		INSERT INTO ticket_revisions (id, ticket_id, version, feedback, created_by, created_at)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(version), 0) + 1 FROM ticket_revisions WHERE ticket_id = $2),
			$3, $4, $5)
		RETURNING version`
	return tx.QueryRowContext(ctx, query,
		rev.ID, rev.TicketID, rev.Feedback, rev.CreatedBy, rev.CreatedAt,
	).Scan(&rev.Version)
}

func (r *Repository) ListRevisions(ctx context.Context, ticketID uuid.UUID) ([]Revision, error) {
	revisions := []Revision{}
	err := r.db.SelectContext(ctx, &revisions,
		`SELECT id, ticket_id, version, feedback, created_by, created_at
		 FROM ticket_revisions WHERE ticket_id = $1 ORDER BY version DESC`,
		ticketID)
	return revisions, err
}

func (r *Repository) CreateComment(ctx context.Context, c *Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ticket_comments (id, ticket_id, author_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.TicketID, c.AuthorID, c.Body, c.CreatedAt)
	return err
}

func (r *Repository) ListComments(ctx context.Context, ticketID uuid.UUID) ([]Comment, error) {
	comments := []Comment{}
	err := r.db.SelectContext(ctx, &comments,
		`SELECT c.id, c.ticket_id, c.author_id, u.name AS author_name, c.body, c.created_at
		 FROM ticket_comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.ticket_id = $1
		 ORDER BY c.created_at ASC`,
		ticketID)
	return comments, err
}

// CountByDesignerAndStatus returns per-status ticket counts for one
// creative
func (r *Repository) CountByDesignerAndStatus(ctx context.Context, designerID uuid.UUID) (map[Status]int, error) {
	rows := []struct {
		Status Status `db:"status"`
		Count  int    `db:"count"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS count FROM tickets WHERE designer_id = $1 GROUP BY status`,
		designerID)
	if err != nil {
		return nil, err
	}
	out := make(map[Status]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// CountCompletedSince returns how many tickets a creative finished
// after the cutoff
func (r *Repository) CountCompletedSince(ctx context.Context, designerID uuid.UUID, since time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM tickets WHERE designer_id = $1 AND status = 'DONE' AND completed_at >= $2`,
		designerID, since)
	return n, err
}
