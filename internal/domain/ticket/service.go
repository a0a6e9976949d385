package ticket

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/brandbite/brandbite-api/internal/domain/catalog"
	"github.com/brandbite/brandbite-api/internal/domain/ledger"
	"github.com/brandbite/brandbite-api/internal/domain/user"
)

// JobTypeSource resolves job types for ticket pricing
type JobTypeSource interface {
	GetJobType(ctx context.Context, id uuid.UUID) (*catalog.JobType, error)
}

// PayoutRates resolves a creative's current payout percentage
type PayoutRates interface {
	CurrentPercent(ctx context.Context, creativeID uuid.UUID) (int, error)
	ScaleTokens(baseTokens int64, percent int) int64
}

// BoardEvent is broadcast to company board subscribers after a ticket
// changes
type BoardEvent struct {
	Type       string     `json:"type"`
	CompanyID  uuid.UUID  `json:"company_id"`
	TicketID   uuid.UUID  `json:"ticket_id"`
	Status     Status     `json:"status"`
	DesignerID *uuid.UUID `json:"designer_id,omitempty"`
	At         time.Time  `json:"at"`
}

const (
	EventTicketCreated  = "ticket.created"
	EventTicketMoved    = "ticket.moved"
	EventTicketAssigned = "ticket.assigned"
)

// EventPublisher fans board events out to connected clients. A nil
// publisher disables the stream.
type EventPublisher interface {
	PublishBoard(ctx context.Context, event BoardEvent)
}

type Service struct {
	repo     *Repository
	ledger   *ledger.Service
	jobTypes JobTypeSource
	payouts  PayoutRates
	events   EventPublisher
}

func NewService(repo *Repository, ledgerSvc *ledger.Service, jobTypes JobTypeSource, payouts PayoutRates, events EventPublisher) *Service {
	return &Service{
		repo:     repo,
		ledger:   ledgerSvc,
		jobTypes: jobTypes,
		payouts:  payouts,
		events:   events,
	}
}

type CreateInput struct {
	CompanyID   uuid.UUID
	CreatedBy   uuid.UUID
	JobTypeID   uuid.UUID
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
}

// Create prices a ticket from its job type, debits the company and
// inserts the ticket in one transaction. The debit's balance row lock
// also serializes per-company ticket numbering.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Ticket, error) {
	jt, err := s.jobTypes.GetJobType(ctx, in.JobTypeID)
	if err != nil {
		return nil, err
	}
	if !jt.IsActive {
		return nil, catalog.ErrJobTypeInactive
	}

	now := time.Now()
	t := &Ticket{
		ID:             uuid.New(),
		CompanyID:      in.CompanyID,
		JobTypeID:      jt.ID,
		Title:          in.Title,
		Description:    in.Description,
		Status:         StatusTodo,
		Priority:       in.Priority,
		CreatedBy:      in.CreatedBy,
		TokenCost:      jt.TokenCost,
		CreativePayout: jt.CreativePayoutTokens,
		DueDate:        in.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := s.ledger.DebitTx(ctx, tx, ledger.CompanyOwner(in.CompanyID), jt.TokenCost, "ticket created", &t.ID); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTx(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("ticket_id", t.ID.String()).
		Str("company_id", t.CompanyID.String()).
		Int("number", t.CompanyTicketNumber).
		Int64("token_cost", t.TokenCost).
		Msg("ticket created")

	s.publish(ctx, EventTicketCreated, t)
	return t, nil
}

type MoveInput struct {
	TicketID uuid.UUID
	ActorID  uuid.UUID
	Role     user.Role
	To       Status
	Feedback string
}

// Move transitions a ticket through the board state machine. Entering
// DONE credits the assigned creative their payout, scaled by the
// creative's current tier percentage, in the same transaction.
func (s *Service) Move(ctx context.Context, in MoveInput) (*Ticket, error) {
	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.repo.GetForUpdateTx(ctx, tx, in.TicketID)
	if err != nil {
		return nil, err
	}
	from := t.Status

	if err := s.moveTx(ctx, tx, t, in); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("ticket_id", t.ID.String()).
		Str("from", string(from)).
		Str("to", string(in.To)).
		Str("actor_role", string(in.Role)).
		Msg("ticket moved")

	s.publish(ctx, EventTicketMoved, t)
	return t, nil
}

// moveTx validates and applies a transition on an already-locked
// ticket, mutating t to its post-move state. Runs inside the caller's
// transaction.
func (s *Service) moveTx(ctx context.Context, tx *sqlx.Tx, t *Ticket, in MoveInput) error {
	if in.Role == user.RoleCreative {
		if t.DesignerID == nil || *t.DesignerID != in.ActorID {
			return ErrNotAssigned
		}
	}
	if !CanMove(in.Role, t.Status, in.To) {
		return ErrInvalidTransition
	}

	now := time.Now()

	if in.Role == user.RoleCustomer && t.Status == StatusInReview && in.To == StatusInProgress {
		if in.Feedback == "" {
			return ErrFeedbackRequired
		}
		rev := &Revision{
			ID:        uuid.New(),
			TicketID:  t.ID,
			Feedback:  in.Feedback,
			CreatedBy: in.ActorID,
			CreatedAt: now,
		}
		if err := s.repo.CreateRevisionTx(ctx, tx, rev); err != nil {
			return err
		}
	}

	var completedAt *time.Time
	if in.To == StatusDone {
		completedAt = &now
		if t.DesignerID != nil {
			percent, err := s.payouts.CurrentPercent(ctx, *t.DesignerID)
			if err != nil {
				return err
			}
			amount := s.payouts.ScaleTokens(t.CreativePayout, percent)
			if amount > 0 {
				if _, err := s.ledger.CreditTx(ctx, tx, ledger.UserOwner(*t.DesignerID), amount, "ticket payout", &t.ID); err != nil {
					return err
				}
			}
		}
	}

	if err := s.repo.UpdateStatusTx(ctx, tx, t.ID, in.To, completedAt, now); err != nil {
		return err
	}

	t.Status = in.To
	t.CompletedAt = completedAt
	t.UpdatedAt = now
	return nil
}

type AdminUpdateInput struct {
	TicketID   uuid.UUID
	ActorID    uuid.UUID
	Role       user.Role
	Title      *string
	Priority   *Priority
	DesignerID *uuid.UUID
	Unassign   bool
	Status     *Status
}

// AdminUpdate applies field edits, assignment and a status override in
// a single transaction, so a rejected transition rolls back the edits
// submitted alongside it.
func (s *Service) AdminUpdate(ctx context.Context, in AdminUpdateInput) (*Ticket, error) {
	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.repo.GetForUpdateTx(ctx, tx, in.TicketID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil || in.Priority != nil {
		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Priority != nil {
			t.Priority = *in.Priority
		}
		if err := s.repo.UpdateFieldsTx(ctx, tx, t); err != nil {
			return nil, err
		}
	}

	assigned := false
	if in.DesignerID != nil || in.Unassign {
		var designerID *uuid.UUID
		if !in.Unassign {
			designerID = in.DesignerID
		}
		if err := s.repo.AssignDesignerTx(ctx, tx, t.ID, designerID); err != nil {
			return nil, err
		}
		t.DesignerID = designerID
		assigned = true
	}

	moved := false
	if in.Status != nil && *in.Status != t.Status {
		if err := s.moveTx(ctx, tx, t, MoveInput{
			TicketID: t.ID,
			ActorID:  in.ActorID,
			Role:     in.Role,
			To:       *in.Status,
		}); err != nil {
			return nil, err
		}
		moved = true
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("ticket_id", t.ID.String()).
		Str("actor_id", in.ActorID.String()).
		Bool("assigned", assigned).
		Bool("moved", moved).
		Msg("ticket updated by admin")

	if assigned {
		s.publish(ctx, EventTicketAssigned, t)
	}
	if moved {
		s.publish(ctx, EventTicketMoved, t)
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

// CompanyBoard returns a company's tickets grouped into kanban columns
func (s *Service) CompanyBoard(ctx context.Context, companyID uuid.UUID) (*Board, error) {
	tickets, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return BuildBoard(tickets), nil
}

func (s *Service) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Ticket, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *Service) ListByDesigner(ctx context.Context, designerID uuid.UUID) ([]Ticket, error) {
	return s.repo.ListByDesigner(ctx, designerID)
}

func (s *Service) ListAll(ctx context.Context, status string, limit, offset int) ([]Ticket, int, error) {
	return s.repo.ListAll(ctx, status, limit, offset)
}

// LoadScoreFor computes a creative's current workload score from their
// open tickets
func (s *Service) LoadScoreFor(ctx context.Context, designerID uuid.UUID) (int, error) {
	open, err := s.repo.ListOpenByDesigner(ctx, designerID)
	if err != nil {
		return 0, err
	}
	return LoadScore(open), nil
}

func (s *Service) ListRevisions(ctx context.Context, ticketID uuid.UUID) ([]Revision, error) {
	if _, err := s.repo.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.repo.ListRevisions(ctx, ticketID)
}

func (s *Service) AddComment(ctx context.Context, ticketID, authorID uuid.UUID, body string) (*Comment, error) {
	if _, err := s.repo.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	c := &Comment{
		ID:        uuid.New(),
		TicketID:  ticketID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListComments(ctx context.Context, ticketID uuid.UUID) ([]Comment, error) {
	if _, err := s.repo.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, ticketID)
}

func (s *Service) publish(ctx context.Context, eventType string, t *Ticket) {
	if s.events == nil {
		return
	}
	s.events.PublishBoard(ctx, BoardEvent{
		Type:       eventType,
		CompanyID:  t.CompanyID,
		TicketID:   t.ID,
		Status:     t.Status,
		DesignerID: t.DesignerID,
		At:         time.Now(),
	})
}
