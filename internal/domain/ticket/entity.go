package ticket

import (
	"time"

	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/domain/user"
)

type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInReview   Status = "IN_REVIEW"
	StatusDone       Status = "DONE"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var priorityWeights = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Weight returns the load weight of a priority, defaulting to LOW for
// unknown values
func (p Priority) Weight() int {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return priorityWeights[PriorityLow]
}

type Ticket struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	CompanyID           uuid.UUID  `json:"company_id" db:"company_id"`
	CompanyTicketNumber int        `json:"company_ticket_number" db:"company_ticket_number"`
	JobTypeID           uuid.UUID  `json:"job_type_id" db:"job_type_id"`
	Title               string     `json:"title" db:"title"`
	Description         string     `json:"description" db:"description"`
	Status              Status     `json:"status" db:"status"`
	Priority            Priority   `json:"priority" db:"priority"`
	DesignerID          *uuid.UUID `json:"designer_id,omitempty" db:"designer_id"`
	CreatedBy           uuid.UUID  `json:"created_by" db:"created_by"`
	TokenCost           int64      `json:"token_cost" db:"token_cost"`
	CreativePayout      int64      `json:"creative_payout_tokens" db:"creative_payout_tokens"`
	DueDate             *time.Time `json:"due_date,omitempty" db:"due_date"`
	CompletedAt         *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// Revision is a versioned change-request record, written when a
// customer sends a ticket back from review
type Revision struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TicketID  uuid.UUID `json:"ticket_id" db:"ticket_id"`
	Version   int       `json:"version" db:"version"`
	Feedback  string    `json:"feedback" db:"feedback"`
	CreatedBy uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Comment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TicketID   uuid.UUID `json:"ticket_id" db:"ticket_id"`
	AuthorID   uuid.UUID `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NextAllowedStatuses returns the statuses a ticket may move to from
// the given status, for the given actor role. Both request validation
// and the move itself go through this one table.
func NextAllowedStatuses(actor user.Role, from Status) []Status {
	switch actor {
	case user.RoleSiteOwner, user.RoleSiteAdmin:
		// admins may perform any transition, including reopening DONE
		all := []Status{StatusTodo, StatusInProgress, StatusInReview, StatusDone}
		out := make([]Status, 0, 3)
		for _, s := range all {
			if s != from {
				out = append(out, s)
			}
		}
		return out
	case user.RoleCreative:
		switch from {
		case StatusTodo:
			return []Status{StatusInProgress}
		case StatusInProgress:
			return []Status{StatusInReview}
		case StatusInReview:
			return []Status{StatusInProgress}
		}
	case user.RoleCustomer:
		if from == StatusInReview {
			return []Status{StatusDone, StatusInProgress}
		}
	}
	return nil
}

// CanMove reports whether actor may move a ticket from one status to
// another
func CanMove(actor user.Role, from, to Status) bool {
	for _, s := range NextAllowedStatuses(actor, from) {
		if s == to {
			return true
		}
	}
	return false
}

// LoadScore computes a creative's workload score: ten times the sum of
// priority weights over their open tickets
func LoadScore(open []Ticket) int {
	total := 0
	for _, t := range open {
		if t.Status == StatusDone {
			continue
		}
		total += t.Priority.Weight()
	}
	return total * 10
}

// Board groups tickets by status for the kanban view
type Board struct {
	Todo       []Ticket `json:"todo"`
	InProgress []Ticket `json:"in_progress"`
	InReview   []Ticket `json:"in_review"`
	Done       []Ticket `json:"done"`
}

func BuildBoard(tickets []Ticket) *Board {
	b := &Board{
		Todo:       []Ticket{},
		InProgress: []Ticket{},
		InReview:   []Ticket{},
		Done:       []Ticket{},
	}
	for _, t := range tickets {
		switch t.Status {
		case StatusTodo:
			b.Todo = append(b.Todo, t)
		case StatusInProgress:
			b.InProgress = append(b.InProgress, t)
		case StatusInReview:
			b.InReview = append(b.InReview, t)
		case StatusDone:
			b.Done = append(b.Done, t)
		}
	}
	return b
}
