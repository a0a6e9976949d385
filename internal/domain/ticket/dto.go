package ticket

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest is the customer ticket-creation payload. Costs are
// derived from the job type, never supplied by the client.
type CreateRequest struct {
	JobTypeID   uuid.UUID  `json:"job_type_id" validate:"required"`
	Title       string     `json:"title" validate:"required,min=3,max=255"`
	Description string     `json:"description" validate:"max=10000"`
	Priority    string     `json:"priority" validate:"required,ticket_priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// MoveRequest moves a ticket to a new board status. Feedback is
// required when a customer sends a ticket back from review.
type MoveRequest struct {
	Status   string `json:"status" validate:"required,ticket_status"`
	Feedback string `json:"feedback,omitempty" validate:"max=10000"`
}

// AdminUpdateRequest is the admin ticket PATCH payload; every field is
// optional and applied independently
type AdminUpdateRequest struct {
	Status     *string    `json:"status,omitempty" validate:"omitempty,ticket_status"`
	DesignerID *uuid.UUID `json:"designer_id,omitempty"`
	Unassign   bool       `json:"unassign,omitempty"`
	Title      *string    `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Priority   *string    `json:"priority,omitempty" validate:"omitempty,ticket_priority"`
}

type CommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=10000"`
}
