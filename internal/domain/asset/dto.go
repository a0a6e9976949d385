package asset

import "github.com/google/uuid"

type PresignRequest struct {
	FileName    string `json:"file_name" validate:"required,min=1,max=255"`
	ContentType string `json:"content_type" validate:"required,min=3,max=100"`
	Size        int64  `json:"size" validate:"required,gt=0"`
}

type RegisterRequest struct {
	TicketID  uuid.UUID `json:"ticket_id" validate:"required"`
	ObjectKey string    `json:"object_key" validate:"required,min=1,max=512"`
	FileName  string    `json:"file_name" validate:"required,min=1,max=255"`
}
