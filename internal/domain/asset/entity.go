package asset

import (
	"time"

	"github.com/google/uuid"
)

// Asset is an uploaded object registered against a ticket. The bytes
// live in object storage; this row carries the key and metadata.
type Asset struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TicketID     uuid.UUID `json:"ticket_id" db:"ticket_id"`
	CompanyID    uuid.UUID `json:"company_id" db:"company_id"`
	UploadedBy   uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	ObjectKey    string    `json:"object_key" db:"object_key"`
	ThumbnailKey *string   `json:"thumbnail_key,omitempty" db:"thumbnail_key"`
	FileName     string    `json:"file_name" db:"file_name"`
	ContentType  string    `json:"content_type" db:"content_type"`
	Size         int64     `json:"size" db:"size"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
