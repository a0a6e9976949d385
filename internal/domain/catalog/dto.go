package catalog

import "github.com/google/uuid"

// JobTypeRequest creates or updates a job type. Token figures are
// derived server-side from estimated hours.
type JobTypeRequest struct {
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	Name           string     `json:"name" validate:"required,min=2,max=150"`
	Description    string     `json:"description,omitempty" validate:"max=2000"`
	EstimatedHours int        `json:"estimated_hours" validate:"required,gte=1,lte=500"`
	IsActive       *bool      `json:"is_active,omitempty"`
}

// CategoryRequest creates or updates a category
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// MigrateRequest re-parents all job types of one category onto another
type MigrateRequest struct {
	TargetCategoryID uuid.UUID `json:"target_category_id" validate:"required"`
}
