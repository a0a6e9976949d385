package catalog

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Tokens-per-estimated-hour and the base share of a job's cost paid out
// to the creative.
const (
	tokensPerHour   = 1
	basePayoutRatio = 0.6
)

// Category groups job types for the catalog pages.
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// JobType defines the token economics of one class of design work.
// token_cost and creative_payout_tokens are derived from estimated
// hours, never supplied by clients.
type JobType struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	CategoryID           *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	Name                 string     `db:"name" json:"name"`
	Description          string     `db:"description" json:"description"`
	EstimatedHours       int        `db:"estimated_hours" json:"estimated_hours"`
	TokenCost            int64      `db:"token_cost" json:"token_cost"`
	CreativePayoutTokens int64      `db:"creative_payout_tokens" json:"creative_payout_tokens"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// DeriveCosts recomputes the token figures from estimated hours:
// token_cost = estimated_hours × 1, creative payout = round(cost × 0.6).
func (j *JobType) DeriveCosts() {
	j.TokenCost = int64(j.EstimatedHours) * tokensPerHour
	j.CreativePayoutTokens = int64(math.Round(float64(j.TokenCost) * basePayoutRatio))
}
