package plan

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a subscription tier a company can be on. The monthly token
// grant is applied through the ledger engine, not written directly.
type Plan struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Description       string    `db:"description" json:"description"`
	PriceMonthly      int64     `db:"price_monthly" json:"price_monthly"`
	MonthlyTokenGrant int64     `db:"monthly_token_grant" json:"monthly_token_grant"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
