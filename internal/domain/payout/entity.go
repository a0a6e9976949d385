package payout

import (
	"time"

	"github.com/google/uuid"
)

// Tier is an admin-configured payout rule. A creative qualifies when
// their DONE-ticket count inside the rolling window meets the minimum;
// the highest qualifying percent wins.
type Tier struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	MinCompletedTickets int       `db:"min_completed_tickets" json:"min_completed_tickets"`
	TimeWindowDays      int       `db:"time_window_days" json:"time_window_days"`
	PayoutPercent       int       `db:"payout_percent" json:"payout_percent"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// Status is what a creative sees on their payout-tier page.
type Status struct {
	CurrentPercent int            `json:"current_percent"`
	BasePercent    int            `json:"base_percent"`
	QualifiedTier  *Tier          `json:"qualified_tier,omitempty"`
	Tiers          []Tier         `json:"tiers"`
	WindowCounts   map[string]int `json:"window_counts"`
}
