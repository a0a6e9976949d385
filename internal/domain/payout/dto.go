package payout

// TierRequest creates or updates a payout tier
type TierRequest struct {
	Name                string `json:"name" validate:"required,min=2,max=100"`
	MinCompletedTickets int    `json:"min_completed_tickets" validate:"required,gte=1"`
	TimeWindowDays      int    `json:"time_window_days" validate:"required,gte=1,lte=365"`
	PayoutPercent       int    `json:"payout_percent" validate:"required,gte=1,lte=100"`
}
