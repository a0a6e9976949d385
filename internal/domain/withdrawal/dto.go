package withdrawal

// RequestDTO creates a new withdrawal
type RequestDTO struct {
	AmountTokens int64 `json:"amount_tokens" validate:"required,gt=0"`
}

// ActionDTO dispatches an admin action on a withdrawal
type ActionDTO struct {
	Action string `json:"action" validate:"required,withdrawal_action"`
	Reason string `json:"reason,omitempty"`
}
