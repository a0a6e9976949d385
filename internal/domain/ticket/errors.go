package ticket

import "errors"

var (
	ErrNotFound          = errors.New("ticket not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNotAssigned       = errors.New("ticket is not assigned to this creative")
	ErrFeedbackRequired  = errors.New("feedback is required when requesting changes")
)
