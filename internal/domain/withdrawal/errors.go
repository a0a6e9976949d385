package withdrawal

import "errors"

var (
	ErrNotFound              = errors.New("withdrawal not found")
	ErrInvalidAmount         = errors.New("invalid withdrawal amount")
	ErrInsufficientAvailable = errors.New("insufficient available balance")
	ErrInvalidTransition     = errors.New("invalid withdrawal transition")
	ErrReasonRequired        = errors.New("reject reason is required")
)
