package payout

import "errors"

var (
	ErrTierNotFound   = errors.New("payout tier not found")
	ErrInvalidPercent = errors.New("payout percent must be between 1 and 100")
)
