package user

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrNotACreative   = errors.New("user is not a creative")
	ErrUnknownPersona = errors.New("unknown demo persona")
)
