package company

import "errors"

var (
	ErrNotFound       = errors.New("company not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrAlreadyMember  = errors.New("user is already a member")
)
