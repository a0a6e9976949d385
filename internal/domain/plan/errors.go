package plan

import "errors"

var ErrNotFound = errors.New("plan not found")
