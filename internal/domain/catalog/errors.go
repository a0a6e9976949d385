package catalog

import "errors"

var (
	ErrJobTypeNotFound  = errors.New("job type not found")
	ErrJobTypeInactive  = errors.New("job type is not active")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSameCategory     = errors.New("source and target categories are the same")
)
