package catalog

import "errors"

var (
	// ErrNotFound indicates the plan does not exist.
	ErrNotFound = errors.New("plan not found")
	// ErrInvalidCategory indicates an unsupported service category.
	ErrInvalidCategory = errors.New("invalid category")
)
