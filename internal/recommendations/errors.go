package recommendations

import "errors"

var (
	// ErrInvalidCategory indicates an unsupported service category.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidProfile indicates a profile that failed validation.
	ErrInvalidProfile = errors.New("invalid profile")
)
