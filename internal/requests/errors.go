package requests

import "errors"

var (
	// ErrNotFound indicates the service request does not exist.
	ErrNotFound = errors.New("service request not found")
	// ErrInvalidInput indicates missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTransition indicates a disallowed status change.
	ErrInvalidTransition = errors.New("invalid status transition")
)
