package errors

import "errors"

// Contact errors
var (
	ErrContactNotFound = errors.New("contact not found")
)

// Commitment errors
var (
	ErrNothingToUpdate = errors.New("status or due_date is required")
)
