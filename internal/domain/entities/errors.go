package entities

import "errors"

// Domain errors
var (
	ErrInvalidStatus  = errors.New("invalid status")
	ErrEmptyContact   = errors.New("contact name is required")
	ErrEmptyMeetingID = errors.New("meeting id is required")
)
