package domain

import "errors"

// Sentinel errors for calendar operations.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidEvent    = errors.New("invalid event")
	ErrInvalidRepeat   = errors.New("invalid repeat rule")
	ErrNoPendingAction = errors.New("no pending action")
)
