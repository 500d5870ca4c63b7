package service

import "errors"

// Sentinel errors controllers map onto HTTP statuses. Nothing below the
// controller boundary ever panics or leaks a bare gorm error for these cases.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEventFull        = errors.New("event is full")
	ErrDeadlinePassed   = errors.New("registration deadline has passed")
	ErrValidation       = errors.New("validation failed")
	ErrNegativeCount    = errors.New("participant count cannot be negative")
	ErrInvalidStatus    = errors.New("invalid event status")
	ErrInvalidEventType = errors.New("invalid event type")
)
