package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrUnavailable     = errors.New("backend unavailable")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDeliveryFailed  = errors.New("message delivery failed")
)
