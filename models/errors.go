package models

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyResolved   = errors.New("issue already resolved")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingEvidence   = errors.New("resolution description is required")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnavailable       = errors.New("issue store unavailable")
)
