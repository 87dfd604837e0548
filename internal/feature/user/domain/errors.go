// Package domain defines domain-level errors for the user feature.
package domain

import "errors"

// ValidationError is returned when a name or email violates the entity's invariants.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError is returned when a user with the same email already exists.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError is returned when no user exists for the requested id.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// TypeName returns the short name of the domain error kind carried by err.
// Errors outside the taxonomy are reported as "InternalError".
func TypeName(err error) string {
	var (
		ve *ValidationError
		ce *ConflictError
		ne *NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return "ValidationError"
	case errors.As(err, &ce):
		return "ConflictError"
	case errors.As(err, &ne):
		return "NotFoundError"
	default:
		return "InternalError"
	}
}
