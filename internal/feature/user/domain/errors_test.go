package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", NewValidationError("invalid email format"), "ValidationError"},
		{"conflict", &ConflictError{Message: "email already exists: a@b.com"}, "ConflictError"},
		{"not found", &NotFoundError{Message: "user not found: 1"}, "NotFoundError"},
		{"wrapped not found", fmt.Errorf("load: %w", &NotFoundError{Message: "user not found: 2"}), "NotFoundError"},
		{"plain error", errors.New("connection refused"), "InternalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TypeName(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, NewValidationError("name is required"), "name is required")
	assert.EqualError(t, &ConflictError{Message: "email already exists: x@y.com"}, "email already exists: x@y.com")
	assert.EqualError(t, &NotFoundError{Message: "user not found: 7"}, "user not found: 7")
}
