// Package entity defines the domain entities and value objects for the user feature.
package entity

import (
	"regexp"

	"user_backend/internal/feature/user/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is an immutable, validated email address.
// Two Email values are equal when their addresses are equal, so == can be used directly.
type Email struct {
	value string
}

// NewEmail validates value and wraps it in an Email.
// An empty string or one that does not look like local@domain.tld yields a ValidationError.
func NewEmail(value string) (Email, error) {
	if value == "" || !emailPattern.MatchString(value) {
		return Email{}, domain.NewValidationError("invalid email format")
	}
	return Email{value: value}, nil
}

// Value returns the raw address.
func (e Email) Value() string { return e.value }

// Equals reports whether both emails hold the same address.
func (e Email) Equals(other Email) bool { return e.value == other.value }

func (e Email) String() string { return e.value }
