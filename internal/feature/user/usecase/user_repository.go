package usecase

import (
	"context"
	"errors"

	"user_backend/internal/feature/user/domain/entity"
)

var (
	// ErrDuplicateEmail is returned by a UserRepository when the storage unique index on email rejects a write.
	ErrDuplicateEmail = errors.New("email already stored")

	// ErrUserGone is returned by a UserRepository when Save updates a user whose record no longer exists.
	ErrUserGone = errors.New("user record no longer exists")
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
//
// Lookups report absence as a nil user with a nil error, never as a domain error.
type UserRepository interface {
	// FindByID returns the user with the given ID, or nil when none exists.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindAll returns every user, newest first.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Save inserts a transient user or updates a persisted one and returns the stored entity.
	// Inserting assigns the ID. Updating a user whose record has been removed returns ErrUserGone.
	Save(ctx context.Context, user *entity.User) (*entity.User, error)

	// Delete removes the user with the given ID and reports whether a record existed.
	Delete(ctx context.Context, id uint) (bool, error)

	// FindByEmail returns the user with the given address, or nil when none exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
