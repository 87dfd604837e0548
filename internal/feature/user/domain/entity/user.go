package entity

import (
	"strings"
	"time"

	"user_backend/internal/feature/user/domain"
)

// now is the clock used for timestamp bookkeeping. Tests replace it.
var now = time.Now

// timestampPrecision matches Postgres timestamptz so stored timestamps read back unchanged.
const timestampPrecision = time.Microsecond

// User is the identity-bearing domain object of the service.
//
// A User with ID 0 is transient: it has not been persisted yet. Storage assigns the ID on the
// first Save, and the entity never goes back to the transient state.
type User struct {
	id           uint
	name         string
	email        Email
	favoriteFood *string
	createdAt    time.Time
	updatedAt    time.Time
}

// Snapshot is the plain record form of a User used by persistence and cache adapters.
type Snapshot struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	FavoriteFood *string   `json:"favorite_food"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a transient User after validating name and email.
func NewUser(name, email string, favoriteFood *string) (*User, error) {
	if isBlank(name) {
		return nil, domain.NewValidationError("name is required")
	}
	if isBlank(email) {
		return nil, domain.NewValidationError("email is required")
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}

	ts := now().Truncate(timestampPrecision)
	return &User{
		name:         name,
		email:        e,
		favoriteFood: copyString(favoriteFood),
		createdAt:    ts,
		updatedAt:    ts,
	}, nil
}

// FromSnapshot rebuilds a User from a stored record.
// The email is validated again so a corrupted record cannot produce an invalid entity.
func FromSnapshot(s Snapshot) (*User, error) {
	e, err := NewEmail(s.Email)
	if err != nil {
		return nil, err
	}
	return &User{
		id:           s.ID,
		name:         s.Name,
		email:        e,
		favoriteFood: copyString(s.FavoriteFood),
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}, nil
}

// Snapshot returns the record form of u.
func (u *User) Snapshot() Snapshot {
	return Snapshot{
		ID:           u.id,
		Name:         u.name,
		Email:        u.email.Value(),
		FavoriteFood: copyString(u.favoriteFood),
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
	}
}

func (u *User) ID() uint             { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// FavoriteFood returns a copy of the favorite food, or nil when none is set.
func (u *User) FavoriteFood() *string { return copyString(u.favoriteFood) }

// IsPersisted reports whether storage has assigned an ID to u.
func (u *User) IsPersisted() bool { return u.id != 0 }

// SameIdentity reports whether u and other are the same entity.
// Persisted users compare by ID; a transient user is only the same as itself.
func (u *User) SameIdentity(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	if !u.IsPersisted() || !other.IsPersisted() {
		return u == other
	}
	return u.id == other.id
}

// ChangeName replaces the name. Empty or whitespace-only names are rejected.
func (u *User) ChangeName(newName string) error {
	if isBlank(newName) {
		return domain.NewValidationError("name cannot be empty")
	}
	u.name = newName
	u.touch()
	return nil
}

// ChangeEmail replaces the email with a newly validated one.
func (u *User) ChangeEmail(newEmail string) error {
	e, err := NewEmail(newEmail)
	if err != nil {
		return err
	}
	u.email = e
	u.touch()
	return nil
}

// ChangeFavoriteFood replaces the favorite food. nil clears it; "" stores an empty value.
func (u *User) ChangeFavoriteFood(value *string) {
	u.favoriteFood = copyString(value)
	u.touch()
}

// touch refreshes updatedAt, keeping it strictly increasing even when the clock has not advanced.
func (u *User) touch() {
	ts := now().Truncate(timestampPrecision)
	if !ts.After(u.updatedAt) {
		ts = u.updatedAt.Add(timestampPrecision)
	}
	u.updatedAt = ts
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
