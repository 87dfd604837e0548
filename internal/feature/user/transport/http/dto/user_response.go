package dto

import (
	"time"

	"user_backend/internal/feature/user/domain/entity"
)

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	FavoriteFood *string   `json:"favorite_food"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUserResponse maps an entity to its wire form.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email().Value(),
		FavoriteFood: u.FavoriteFood(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

// NewUserListResponse maps entities to their wire form, preserving order.
// The result is never nil so an empty listing encodes as [].
func NewUserListResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Type    string            `json:"type"`
	Details map[string]string `json:"details,omitempty"`
}
