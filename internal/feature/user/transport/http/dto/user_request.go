// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

// CreateUserRequest represents the request body for POST /api/v1/users.
type CreateUserRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	FavoriteFood *string `json:"favorite_food" binding:"omitempty,max=100"`
}

// UpdateUserRequest represents the request body for PUT/PATCH /api/v1/users/:id.
// Pointer fields keep "omitted" distinct from "sent": nil means leave unchanged.
// An empty name or email is ignored by the use case; an empty favorite_food is stored as is.
type UpdateUserRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Email        *string `json:"email" binding:"omitempty,email"`
	FavoriteFood *string `json:"favorite_food" binding:"omitempty,max=100"`
}
