// Package usecase implements the business logic for the user feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"user_backend/internal/feature/user/domain"
	"user_backend/internal/feature/user/domain/entity"
)

// CreateUserInput carries the fields of a new user.
type CreateUserInput struct {
	Name         string
	Email        string
	FavoriteFood *string
}

// UpdateUserInput carries a partial update. A nil field is left unchanged.
// Name and Email are only applied when non-empty; FavoriteFood is applied whenever it is non-nil,
// so a pointer to "" clears the stored value.
type UpdateUserInput struct {
	Name         *string
	Email        *string
	FavoriteFood *string
}

// UserUsecase orchestrates the user repository and enforces email uniqueness and existence rules.
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a new UserUsecase with the given repository.
func NewUserUsecase(repo UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

// CreateUser registers a new user. An email that is already taken yields a ConflictError.
func (u *UserUsecase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	existing, err := u.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, emailConflict(in.Email)
	}

	user, err := entity.NewUser(in.Name, in.Email, in.FavoriteFood)
	if err != nil {
		return nil, err
	}

	saved, err := u.repo.Save(ctx, user)
	if err != nil {
		// The unique index catches creates that raced past the lookup above.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, emailConflict(in.Email)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return saved, nil
}

// GetUser returns the user with the given ID or a NotFoundError.
func (u *UserUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, notFound(id)
	}
	return user, nil
}

// GetAllUsers returns every user in repository order.
func (u *UserUsecase) GetAllUsers(ctx context.Context) ([]*entity.User, error) {
	return u.repo.FindAll(ctx)
}

// UpdateUser applies a partial update to an existing user and persists it.
func (u *UserUsecase) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*entity.User, error) {
	user, err := u.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != "" {
		if err := user.ChangeName(*in.Name); err != nil {
			return nil, err
		}
	}

	if in.Email != nil && *in.Email != "" {
		other, err := u.repo.FindByEmail(ctx, *in.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up email: %w", err)
		}
		if other != nil && !other.SameIdentity(user) {
			return nil, emailConflict(*in.Email)
		}
		if err := user.ChangeEmail(*in.Email); err != nil {
			return nil, err
		}
	}

	if in.FavoriteFood != nil {
		user.ChangeFavoriteFood(in.FavoriteFood)
	}

	saved, err := u.repo.Save(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserGone):
			return nil, notFound(id)
		case errors.Is(err, ErrDuplicateEmail):
			return nil, emailConflict(user.Email().Value())
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return saved, nil
}

// DeleteUser removes an existing user. Deleting an unknown or already deleted ID yields a NotFoundError.
func (u *UserUsecase) DeleteUser(ctx context.Context, id uint) error {
	if _, err := u.GetUser(ctx, id); err != nil {
		return err
	}

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return notFound(id)
	}
	return nil
}

func notFound(id uint) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("user not found: %d", id)}
}

func emailConflict(email string) error {
	return &domain.ConflictError{Message: fmt.Sprintf("email already exists: %s", email)}
}
