package services

import (
	"context"
	"fmt"

	"hobbyhub/internal/models"
	"hobbyhub/internal/repositories"
)

// UserService handles user registration. Registration stores whatever
// document the caller supplies; no schema is enforced.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser inserts the user document verbatim and returns the
// generated identifier.
func (s *UserService) RegisterUser(ctx context.Context, user models.User) (string, error) {
	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}
	return id, nil
}
