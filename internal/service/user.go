package service

import (
	"context"

	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/repository"
)

// UserService handles business logic for users
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetSummary returns the public projection of a user
func (s *UserService) GetSummary(ctx context.Context, userID string) (*domain.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := user.Summary()
	return &summary, nil
}
