package service

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// UserService exposes the user directory.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx, "")
}

func (s *UserService) ListEmployees(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx, domain.RoleEmployee)
}

// Get returns a user profile. Managers may read any profile; everyone else
// only their own.
func (s *UserService) Get(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error) {
	if actor.Role != domain.RoleManager && actor.ID != userID {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, userID)
}
