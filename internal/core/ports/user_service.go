package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// UserService exposes the user directory.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	ListEmployees(ctx context.Context) ([]*domain.User, error)
	// Get returns a user profile: managers may read anyone, others only themselves.
	Get(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error)
}
