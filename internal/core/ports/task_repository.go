package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// ListTasksFilter carries the query parameters for listing tasks.
// AssignedTo is always derived from the actor's role by the service layer.
type ListTasksFilter struct {
	AssignedTo string // empty = no filter (manager); non-empty = scoped to one employee
	Status     string // optional: filter by status
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// Update replaces the mutable fields of the stored document with those of
	// t (whole-document last-write-wins; no version check is maintained).
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
}
