package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-system/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	DueDate     time.Time
}

// TaskService defines the task lifecycle use cases. Every operation takes the
// acting identity; authorization happens strictly before any store write.
type TaskService interface {
	List(ctx context.Context, actor domain.Actor) ([]*domain.Task, error)
	Get(ctx context.Context, actor domain.Actor, taskID string) (*domain.Task, error)
	Create(ctx context.Context, actor domain.Actor, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, actor domain.Actor, taskID string, change domain.TaskChange) (*domain.Task, error)
	Delete(ctx context.Context, actor domain.Actor, taskID string) error
}
