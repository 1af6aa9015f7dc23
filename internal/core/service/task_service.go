package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// TaskService orchestrates the task lifecycle: it gates every mutation behind
// the role policy, persists through the repository, and on success hands a
// lifecycle event to the notifier. The notifier is injected at construction,
// never looked up from shared state.
type TaskService struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, notifier: notifier, log: log}
}

// List returns all tasks for managers and only assigned tasks for employees.
func (s *TaskService) List(ctx context.Context, actor domain.Actor) ([]*domain.Task, error) {
	return s.tasks.List(ctx, ports.ListTasksFilter{AssignedTo: domain.ListScope(actor)})
}

// Get returns a single task, enforcing the view policy.
func (s *TaskService) Get(ctx context.Context, actor domain.Actor, taskID string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeView(actor, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Create persists a new task and notifies the assignee's room. The payload is
// re-validated here even though the transport layer already checked it.
func (s *TaskService) Create(ctx context.Context, actor domain.Actor, input ports.CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" || input.Description == "" || input.AssignedTo == "" || input.DueDate.IsZero() {
		return nil, domain.ErrValidation
	}
	if err := domain.AuthorizeCreate(actor); err != nil {
		return nil, err
	}
	if err := s.resolveAssignee(ctx, input.AssignedTo); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   actor.ID,
		Status:      domain.StatusPending,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("assigned_to", input.AssignedTo).Msg("failed to create task")
		return nil, err
	}

	s.log.Info().Str("task_id", created.ID).Str("assigned_to", created.AssignedTo).Msg("task created")

	s.notifier.Publish(domain.LifecycleEvent{
		Kind:    domain.EventTaskCreated,
		Task:    created,
		TaskID:  created.ID,
		Message: "You have been assigned a new task",
	}, domain.RoomForUser(created.AssignedTo))

	return created, nil
}

// Update applies a field-level change to an existing task. The policy is
// checked against the current task and the exact field set of the request.
// The manager room is always notified; the assignee's room only when the
// actor is not the assignee, so self-updates are not echoed back.
func (s *TaskService) Update(ctx context.Context, actor domain.Actor, taskID string, change domain.TaskChange) (*domain.Task, error) {
	if change.Empty() {
		return nil, domain.ErrValidation
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := domain.AuthorizeUpdate(actor, task, change); err != nil {
		return nil, err
	}

	// Reassignment must point at an existing employee. The stored assignee is
	// deliberately not re-resolved when unchanged: a dangling historical
	// assignee makes the notification a silent no-op, not an error.
	if change.AssignedTo != nil {
		if err := s.resolveAssignee(ctx, *change.AssignedTo); err != nil {
			return nil, err
		}
	}

	change.Apply(task)
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		s.log.Error().Err(err).Str("task_id", taskID).Msg("failed to update task")
		return nil, err
	}

	s.log.Info().Str("task_id", task.ID).Str("actor", actor.ID).Msg("task updated")

	event := domain.LifecycleEvent{
		Kind:    domain.EventTaskUpdated,
		Task:    task,
		TaskID:  task.ID,
		Message: fmt.Sprintf("Task %q has been updated", task.Title),
	}
	rooms := []domain.RoomKey{domain.RoomForRole(domain.RoleManager)}
	if actor.ID != task.AssignedTo {
		rooms = append(rooms, domain.RoomForUser(task.AssignedTo))
	}
	s.notifier.Publish(event, rooms...)

	return task, nil
}

// Delete removes a task and notifies the former assignee's room. The task is
// loaded first so a missing id reports not-found regardless of the caller's
// role, mirroring Update.
func (s *TaskService) Delete(ctx context.Context, actor domain.Actor, taskID string) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := domain.AuthorizeDelete(actor); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		s.log.Error().Err(err).Str("task_id", taskID).Msg("failed to delete task")
		return err
	}

	s.log.Info().Str("task_id", taskID).Str("actor", actor.ID).Msg("task deleted")

	s.notifier.Publish(domain.LifecycleEvent{
		Kind:    domain.EventTaskDeleted,
		TaskID:  task.ID,
		Message: fmt.Sprintf("Task %q has been deleted", task.Title),
	}, domain.RoomForUser(task.AssignedTo))

	return nil
}

// resolveAssignee verifies the target user exists and is an employee.
func (s *TaskService) resolveAssignee(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidAssignment
		}
		return err
	}
	if user.Role != domain.RoleEmployee {
		return domain.ErrInvalidAssignment
	}
	return nil
}
