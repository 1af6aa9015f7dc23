package domain

import (
	"errors"
	"time"
)

// StatusPending is the status assigned to every newly created task. Status is
// otherwise free-form; clients track their own workflow vocabulary.
const StatusPending = "pending"

var ErrTaskNotFound = errors.New("task not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidAssignment = errors.New("task must be assigned to an employee")
var ErrValidation = errors.New("invalid task payload")

// Task is the core aggregate: created by a Manager, worked by the assigned
// Employee. AssignedTo must resolve to an Employee at assignment time.
type Task struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	AssignedTo  string    `json:"assigned_to" bson:"assigned_to"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	Status      string    `json:"status" bson:"status"`
	DueDate     time.Time `json:"due_date" bson:"due_date"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// TaskChange is the field set of an update request. Nil means "field not
// present in the request"; the distinction drives per-role field authorization.
type TaskChange struct {
	Title       *string
	Description *string
	AssignedTo  *string
	Status      *string
	DueDate     *time.Time
}

// StatusOnly reports whether the change touches nothing but the status field.
func (c TaskChange) StatusOnly() bool {
	return c.Title == nil && c.Description == nil && c.AssignedTo == nil && c.DueDate == nil
}

// Empty reports whether the change carries no fields at all.
func (c TaskChange) Empty() bool {
	return c.StatusOnly() && c.Status == nil
}

// Apply merges the change into t, whole-field last-write-wins.
func (c TaskChange) Apply(t *Task) {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.AssignedTo != nil {
		t.AssignedTo = *c.AssignedTo
	}
	if c.Status != nil {
		t.Status = *c.Status
	}
	if c.DueDate != nil {
		t.DueDate = *c.DueDate
	}
}
