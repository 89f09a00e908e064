// Package domain defines the core task entities and types.
package domain

import (
	"time"

	"github.com/allisson/taskmanager/internal/errors"
)

// Status represents the lifecycle state of a task.
type Status string

// Task lifecycle states.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a unit of work owned by exactly one identity. The owner is
// stamped at creation and never changes afterwards.
type Task struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Domain-specific errors for task operations.
var (
	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.Wrap(errors.ErrNotFound, "task not found")

	// ErrTaskAccessDenied indicates the task exists but belongs to another
	// identity. Kept distinct from ErrTaskNotFound so the API can answer 403
	// instead of 404.
	ErrTaskAccessDenied = errors.Wrap(errors.ErrForbidden, "task belongs to another identity")
)
