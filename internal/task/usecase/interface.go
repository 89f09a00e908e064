// Package usecase implements the task business logic with per-identity
// ownership enforcement.
package usecase

import (
	"context"

	"github.com/allisson/taskmanager/internal/task/domain"
)

// CreateTaskInput contains the input data for creating a task. The owner is
// never part of the input: it always comes from the authenticated identity.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateTaskInput contains the fields that may change on an existing task.
// Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// TaskUseCase defines the task business logic operations. Every operation
// takes the authenticated identity's id and only ever touches that
// identity's tasks.
type TaskUseCase interface {
	// Create stores a new task owned by the identity. An empty status
	// defaults to pending.
	Create(ctx context.Context, ownerID int64, input CreateTaskInput) (*domain.Task, error)

	// List returns the identity's tasks newest-first.
	List(ctx context.Context, ownerID int64, offset, limit int) ([]*domain.Task, error)

	// Get returns a single task. ErrTaskNotFound when absent,
	// ErrTaskAccessDenied when owned by another identity.
	Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)

	// Update changes title, description and status. The owner never changes.
	Update(ctx context.Context, ownerID, taskID int64, input UpdateTaskInput) (*domain.Task, error)

	// Delete removes the task permanently.
	Delete(ctx context.Context, ownerID, taskID int64) error
}

// TaskRepository defines the persistence operations the task use case
// consumes. GetByID loads a task regardless of owner; ownership checks
// belong to the use case.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}
