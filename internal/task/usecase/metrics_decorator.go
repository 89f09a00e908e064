package usecase

import (
	"context"
	"time"

	"github.com/allisson/taskmanager/internal/metrics"
	"github.com/allisson/taskmanager/internal/task/domain"
)

// taskUseCaseWithMetrics decorates TaskUseCase with metrics instrumentation.
type taskUseCaseWithMetrics struct {
	next    TaskUseCase
	metrics metrics.BusinessMetrics
}

// NewTaskUseCaseWithMetrics wraps a TaskUseCase with metrics recording.
func NewTaskUseCaseWithMetrics(useCase TaskUseCase, m metrics.BusinessMetrics) TaskUseCase {
	return &taskUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for task creation operations.
func (t *taskUseCaseWithMetrics) Create(
	ctx context.Context,
	ownerID int64,
	input CreateTaskInput,
) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.Create(ctx, ownerID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "task", "task_create", status)
	t.metrics.RecordDuration(ctx, "task", "task_create", time.Since(start), status)

	return task, err
}

// List records metrics for task list operations.
func (t *taskUseCaseWithMetrics) List(
	ctx context.Context,
	ownerID int64,
	offset, limit int,
) ([]*domain.Task, error) {
	start := time.Now()
	tasks, err := t.next.List(ctx, ownerID, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "task", "task_list", status)
	t.metrics.RecordDuration(ctx, "task", "task_list", time.Since(start), status)

	return tasks, err
}

// Get records metrics for task retrieval operations.
func (t *taskUseCaseWithMetrics) Get(
	ctx context.Context,
	ownerID, taskID int64,
) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.Get(ctx, ownerID, taskID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "task", "task_get", status)
	t.metrics.RecordDuration(ctx, "task", "task_get", time.Since(start), status)

	return task, err
}

// Update records metrics for task update operations.
func (t *taskUseCaseWithMetrics) Update(
	ctx context.Context,
	ownerID, taskID int64,
	input UpdateTaskInput,
) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.Update(ctx, ownerID, taskID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "task", "task_update", status)
	t.metrics.RecordDuration(ctx, "task", "task_update", time.Since(start), status)

	return task, err
}

// Delete records metrics for task deletion operations.
func (t *taskUseCaseWithMetrics) Delete(ctx context.Context, ownerID, taskID int64) error {
	start := time.Now()
	err := t.next.Delete(ctx, ownerID, taskID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "task", "task_delete", status)
	t.metrics.RecordDuration(ctx, "task", "task_delete", time.Since(start), status)

	return err
}
