package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/taskmanager/internal/task/domain"
	appValidation "github.com/allisson/taskmanager/internal/validation"
)

// taskUseCase handles task-related business logic.
type taskUseCase struct {
	taskRepo TaskRepository
}

// NewTaskUseCase creates a new TaskUseCase.
func NewTaskUseCase(taskRepo TaskRepository) TaskUseCase {
	return &taskUseCase{
		taskRepo: taskRepo,
	}
}

// statusRule validates that a string is one of the known task statuses.
var statusRule = validation.By(func(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(value) {
		return nil
	}
	s, _ := value.(string)
	if !domain.Status(s).Valid() {
		return validation.NewError(
			"validation_task_status",
			"status must be one of: pending, in_progress, done",
		)
	}
	return nil
})

func (uc *taskUseCase) validateCreateInput(input CreateTaskInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 200).Error("title must be between 1 and 200 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 2000).Error("description must be at most 2000 characters"),
		),
		validation.Field(&input.Status, statusRule),
	)
	return appValidation.WrapValidationError(err)
}

// Create stores a new task stamped with the calling identity as owner.
func (uc *taskUseCase) Create(
	ctx context.Context,
	ownerID int64,
	input CreateTaskInput,
) (*domain.Task, error) {
	if err := uc.validateCreateInput(input); err != nil {
		return nil, err
	}

	status := domain.Status(input.Status)
	if status == "" {
		status = domain.StatusPending
	}

	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      status,
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// List returns the identity's tasks newest-first. Other identities' tasks
// are filtered out at the query level, so the result can never leak.
func (uc *taskUseCase) List(
	ctx context.Context,
	ownerID int64,
	offset, limit int,
) ([]*domain.Task, error) {
	return uc.taskRepo.ListByOwner(ctx, ownerID, offset, limit)
}

// Get returns a single task after the ownership check.
func (uc *taskUseCase) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	return uc.loadOwned(ctx, ownerID, taskID)
}

func (uc *taskUseCase) validateUpdateInput(input UpdateTaskInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			appValidation.NotBlank,
			validation.Length(1, 200).Error("title must be between 1 and 200 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 2000).Error("description must be at most 2000 characters"),
		),
		validation.Field(&input.Status, statusRule),
	)
	return appValidation.WrapValidationError(err)
}

// Update changes the mutable task fields. The owner is not an input and the
// repository statement never touches the owner column.
func (uc *taskUseCase) Update(
	ctx context.Context,
	ownerID, taskID int64,
	input UpdateTaskInput,
) (*domain.Task, error) {
	if err := uc.validateUpdateInput(input); err != nil {
		return nil, err
	}

	task, err := uc.loadOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = domain.Status(*input.Status)
	}

	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes the task after the ownership check.
func (uc *taskUseCase) Delete(ctx context.Context, ownerID, taskID int64) error {
	task, err := uc.loadOwned(ctx, ownerID, taskID)
	if err != nil {
		return err
	}

	return uc.taskRepo.Delete(ctx, task.ID)
}

// loadOwned fetches a task and enforces ownership. An absent task and a
// foreign task are reported with different errors on purpose: the first maps
// to 404, the second to 403.
func (uc *taskUseCase) loadOwned(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.OwnerID != ownerID {
		return nil, domain.ErrTaskAccessDenied
	}

	return task, nil
}
