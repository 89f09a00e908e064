package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/taskmanager/internal/metrics"
	"github.com/allisson/taskmanager/internal/task/domain"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

// mockTaskUseCase is a mock implementation of TaskUseCase for decorator tests.
type mockTaskUseCase struct {
	mock.Mock
}

func (m *mockTaskUseCase) Create(
	ctx context.Context,
	ownerID int64,
	input CreateTaskInput,
) (*domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskUseCase) List(
	ctx context.Context,
	ownerID int64,
	offset, limit int,
) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskUseCase) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskUseCase) Update(
	ctx context.Context,
	ownerID, taskID int64,
	input UpdateTaskInput,
) (*domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskUseCase) Delete(ctx context.Context, ownerID, taskID int64) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}

func TestNewTaskUseCaseWithMetrics(t *testing.T) {
	decorator := NewTaskUseCaseWithMetrics(&mockTaskUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*TaskUseCase)(nil), decorator)
}

func TestTaskMetricsDecorator_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &mockTaskUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := CreateTaskInput{Title: "write report"}
		expected := ownedTask(1, 7)

		mockUseCase.On("Create", ctx, int64(7), input).Return(expected, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "task", "task_create", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "task", "task_create",
			mock.AnythingOfType("time.Duration"), "success").Return().Once()

		decorator := NewTaskUseCaseWithMetrics(mockUseCase, mockMetrics)
		task, err := decorator.Create(ctx, 7, input)

		assert.NoError(t, err)
		assert.Equal(t, expected, task)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &mockTaskUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := CreateTaskInput{Title: "write report"}
		expectedError := errors.New("database error")

		mockUseCase.On("Create", ctx, int64(7), input).Return(nil, expectedError).Once()
		mockMetrics.On("RecordOperation", ctx, "task", "task_create", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "task", "task_create",
			mock.AnythingOfType("time.Duration"), "error").Return().Once()

		decorator := NewTaskUseCaseWithMetrics(mockUseCase, mockMetrics)
		task, err := decorator.Create(ctx, 7, input)

		assert.Nil(t, task)
		assert.Equal(t, expectedError, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestTaskMetricsDecorator_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("ForeignTask_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &mockTaskUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Get", ctx, int64(7), int64(1)).
			Return(nil, domain.ErrTaskAccessDenied).Once()
		mockMetrics.On("RecordOperation", ctx, "task", "task_get", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "task", "task_get",
			mock.AnythingOfType("time.Duration"), "error").Return().Once()

		decorator := NewTaskUseCaseWithMetrics(mockUseCase, mockMetrics)
		task, err := decorator.Get(ctx, 7, 1)

		assert.Nil(t, task)
		assert.ErrorIs(t, err, domain.ErrTaskAccessDenied)
		mockMetrics.AssertExpectations(t)
	})
}

func TestTaskMetricsDecorator_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &mockTaskUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Delete", ctx, int64(7), int64(1)).Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "task", "task_delete", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "task", "task_delete",
			mock.AnythingOfType("time.Duration"), "success").Return().Once()

		decorator := NewTaskUseCaseWithMetrics(mockUseCase, mockMetrics)
		err := decorator.Delete(ctx, 7, 1)

		assert.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})
}
