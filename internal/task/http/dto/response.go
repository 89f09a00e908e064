package dto

import (
	"time"

	taskDomain "github.com/allisson/taskmanager/internal/task/domain"
)

// TaskResponse represents a task in API responses. The owner never appears:
// every task in a response already belongs to the caller.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NewTaskResponse converts a domain task to a response.
func NewTaskResponse(task *taskDomain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ListTasksResponse represents a paginated list of tasks in API responses.
type ListTasksResponse struct {
	Data []TaskResponse `json:"data"`
}

// MapTasksToListResponse converts a slice of domain tasks to a list response.
func MapTasksToListResponse(tasks []*taskDomain.Task) ListTasksResponse {
	data := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		data = append(data, NewTaskResponse(task))
	}

	return ListTasksResponse{
		Data: data,
	}
}
