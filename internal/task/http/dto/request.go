// Package dto defines request and response bodies for task endpoints.
//
// Request bodies deliberately carry no owner field: the owner of every task
// is the authenticated identity, taken from the token.
package dto

import "github.com/allisson/taskmanager/internal/task/usecase"

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ToInput converts the request to a use case input.
func (r CreateTaskRequest) ToInput() usecase.CreateTaskInput {
	return usecase.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}

// UpdateTaskRequest represents the request body for updating a task.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ToInput converts the request to a use case input.
func (r UpdateTaskRequest) ToInput() usecase.UpdateTaskInput {
	return usecase.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}
