// Package http provides HTTP handlers for task operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/taskmanager/internal/errors"
	"github.com/allisson/taskmanager/internal/httputil"
	identityHTTP "github.com/allisson/taskmanager/internal/identity/http"
	"github.com/allisson/taskmanager/internal/task/http/dto"
	"github.com/allisson/taskmanager/internal/task/usecase"
)

// TaskHandler handles HTTP requests for task operations. Every endpoint
// requires authentication; the owner id always comes from the token claims.
type TaskHandler struct {
	taskUseCase usecase.TaskUseCase
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler with required dependencies.
func NewTaskHandler(taskUseCase usecase.TaskUseCase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
		logger:      logger,
	}
}

// ownerID extracts the authenticated identity's id from the request context.
func (h *TaskHandler) ownerID(c *gin.Context) (int64, bool) {
	claims, ok := identityHTTP.GetIdentity(c.Request.Context())
	if !ok {
		// Only reachable if the route was wired without the authentication
		// middleware.
		h.logger.Error("task handler: no identity claims in context")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return 0, false
	}
	return claims.IdentityID, true
}

// taskID parses the :id path parameter.
func taskID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: must be an integer")
	}
	return id, nil
}

// CreateTaskHandler creates a new task owned by the caller.
// POST /api/v1/tasks - Returns 201 Created.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	task, err := h.taskUseCase.Create(c.Request.Context(), ownerID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID))

	c.JSON(http.StatusCreated, dto.NewTaskResponse(task))
}

// ListTasksHandler lists the caller's tasks newest-first.
// GET /api/v1/tasks?offset=0&limit=50 - Returns 200 OK.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	tasks, err := h.taskUseCase.List(c.Request.Context(), ownerID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTasksToListResponse(tasks))
}

// GetTaskHandler returns a single task.
// GET /api/v1/tasks/:id - 404 when absent, 403 when owned by another identity.
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	id, err := taskID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	task, err := h.taskUseCase.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// UpdateTaskHandler changes title, description and status of a task.
// PUT /api/v1/tasks/:id - Returns 200 OK with the updated task.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	id, err := taskID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	task, err := h.taskUseCase.Update(c.Request.Context(), ownerID, id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// DeleteTaskHandler removes a task permanently.
// DELETE /api/v1/tasks/:id - Returns 204 No Content.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	id, err := taskID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.taskUseCase.Delete(c.Request.Context(), ownerID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("task deleted",
		slog.Int64("task_id", id),
		slog.Int64("owner_id", ownerID))

	c.Status(http.StatusNoContent)
}
