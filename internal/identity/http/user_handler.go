package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/taskmanager/internal/errors"
	"github.com/allisson/taskmanager/internal/httputil"
	"github.com/allisson/taskmanager/internal/identity/http/dto"
	"github.com/allisson/taskmanager/internal/identity/usecase"
)

// UserHandler handles HTTP requests for self-service account operations.
type UserHandler struct {
	identityUseCase usecase.IdentityUseCase
	logger          *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(identityUseCase usecase.IdentityUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		identityUseCase: identityUseCase,
		logger:          logger,
	}
}

// UpdateMeHandler applies profile edits to the calling account.
// PUT /api/v1/users/me - Requires authentication.
// The target account always comes from the validated token, so one account
// can never edit another.
func (h *UserHandler) UpdateMeHandler(c *gin.Context) {
	claims, ok := GetIdentity(c.Request.Context())
	if !ok {
		// Only reachable if the route was wired without the authentication
		// middleware.
		h.logger.Error("update me: no identity claims in context")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	identity, err := h.identityUseCase.UpdateSelf(c.Request.Context(), claims.IdentityID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(identity))
}
