package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/taskmanager/internal/httputil"
	"github.com/allisson/taskmanager/internal/identity/http/dto"
	"github.com/allisson/taskmanager/internal/identity/usecase"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	identityUseCase usecase.IdentityUseCase
	logger          *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(identityUseCase usecase.IdentityUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identityUseCase: identityUseCase,
		logger:          logger,
	}
}

// RegisterHandler creates a new account and returns its first token.
// POST /api/v1/auth/register - No authentication required.
// Returns 201 Created with the token and the created user.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	output, err := h.identityUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("identity registered",
		slog.Int64("identity_id", output.Identity.ID),
		slog.String("username", output.Identity.Username))

	c.JSON(http.StatusCreated, dto.NewAuthResponse(output))
}

// LoginHandler authenticates a username and password and returns a token.
// POST /api/v1/auth/login - No authentication required.
// Returns 200 OK with the token, or 401 for unknown username or wrong password.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	output, err := h.identityUseCase.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthResponse(output))
}
