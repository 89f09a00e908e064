// Package http provides the HTTP server, router setup and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityHTTP "github.com/allisson/taskmanager/internal/identity/http"
	taskHTTP "github.com/allisson/taskmanager/internal/task/http"
)

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is assembled separately by
// SetupRouter so tests can exercise handlers without the full dependency set.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware options used to build the
// API router.
type RouterConfig struct {
	AuthHandler    *identityHTTP.AuthHandler
	UserHandler    *identityHTTP.UserHandler
	TaskHandler    *taskHTTP.TaskHandler
	TokenValidator identityHTTP.TokenValidator

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	RateLimitAuthEnabled        bool
	RateLimitAuthRequestsPerSec float64
	RateLimitAuthBurst          int

	// MetricsMiddleware is optional; nil disables HTTP metrics collection.
	MetricsMiddleware gin.HandlerFunc
}

// SetupRouter builds the gin router and registers all routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api/v1")

	// Register and login are unauthenticated, so their rate limit is keyed
	// by client IP instead of identity.
	auth := api.Group("/auth")
	if cfg.RateLimitAuthEnabled {
		auth.Use(identityHTTP.AuthRateLimitMiddleware(
			cfg.RateLimitAuthRequestsPerSec,
			cfg.RateLimitAuthBurst,
			s.logger,
		))
	}
	auth.POST("/register", cfg.AuthHandler.RegisterHandler)
	auth.POST("/login", cfg.AuthHandler.LoginHandler)

	protected := api.Group("")
	protected.Use(identityHTTP.AuthenticationMiddleware(cfg.TokenValidator, s.logger))
	if cfg.RateLimitEnabled {
		protected.Use(identityHTTP.RateLimitMiddleware(
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	protected.PUT("/users/me", cfg.UserHandler.UpdateMeHandler)

	tasks := protected.Group("/tasks")
	tasks.POST("", cfg.TaskHandler.CreateTaskHandler)
	tasks.GET("", cfg.TaskHandler.ListTasksHandler)
	tasks.GET("/:id", cfg.TaskHandler.GetTaskHandler)
	tasks.PUT("/:id", cfg.TaskHandler.UpdateTaskHandler)
	tasks.DELETE("/:id", cfg.TaskHandler.DeleteTaskHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, which
// requires a reachable database.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("Readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
