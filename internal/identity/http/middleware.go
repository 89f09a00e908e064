package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/taskmanager/internal/errors"
	"github.com/allisson/taskmanager/internal/httputil"
	"github.com/allisson/taskmanager/internal/identity/domain"
)

// TokenValidator validates a bearer token and returns its claims. Satisfied
// by service.TokenService; kept narrow so the middleware can be tested with
// a stub.
type TokenValidator interface {
	Validate(token string) (*domain.TokenClaims, error)
}

// AuthenticationMiddleware authenticates requests via a Bearer token in the
// Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Validates the token signature, issuer, audience and validity window
// 3. Stores the token claims in the request context
// 4. Allows downstream handlers to access the claims via GetIdentity()
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
//
// Every failure mode produces the same 401 response; the specific reason is
// only visible in debug logs.
func AuthenticationMiddleware(validator TokenValidator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store validated claims in context
		ctx := WithIdentity(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.Int64("identity_id", claims.IdentityID),
			slog.String("username", claims.Username))

		c.Next()
	}
}
