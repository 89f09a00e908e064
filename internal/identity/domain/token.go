package domain

import (
	"time"

	"github.com/allisson/taskmanager/internal/errors"
)

// TokenClaims captures the validated contents of an identity token. The
// subject id in here is the only trusted source of "who is calling";
// identity fields in request bodies are never used for that purpose.
type TokenClaims struct {
	IdentityID int64
	Username   string
	Email      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Token validation errors. Every variant wraps ErrUnauthorized so the HTTP
// layer collapses them all into a generic 401; the distinction exists for
// logging only and must never reach a client.
var (
	// ErrTokenMalformed indicates the token cannot be parsed.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "token is malformed")

	// ErrTokenBadSignature indicates the token was tampered with or signed
	// with a different secret.
	ErrTokenBadSignature = errors.Wrap(errors.ErrUnauthorized, "token signature is invalid")

	// ErrTokenExpired indicates the token validity window has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token is expired")

	// ErrTokenNotYetValid indicates the token issue time is in the future.
	ErrTokenNotYetValid = errors.Wrap(errors.ErrUnauthorized, "token is not valid yet")

	// ErrTokenIssuerMismatch indicates the issuer claim does not match the
	// configured issuer.
	ErrTokenIssuerMismatch = errors.Wrap(errors.ErrUnauthorized, "token issuer mismatch")

	// ErrTokenAudienceMismatch indicates the audience claim does not match
	// the configured audience.
	ErrTokenAudienceMismatch = errors.Wrap(errors.ErrUnauthorized, "token audience mismatch")
)
