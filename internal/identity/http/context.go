// Package http provides HTTP handlers and middleware for identity operations.
package http

import (
	"context"

	"github.com/allisson/taskmanager/internal/identity/domain"
)

// identityKey is a context key type for storing authenticated identity claims.
type identityKey struct{}

// WithIdentity stores the validated token claims in the context.
// This is called by the authentication middleware after successful token validation.
func WithIdentity(ctx context.Context, claims *domain.TokenClaims) context.Context {
	return context.WithValue(ctx, identityKey{}, claims)
}

// GetIdentity retrieves the validated token claims from the context.
// Returns (claims, true) if present, or (nil, false) if no claims were set.
func GetIdentity(ctx context.Context) (*domain.TokenClaims, bool) {
	claims, ok := ctx.Value(identityKey{}).(*domain.TokenClaims)
	return claims, ok
}
