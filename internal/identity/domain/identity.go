// Package domain defines the core identity entities and types.
package domain

import (
	"time"

	"github.com/allisson/taskmanager/internal/errors"
)

// Credential is the stored secret material used to verify a password.
// The hash is a keyed MAC of the password; the key is random per credential
// and acts as the salt. The two buffers are kept separate on purpose: a
// credential is only usable when both are present.
type Credential struct {
	PasswordHash []byte
	PasswordKey  []byte
}

// Valid reports whether both credential buffers are present and non-empty.
func (c Credential) Valid() bool {
	return len(c.PasswordHash) > 0 && len(c.PasswordKey) > 0
}

// Identity represents a registered user account.
type Identity struct {
	ID         int64
	Username   string
	Email      string
	Phone      string
	Credential Credential
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Domain-specific errors for identity operations.
var (
	// ErrIdentityNotFound indicates the requested identity does not exist.
	ErrIdentityNotFound = errors.Wrap(errors.ErrNotFound, "identity not found")

	// ErrIdentityAlreadyExists indicates an identity with the same username or
	// email is already registered.
	ErrIdentityAlreadyExists = errors.Wrap(errors.ErrConflict, "identity already exists")

	// ErrInvalidCredentials indicates an unknown username or a password
	// mismatch. The two cases share one error on purpose so callers cannot
	// enumerate registered usernames.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
