// Package service provides technical services for identity operations.
//
// This package implements credential hashing and identity token issuance and
// validation. Both services are pure and safe for concurrent use: they hold
// no mutable state beyond read-only configuration.
package service

import (
	"time"

	"github.com/allisson/taskmanager/internal/identity/domain"
)

// CredentialHasher defines operations for deriving and verifying password
// credentials.
type CredentialHasher interface {
	// Derive generates a fresh random key and computes a keyed hash of the
	// password with it. Two calls with the same password produce different
	// credentials because the key is randomized per call.
	Derive(password string) (domain.Credential, error)

	// Verify recomputes the keyed hash with the stored key and compares it to
	// the stored hash in constant time. It never fails with an error:
	// malformed or incomplete credentials simply do not verify.
	Verify(password string, credential domain.Credential) bool
}

// TokenService defines operations for issuing and validating identity tokens.
// Tokens are stateless and self-verifying: nothing is persisted server-side,
// and there is no revocation — a compromised token stays usable until it
// expires or the signing secret is rotated (which invalidates every
// outstanding token).
type TokenService interface {
	// Issue builds a signed token for the identity, valid from now until
	// now + the configured expiration.
	Issue(identity *domain.Identity) (token string, expiresAt time.Time, err error)

	// Validate verifies the token signature, issuer, audience and validity
	// window (zero clock-skew tolerance) and returns the embedded claims.
	Validate(token string) (*domain.TokenClaims, error)
}
