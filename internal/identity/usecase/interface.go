// Package usecase implements the identity business logic: registration,
// login and self-service account edits.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/taskmanager/internal/identity/domain"
)

// RegisterInput contains the input data for registering a new identity.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// LoginInput contains the input data for authenticating an identity.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateSelfInput contains the fields an identity may change about itself.
// Nil fields are left untouched.
type UpdateSelfInput struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// AuthOutput is the result of a successful registration or login.
type AuthOutput struct {
	Identity  *domain.Identity
	Token     string
	ExpiresAt time.Time
}

// IdentityUseCase defines the identity business logic operations.
type IdentityUseCase interface {
	// Register creates a new identity and issues its first token.
	// Returns ErrIdentityAlreadyExists when the username or email is taken.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies the password and issues a token. Unknown usernames and
	// wrong passwords both return ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// UpdateSelf applies self-service edits to the calling identity.
	// Returns ErrIdentityNotFound when the identity no longer exists.
	UpdateSelf(ctx context.Context, identityID int64, input UpdateSelfInput) (*domain.Identity, error)
}

// IdentityRepository defines the persistence operations the identity use case
// consumes. Uniqueness of username and email is enforced by the store; a
// violation surfaces as ErrIdentityAlreadyExists, never a generic failure.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, id int64) (*domain.Identity, error)
	GetByUsername(ctx context.Context, username string) (*domain.Identity, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, identity *domain.Identity) error
}
