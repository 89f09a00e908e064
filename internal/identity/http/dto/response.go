package dto

import (
	"time"

	"github.com/allisson/taskmanager/internal/identity/domain"
	"github.com/allisson/taskmanager/internal/identity/usecase"
)

// UserResponse represents an identity in API responses. Credential material
// never appears here.
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewUserResponse converts a domain identity to a response.
func NewUserResponse(identity *domain.Identity) UserResponse {
	return UserResponse{
		ID:        identity.ID,
		Username:  identity.Username,
		Email:     identity.Email,
		Phone:     identity.Phone,
		CreatedAt: identity.CreatedAt,
		UpdatedAt: identity.UpdatedAt,
	}
}

// AuthResponse represents a successful registration or login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// NewAuthResponse converts a use case auth output to a response.
func NewAuthResponse(output *usecase.AuthOutput) AuthResponse {
	return AuthResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User:      NewUserResponse(output.Identity),
	}
}
