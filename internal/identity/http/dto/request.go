// Package dto defines request and response bodies for identity endpoints.
package dto

import "github.com/allisson/taskmanager/internal/identity/usecase"

// RegisterRequest represents the request body for registering a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ToInput converts the request to a use case input.
func (r RegisterRequest) ToInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToInput converts the request to a use case input.
func (r LoginRequest) ToInput() usecase.LoginInput {
	return usecase.LoginInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// UpdateMeRequest represents the request body for self-service profile edits.
// Absent fields are left untouched.
type UpdateMeRequest struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// ToInput converts the request to a use case input.
func (r UpdateMeRequest) ToInput() usecase.UpdateSelfInput {
	return usecase.UpdateSelfInput{
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
	}
}
