package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest represents the request body for user registration
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Nickname string `json:"nickname" binding:"required,max=30" example:"moadal"`
	Username string `json:"username" binding:"required" example:"Kim Evento"`
	Password string `json:"password" binding:"required,min=8" example:"securePass123"`
	Birth    string `json:"birth,omitempty" example:"1999-04-21"`
}

// UpdateUserRequest represents the request body for updating a profile
type UpdateUserRequest struct {
	Nickname *string `json:"nickname,omitempty" binding:"omitempty,max=30"`
	Username *string `json:"username,omitempty"`
	Birth    *string `json:"birth,omitempty" example:"1999-04-21"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents the user data returned in API responses
type UserResponse struct {
	ID        uuid.UUID  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email     string     `json:"email" example:"user@example.com"`
	Nickname  string     `json:"nickname" example:"moadal"`
	Username  string     `json:"username" example:"Kim Evento"`
	Birth     *time.Time `json:"birth,omitempty"`
	IsActive  bool       `json:"is_active" example:"true"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
