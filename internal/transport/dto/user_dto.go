package dto

import (
	"time"

	"github.com/google/uuid"

	"hiring-api/internal/models"
)

// RegisterRequest defines the structure for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

// LoginRequest defines the structure for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest defines the structure for rotating a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest defines the structure for revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// GetUserRequest carries the target and caller identity for profile reads.
type GetUserRequest struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	ActorRole models.Role
}

// UpdateUserRequest defines the structure for updating an existing user.
// Role changes are honored only for ADMIN callers.
type UpdateUserRequest struct {
	ID    uuid.UUID    `json:"-"`
	Name  *string      `json:"name" validate:"omitempty,max=100"`
	Phone *string      `json:"phone" validate:"omitempty,max=32"`
	Role  *models.Role `json:"role" validate:"omitempty,oneof=APPLICANT HR ADMIN"`

	// Caller identity, set by the handler.
	ActorID   uuid.UUID   `json:"-"`
	ActorRole models.Role `json:"-"`
}

// DeleteUserRequest defines the structure for deleting a user.
type DeleteUserRequest struct {
	ID        uuid.UUID   `json:"-"`
	ActorID   uuid.UUID   `json:"-"`
	ActorRole models.Role `json:"-"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone,omitempty"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TokenResponse carries a fresh access/refresh token pair.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}
