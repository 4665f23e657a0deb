package dto

import (
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// --- Auth Request DTOs ---

// RegisterRequest creates an applicant account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token. Browser clients may omit the
// body and rely on the session cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest is filled by the handler from the body and the auth context.
type LogoutRequest struct {
	RefreshToken   string    `json:"refresh_token"`
	TokenID        string    `json:"-"`
	TokenExpiresAt time.Time `json:"-"`
}

type ChangePasswordRequest struct {
	UserID          uuid.UUID `json:"-"`
	CurrentPassword string    `json:"current_password" validate:"required"`
	NewPassword     string    `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	User         *models.User `json:"user,omitempty"`
}

// --- User admin DTOs ---

// CreateStaffRequest lets an admin create an account of any role.
type CreateStaffRequest struct {
	Email     string      `json:"email" validate:"required,email,max=254"`
	Password  string      `json:"password" validate:"required,min=8,max=72"`
	FirstName string      `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string      `json:"last_name" validate:"omitempty,max=100"`
	Role      models.Role `json:"role" validate:"required,role"`
}

type UpdateRoleRequest struct {
	ID      uuid.UUID   `json:"-"`
	ActorID uuid.UUID   `json:"-"`
	Role    models.Role `json:"role" validate:"required,role"`
}

type DeleteUserRequest struct {
	ID      uuid.UUID `json:"-"`
	ActorID uuid.UUID `json:"-"`
}

type ListUsersRequest struct {
	Pagination
	Role   string `form:"role" validate:"omitempty,role"`
	Search string `form:"search" validate:"max=100"`
}
