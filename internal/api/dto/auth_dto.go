package dto

import (
	"time"

	"github.com/spec-kit/employee-records/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidateRequest payload for token validation.
type ValidateRequest struct {
	Token string `json:"token"`
}

// AuthResponse is the shape shared by register and login. It carries
// the single role attached to the account; the validate path echoes the
// token's roles list instead.
type AuthResponse struct {
	Token     string      `json:"token"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	ExpiresIn int64       `json:"expiresIn"`
}

// ValidateResponse is the decoded identity of a presented token.
type ValidateResponse struct {
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	Roles     []string    `json:"roles"`
	IssuedAt  time.Time   `json:"issuedAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest payload for initiating a reset.
type PasswordResetRequest struct {
	Username string `json:"username"`
}

// PasswordResetConfirmRequest payload for completing a reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
