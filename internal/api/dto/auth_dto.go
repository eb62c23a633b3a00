package dto

import (
	"time"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/view"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload. Role defaults to citizen.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// PasswordResetRequest asks for a reset token.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetApply applies a reset token.
type PasswordResetApply struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// IdentityResponse is the caller's profile. The token is never echoed here.
type IdentityResponse struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// SessionResponse is returned by login and register.
type SessionResponse struct {
	Token      string           `json:"token"`
	ExpiresAt  *time.Time       `json:"expiresAt,omitempty"`
	User       IdentityResponse `json:"user"`
	Dashboard  view.Dashboard   `json:"dashboard"`
	Complaints int              `json:"complaints"`
}

// NewIdentityResponse maps an identity.
func NewIdentityResponse(id domain.Identity) IdentityResponse {
	return IdentityResponse{ID: id.ID, Email: id.Email, Name: id.Name, Role: id.Role}
}
