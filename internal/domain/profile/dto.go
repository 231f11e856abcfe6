package profile

import (
	"time"

	"github.com/google/uuid"
)

// ProfileResponse represents a profile in the API
type ProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	EmailVerified  bool      `json:"email_verified"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      string    `json:"created_at"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(p *Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		OrganizationID: p.OrganizationID,
		Email:          p.Email,
		FullName:       p.FullName,
		Role:           p.Role,
		EmailVerified:  p.EmailVerified,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

// LoginRequest for POST /auth/login. OrganizationID is optional: without
// it the first active membership is used.
type LoginRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	OrganizationID string `json:"organization_id,omitempty" validate:"omitempty,uuid"`
}

// LoginResponse carries the token pair for a tenant session
type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	RedirectPath string           `json:"redirect_path"`
	Profile      *ProfileResponse `json:"profile"`
}

// RefreshRequest for POST /auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest for POST /profiles/me/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ForgotPasswordRequest for POST /auth/forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest for POST /auth/reset-password
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// VerifyEmailRequest for POST /auth/verify-email
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// SwitchOrganizationRequest for POST /auth/switch-organization
type SwitchOrganizationRequest struct {
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
}

// SwitchOrganizationResponse carries the fresh token for the target org.
// RedirectPath tells the client where to land after the switch.
type SwitchOrganizationResponse struct {
	AccessToken  string           `json:"access_token"`
	RedirectPath string           `json:"redirect_path"`
	Profile      *ProfileResponse `json:"profile"`
}
