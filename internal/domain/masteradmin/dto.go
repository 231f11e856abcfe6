package masteradmin

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest for POST /master/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SessionResponse describes the current master session
type SessionResponse struct {
	Email         string `json:"email"`
	Role          string `json:"role"`
	SuperuserRole string `json:"superuser_role,omitempty"`
	Impersonating string `json:"impersonating,omitempty"`
}

// ImpersonateRequest for POST /master/impersonate
type ImpersonateRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// CreateSuperuserRequest for POST /master/superusers
type CreateSuperuserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,superuser_role"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

// UpdateSuperuserRequest for PATCH /master/superusers/{id}
type UpdateSuperuserRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Role     *string `json:"role,omitempty" validate:"omitempty,superuser_role"`
	IsActive *bool   `json:"is_active,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// SuperuserResponse represents a superuser in the API
type SuperuserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FullName    string    `json:"full_name"`
	IsActive    bool      `json:"is_active"`
	LastLoginAt *string   `json:"last_login_at,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// SuperuserResponseFromEntity converts entity to response
func SuperuserResponseFromEntity(s *Superuser) *SuperuserResponse {
	resp := &SuperuserResponse{
		ID:        s.ID,
		Email:     s.Email,
		Role:      string(s.Role),
		FullName:  s.FullName,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
	if s.LastLoginAt.Valid {
		v := s.LastLoginAt.Time.Format(time.RFC3339)
		resp.LastLoginAt = &v
	}
	return resp
}

// SendEmailRequest for POST /master/email
type SendEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	ToName  string `json:"to_name" validate:"omitempty,max=100"`
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Body    string `json:"body" validate:"required,min=1"`
}

// AuditLogResponse represents an audit entry in the API
type AuditLogResponse struct {
	ID         uuid.UUID   `json:"id"`
	ActorEmail string      `json:"actor_email"`
	Action     string      `json:"action"`
	EntityType string      `json:"entity_type"`
	EntityID   *string     `json:"entity_id,omitempty"`
	OldValue   interface{} `json:"old_value,omitempty"`
	NewValue   interface{} `json:"new_value,omitempty"`
	IPAddress  *string     `json:"ip_address,omitempty"`
	CreatedAt  string      `json:"created_at"`
}
