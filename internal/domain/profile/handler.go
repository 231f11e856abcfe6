package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mydaylogs/mydaylogs-api/internal/domain/masteradmin"
	"github.com/mydaylogs/mydaylogs-api/internal/middleware"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/response"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/validator"
)

// Handler handles profile HTTP requests
type Handler struct {
	service  *Service
	auditSvc *masteradmin.Service
}

// NewHandler creates profile handler
func NewHandler(service *Service, auditSvc *masteradmin.Service) *Handler {
	return &Handler{service: service, auditSvc: auditSvc}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	var orgID *uuid.UUID
	if req.OrganizationID != "" {
		id, err := uuid.Parse(req.OrganizationID)
		if err != nil {
			response.BadRequest(w, "Invalid organization ID")
			return
		}
		orgID = &id
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password, orgID)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case ErrNoMembership:
			response.Forbidden(w, "No active organization membership")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case ErrInvalidToken:
			response.Unauthorized(w, "Invalid or expired refresh token")
		case ErrNoMembership:
			response.Forbidden(w, "No active organization membership")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Me handles GET /profiles/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	callerOrg := middleware.GetOrganizationID(r.Context())
	profileID := middleware.GetProfileID(r.Context())

	p, err := h.service.Get(r.Context(), callerOrg, profileID)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Profile not found")
		} else {
			response.InternalError(w)
		}
		return
	}
	response.OK(w, ResponseFromEntity(p))
}

// List handles GET /profiles
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	profiles, err := h.service.ListByOrganization(r.Context(), orgID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*ProfileResponse, len(profiles))
	for i, p := range profiles {
		items[i] = ResponseFromEntity(p)
	}
	response.OK(w, items)
}

// Get handles GET /profiles/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	p, err := h.service.Get(r.Context(), middleware.GetOrganizationID(r.Context()), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Profile not found")
		} else {
			response.InternalError(w)
		}
		return
	}
	response.OK(w, ResponseFromEntity(p))
}

// ChangePassword handles POST /profiles/me/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch err {
		case ErrWrongPassword:
			response.BadRequest(w, "Current password is incorrect")
		case ErrIdentityNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"changed": true})
}

// SwitchOrganization handles POST /auth/switch-organization
func (h *Handler) SwitchOrganization(w http.ResponseWriter, r *http.Request) {
	var req SwitchOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	targetOrgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		response.BadRequest(w, "Invalid organization ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	result, err := h.service.SwitchOrganization(r.Context(), userID, targetOrgID)
	if err != nil {
		if err == ErrNoMembership {
			// Absence and denial read the same to the caller
			response.NotFound(w, "Organization not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// RequestVerification handles POST /profiles/me/request-verification
func (h *Handler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.service.RequestEmailVerification(r.Context(), userID); err != nil {
		if err == ErrIdentityNotFound {
			response.NotFound(w, "Account not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"sent": true})
}

// VerifyEmail handles POST /auth/verify-email
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.VerifyEmail(r.Context(), req.Token); err != nil {
		if err == ErrInvalidToken {
			response.BadRequest(w, "Invalid or expired token")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"verified": true})
}

// ForgotPassword handles POST /auth/forgot-password
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		response.InternalError(w)
		return
	}

	// Same response whether or not the account exists
	response.OK(w, map[string]bool{"sent": true})
}

// ResetPassword handles POST /auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		if err == ErrInvalidToken {
			response.BadRequest(w, "Invalid or expired token")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"reset": true})
}

// DeleteUser handles DELETE /master/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		response.InternalError(w)
		return
	}

	actor := masteradmin.SessionFromContext(r.Context())
	h.auditSvc.Audit(r.Context(), actor, "user.delete", "user", id.String(), nil, nil)

	response.OK(w, map[string]bool{"deleted": true})
}
