package masteradmin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mydaylogs/mydaylogs-api/internal/pkg/email"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/response"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/session"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/validator"
)

// Handler handles master back-office HTTP requests
type Handler struct {
	service      *Service
	gate         *Gate
	codec        *session.Codec
	mailer       email.Sender
	secureCookie bool
}

// NewHandler creates the back-office handler
func NewHandler(service *Service, gate *Gate, codec *session.Codec, mailer email.Sender, secureCookie bool) *Handler {
	return &Handler{
		service:      service,
		gate:         gate,
		codec:        codec,
		mailer:       mailer,
		secureCookie: secureCookie,
	}
}

// --- Authentication ---

// Login handles POST /master/auth/login
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

	payload, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case ErrSuperuserInactive:
			response.Forbidden(w, "Account is inactive")
		default:
			response.InternalError(w)
		}
		return
	}

	value, err := h.codec.Encode(*payload)
	if err != nil {
		response.InternalError(w)
		return
	}
	h.codec.SetCookie(w, value, h.secureCookie)

	h.service.Audit(r.Context(), payload, "master.login", "session", "", nil, nil)
	response.OK(w, sessionResponse(payload))
}

// Logout handles POST /master/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if payload := h.codec.FromRequest(r); payload != nil {
		h.service.Audit(r.Context(), payload, "master.logout", "session", "", nil, nil)
	}
	h.codec.ClearCookie(w, h.secureCookie)
	response.OK(w, map[string]bool{"signed_out": true})
}

// CheckAuth handles GET /master/auth/check
func (h *Handler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	payload := SessionFromContext(r.Context())
	response.OK(w, sessionResponse(payload))
}

// --- Impersonation ---

// StartImpersonation handles POST /master/impersonate
func (h *Handler) StartImpersonation(w http.ResponseWriter, r *http.Request) {
	var req ImpersonateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	payload := SessionFromContext(r.Context())
	next, err := StartImpersonation(payload, req.UserID)
	if err != nil {
		if err == ErrCannotImpersonate {
			response.Forbidden(w, "Caller may not impersonate users")
		} else {
			response.Unauthorized(w, "Not authenticated")
		}
		return
	}

	value, err := h.codec.Encode(*next)
	if err != nil {
		response.InternalError(w)
		return
	}
	h.codec.SetCookie(w, value, h.secureCookie)

	h.service.Audit(r.Context(), payload, "impersonation.start", "user", req.UserID, nil, nil)
	response.OK(w, sessionResponse(next))
}

// EndImpersonation handles DELETE /master/impersonate
func (h *Handler) EndImpersonation(w http.ResponseWriter, r *http.Request) {
	payload := SessionFromContext(r.Context())
	next, err := EndImpersonation(payload)
	if err != nil {
		if err == ErrNotImpersonating {
			response.BadRequest(w, "No impersonation session is active")
		} else {
			response.Unauthorized(w, "Not authenticated")
		}
		return
	}

	value, err := h.codec.Encode(*next)
	if err != nil {
		response.InternalError(w)
		return
	}
	h.codec.SetCookie(w, value, h.secureCookie)

	h.service.Audit(r.Context(), next, "impersonation.end", "user", payload.Impersonating, nil, nil)
	response.OK(w, sessionResponse(next))
}

// --- Superuser management ---

// ListSuperusers handles GET /master/superusers
func (h *Handler) ListSuperusers(w http.ResponseWriter, r *http.Request) {
	superusers, err := h.service.ListSuperusers(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*SuperuserResponse, len(superusers))
	for i, su := range superusers {
		items[i] = SuperuserResponseFromEntity(su)
	}
	response.OK(w, items)
}

// CreateSuperuser handles POST /master/superusers
func (h *Handler) CreateSuperuser(w http.ResponseWriter, r *http.Request) {
	var req CreateSuperuserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	actor := SessionFromContext(r.Context())
	su, err := h.service.CreateSuperuser(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case ErrEmailTaken:
			response.Conflict(w, "Email already in use")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, SuperuserResponseFromEntity(su))
}

// UpdateSuperuser handles PATCH /master/superusers/{id}
func (h *Handler) UpdateSuperuser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid superuser ID")
		return
	}

	var req UpdateSuperuserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	actor := SessionFromContext(r.Context())
	su, err := h.service.UpdateSuperuser(r.Context(), actor, id, &req)
	if err != nil {
		switch err {
		case ErrSuperuserNotFound:
			response.NotFound(w, "Superuser not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, SuperuserResponseFromEntity(su))
}

// DeleteSuperuser handles DELETE /master/superusers/{id}
func (h *Handler) DeleteSuperuser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid superuser ID")
		return
	}

	actor := SessionFromContext(r.Context())
	if err := h.service.DeleteSuperuser(r.Context(), actor, id); err != nil {
		switch err {
		case ErrSuperuserNotFound:
			response.NotFound(w, "Superuser not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"deleted": true})
}

// --- Email ---

// SendEmail handles POST /master/email
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	actor := SessionFromContext(r.Context())
	err := h.mailer.SendTemplate(r.Context(), req.To, req.ToName, "admin_message", req.Subject, map[string]string{
		"Name":    req.ToName,
		"Subject": req.Subject,
		"Body":    req.Body,
	})
	if err != nil {
		response.UpstreamError(w)
		return
	}

	h.service.Audit(r.Context(), actor, "email.send", "email", req.To, nil, nil)
	response.OK(w, map[string]bool{"queued": true})
}

// --- Audit logs ---

// AuditLogs handles GET /master/audit/logs
func (h *Handler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	filter := AuditFilter{
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if v := r.URL.Query().Get("actor"); v != "" {
		filter.ActorEmail = &v
	}
	if v := r.URL.Query().Get("action"); v != "" {
		filter.Action = &v
	}
	if v := r.URL.Query().Get("entity_type"); v != "" {
		filter.EntityType = &v
	}

	logs, total, err := h.service.ListAuditLogs(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*AuditLogResponse, len(logs))
	for i, entry := range logs {
		items[i] = auditLogResponse(entry)
	}

	response.OK(w, map[string]interface{}{
		"logs":  items,
		"total": total,
	})
}

func auditLogResponse(entry *AuditLog) *AuditLogResponse {
	resp := &AuditLogResponse{
		ID:         entry.ID,
		ActorEmail: entry.ActorEmail,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.EntityID.Valid {
		resp.EntityID = &entry.EntityID.String
	}
	if entry.IPAddress.Valid {
		resp.IPAddress = &entry.IPAddress.String
	}
	if len(entry.OldValue) > 0 {
		var v interface{}
		if json.Unmarshal(entry.OldValue, &v) == nil {
			resp.OldValue = v
		}
	}
	if len(entry.NewValue) > 0 {
		var v interface{}
		if json.Unmarshal(entry.NewValue, &v) == nil {
			resp.NewValue = v
		}
	}
	return resp
}

func sessionResponse(p *session.Payload) *SessionResponse {
	if p == nil {
		return nil
	}
	return &SessionResponse{
		Email:         p.Email,
		Role:          string(p.Role),
		SuperuserRole: p.SuperuserRole,
		Impersonating: p.Impersonating,
	}
}

func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
