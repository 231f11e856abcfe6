package organization

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mydaylogs/mydaylogs-api/internal/domain/masteradmin"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/response"
)

// Handler handles organization HTTP requests (master back office)
type Handler struct {
	service  *Service
	auditSvc *masteradmin.Service
}

// NewHandler creates organization handler
func NewHandler(service *Service, auditSvc *masteradmin.Service) *Handler {
	return &Handler{service: service, auditSvc: auditSvc}
}

// List handles GET /master/organizations
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	orgs, err := h.service.List(r.Context(), includeArchived)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*OrganizationResponse, len(orgs))
	for i, org := range orgs {
		items[i] = ResponseFromEntity(org)
	}
	response.OK(w, items)
}

// Get handles GET /master/organizations/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid organization ID")
		return
	}

	org, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Organization not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(org))
}

// Archive handles POST /master/organizations/{id}/archive
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid organization ID")
		return
	}

	if err := h.service.Archive(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Organization not found")
		case ErrAlreadyArchived:
			response.Conflict(w, "Organization is already archived")
		default:
			response.InternalError(w)
		}
		return
	}

	actor := masteradmin.SessionFromContext(r.Context())
	h.auditSvc.Audit(r.Context(), actor, "organization.archive", "organization", id.String(), nil, nil)

	response.OK(w, map[string]bool{"archived": true})
}

// Delete handles DELETE /master/organizations/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid organization ID")
		return
	}

	actor := masteradmin.SessionFromContext(r.Context())

	report, err := h.service.Delete(r.Context(), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Organization not found")
			return
		case ErrPartialDeletion:
			// Not a bare 500: the report names what was and wasn't removed.
			h.auditSvc.Audit(r.Context(), actor, "organization.delete.partial", "organization", id.String(), nil, report)
			response.JSON(w, http.StatusInternalServerError, report)
			return
		default:
			response.InternalError(w)
			return
		}
	}

	h.auditSvc.Audit(r.Context(), actor, "organization.delete", "organization", id.String(), nil, report)
	response.OK(w, report)
}
