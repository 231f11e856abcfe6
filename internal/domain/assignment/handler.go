package assignment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mydaylogs/mydaylogs-api/internal/middleware"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/response"
)

// Handler handles assignment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates assignment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /assignments
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())
	activeOnly := r.URL.Query().Get("active") == "true"

	assignments, err := h.service.List(r.Context(), orgID, activeOnly)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*AssignmentResponse, len(assignments))
	for i, a := range assignments {
		items[i] = ResponseFromEntity(a)
	}
	response.OK(w, items)
}

// Get handles GET /assignments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid assignment ID")
		return
	}

	a, err := h.service.Get(r.Context(), middleware.GetOrganizationID(r.Context()), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Assignment not found")
		} else {
			response.InternalError(w)
		}
		return
	}
	response.OK(w, ResponseFromEntity(a))
}

// Cancel handles POST /assignments/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid assignment ID")
		return
	}

	a, err := h.service.Cancel(r.Context(), middleware.GetOrganizationID(r.Context()), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Assignment not found")
		case ErrNotCancellable:
			response.Conflict(w, "Completed assignments cannot be cancelled")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(a))
}

// RestoreReport handles POST /reports/{id}/restore
func (h *Handler) RestoreReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.service.RestoreReport(r.Context(), middleware.GetOrganizationID(r.Context()), id)
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case ErrNotDeleted:
			response.Conflict(w, "Report is not deleted")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ReportResponseFromEntity(report))
}
