package subscription

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mydaylogs/mydaylogs-api/internal/domain/masteradmin"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/billing"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/response"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/validator"
)

// Handler handles subscription HTTP requests (master back office)
type Handler struct {
	service  *Service
	gate     *masteradmin.Gate
	auditSvc *masteradmin.Service
}

// NewHandler creates subscription handler
func NewHandler(service *Service, gate *masteradmin.Gate, auditSvc *masteradmin.Service) *Handler {
	return &Handler{service: service, gate: gate, auditSvc: auditSvc}
}

// GetForOrganization handles GET /master/subscriptions/organization/{orgID}
func (h *Handler) GetForOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		response.BadRequest(w, "Invalid organization ID")
		return
	}

	sub, err := h.service.GetForOrganization(r.Context(), orgID)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Subscription not found")
		} else {
			response.InternalError(w)
		}
		return
	}
	response.OK(w, ResponseFromEntity(sub))
}

// ListPayments handles GET /master/subscriptions/organization/{orgID}/payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		response.BadRequest(w, "Invalid organization ID")
		return
	}

	payments, err := h.service.ListPayments(r.Context(), orgID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = PaymentResponseFromEntity(p)
	}
	response.OK(w, items)
}

// Cancel handles POST /master/subscriptions/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid subscription ID")
		return
	}

	sub, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case err == ErrNotFound:
			response.NotFound(w, "Subscription not found")
		case err == ErrAlreadyCancelled:
			response.Conflict(w, "Subscription is already cancelled")
		case isProviderError(err):
			// Detail is in the logs, not the response
			response.UpstreamError(w)
		default:
			response.InternalError(w)
		}
		return
	}

	actor := masteradmin.SessionFromContext(r.Context())
	h.auditSvc.Audit(r.Context(), actor, "subscription.cancel", "subscription", id.String(), nil, nil)

	response.OK(w, ResponseFromEntity(sub))
}

// Refund handles POST /master/payments/{id}/refund
func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	// Body is optional: no body means a full refund
	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actor := masteradmin.SessionFromContext(r.Context())
	allowed, err := h.gate.CanRefund(r.Context(), actor)
	if err != nil {
		response.InternalError(w)
		return
	}
	if !allowed {
		response.Forbidden(w, "Refunds require a billing or operations role")
		return
	}

	payment, err := h.service.Refund(r.Context(), id, req.Amount)
	if err != nil {
		switch {
		case err == ErrPaymentNotFound:
			response.NotFound(w, "Payment not found")
		case err == ErrAlreadyRefunded:
			response.Conflict(w, "Payment is already refunded")
		case isProviderError(err):
			response.UpstreamError(w)
		default:
			response.InternalError(w)
		}
		return
	}

	h.auditSvc.Audit(r.Context(), actor, "payment.refund", "payment", id.String(), nil, map[string]int64{"amount": req.Amount})

	response.OK(w, PaymentResponseFromEntity(payment))
}

func isProviderError(err error) bool {
	var apiErr *billing.APIError
	return errors.As(err, &apiErr)
}
