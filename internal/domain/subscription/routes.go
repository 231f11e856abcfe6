package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the master-gated subscription router
func (h *Handler) Routes(requireMaster func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireMaster)

	r.Get("/organization/{orgID}", h.GetForOrganization)
	r.Get("/organization/{orgID}/payments", h.ListPayments)
	r.Post("/{id}/cancel", h.Cancel)

	return r
}

// PaymentRoutes returns the master-gated payment router
func (h *Handler) PaymentRoutes(requireMaster func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireMaster)

	r.Post("/{id}/refund", h.Refund)

	return r
}
