package assignment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mydaylogs/mydaylogs-api/internal/middleware"
)

// Routes returns the authenticated assignment endpoints
func (h *Handler) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth)

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireOrgAdmin())
		r.Post("/{id}/cancel", h.Cancel)
	})

	return r
}

// ReportRoutes returns the authenticated report endpoints
func (h *Handler) ReportRoutes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth)
	r.Use(middleware.RequireOrgAdmin())

	r.Post("/{id}/restore", h.RestoreReport)

	return r
}
