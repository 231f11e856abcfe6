package organization

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the master-gated organization router
func (h *Handler) Routes(requireMaster func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireMaster)

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/archive", h.Archive)
	r.Delete("/{id}", h.Delete)

	return r
}
