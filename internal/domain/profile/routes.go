package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mydaylogs/mydaylogs-api/internal/middleware"
)

// AuthRoutes returns the public auth endpoints (token-driven flows)
func (h *Handler) AuthRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/verify-email", h.VerifyEmail)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)

	return r
}

// Routes returns the authenticated tenant profile endpoints
func (h *Handler) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth)

	r.Get("/me", h.Me)
	r.Post("/me/password", h.ChangePassword)
	r.Post("/me/request-verification", h.RequestVerification)
	r.Post("/switch-organization", h.SwitchOrganization)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireManager())
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})

	return r
}

// MasterRoutes returns the master-gated user endpoints
func (h *Handler) MasterRoutes(requireMaster func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireMaster)

	r.Delete("/{id}", h.DeleteUser)

	return r
}
