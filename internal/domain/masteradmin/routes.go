package masteradmin

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the master back-office router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Auth routes (no session required)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)

	// Everything below requires a verified master session
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireMaster)

		r.Get("/auth/check", h.CheckAuth)

		r.Post("/impersonate", h.StartImpersonation)
		r.Delete("/impersonate", h.EndImpersonation)

		r.Route("/superusers", func(r chi.Router) {
			r.Get("/", h.ListSuperusers)
			r.Post("/", h.CreateSuperuser)
			r.Patch("/{id}", h.UpdateSuperuser)
			r.Delete("/{id}", h.DeleteSuperuser)
		})

		r.Post("/email", h.SendEmail)

		r.Get("/audit/logs", h.AuditLogs)
	})

	return r
}
