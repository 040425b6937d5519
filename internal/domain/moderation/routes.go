package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/algedu/algedu-api/internal/middleware"
)

// Routes returns the user-facing report submission route
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Post("/reports", h.SubmitReport)

	return r
}

// AdminRoutes returns staff-only moderation routes
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Get("/reports", h.ListPending)
	r.Post("/reports/{id}/resolve", h.ResolveReport)
	r.Post("/unblock", h.Unblock)
	r.Post("/users/{id}/ban", h.BanUser)
	r.Get("/panel", h.Panel)

	return r
}
