package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// FieldRoutes returns routes mounted under /fields/{id}/comments
func (h *Handler) FieldRoutes(authMiddleware, optionalAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/", h.ListByField)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Add)
	})

	return r
}

// Routes returns routes mounted under /comments
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Post("/{id}/like", h.ToggleLike)

	return r
}
