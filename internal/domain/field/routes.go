package field

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns field routes. Listing, search, detail and state are
// public; mutations require authentication.
func (h *Handler) Routes(authMiddleware, optionalAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/search", h.Search)

	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/state", h.State)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Post("/{id}/like", h.ToggleLike)
		r.Post("/{id}/favorite", h.ToggleFavorite)
		r.Get("/mine", h.ProfileFields)
	})

	return r
}

// WallRoutes returns wall placement routes
func (h *Handler) WallRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Post("/", h.AddWall)
	r.Delete("/{id}", h.RemoveWall)

	return r
}
