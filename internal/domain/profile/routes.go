package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns profile routes. Public profiles and their comment
// listings are open; everything else requires authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.GetOwn)
		r.Put("/me", h.Update)
		r.Post("/me/avatar", h.UploadAvatar)
		r.Post("/{username}/comments", h.AddComment)
		r.Delete("/comments/{id}", h.DeleteComment)
	})

	r.Get("/{username}", h.Get)
	r.Get("/{username}/comments", h.ListComments)

	return r
}
