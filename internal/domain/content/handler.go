package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/algedu/algedu-api/internal/pkg/response"
)

// Page is a static informational page the frontend renders
type Page struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is one block of page content
type Section struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body"`
}

// Handler serves the static pages
type Handler struct {
	pages map[string]*Page
}

// NewHandler creates content handler with the built-in pages
func NewHandler() *Handler {
	pages := map[string]*Page{
		"about": {
			Slug:  "about",
			Title: "About AlgEdu Team",
			Sections: []Section{
				{
					Body: "AlgEdu Team is a community for learning algorithms through " +
						"interactive grid fields. Members build fields, place walls and " +
						"obstacles, and share their creations for others to explore.",
				},
				{
					Heading: "Community",
					Body: "Every member can comment on fields, like and favorite the " +
						"ones they enjoy, and leave messages on each other's profiles.",
				},
			},
		},
		"goals": {
			Slug:  "goals",
			Title: "Our Goals",
			Sections: []Section{
				{
					Heading: "Learn by building",
					Body: "Make algorithmic concepts tangible by letting anyone " +
						"construct and share pathfinding playgrounds.",
				},
				{
					Heading: "Keep the space safe",
					Body: "Reports from the community and a transparent moderation " +
						"process keep published content appropriate for learners of " +
						"all ages.",
				},
			},
		},
	}
	return &Handler{pages: pages}
}

// Get returns a page by slug
// GET /pages/{slug}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pages[chi.URLParam(r, "slug")]
	if !ok {
		response.NotFound(w, "Page not found")
		return
	}

	response.OK(w, page)
}

// Routes returns content routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{slug}", h.Get)

	return r
}
