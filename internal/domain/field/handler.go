package field

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/middleware"
	"github.com/algedu/algedu-api/internal/pkg/response"
	"github.com/algedu/algedu-api/internal/pkg/validator"
)

// Handler handles field HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates field handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create creates a field
// POST /fields
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateFieldRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	f, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if err == ErrInvalidGridSize {
			response.BadRequest(w, "Grid size must be between 1 and 100")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.Created(w, f)
}

// List lists public fields
// GET /fields
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	fields, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}
	if fields == nil {
		fields = []*Field{}
	}

	response.OK(w, fields)
}

// Get returns field detail with viewer data
// GET /fields/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid field ID")
		return
	}

	ctx := r.Context()
	resp, err := h.service.GetWithViewerData(ctx, id, middleware.GetUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Field not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Update edits a field (owner only)
// PUT /fields/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid field ID")
		return
	}

	var req UpdateFieldRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	f, err := h.service.Update(r.Context(), id, middleware.GetUserID(r.Context()), &req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Field not found")
		case ErrNotOwner:
			response.Forbidden(w, "Only the owner can edit this field")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, f)
}

// Search searches public fields
// GET /fields/search?q=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"results": results})
}

// ToggleLike flips a like
// POST /fields/{id}/like
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid field ID")
		return
	}

	liked, count, err := h.service.ToggleLike(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Field not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{
		"is_liked":    liked,
		"likes_count": count,
	})
}

// ToggleFavorite flips a favorite
// POST /fields/{id}/favorite
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid field ID")
		return
	}

	favorited, err := h.service.ToggleFavorite(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Field not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"is_favorited": favorited})
}

// AddWall places a wall
// POST /walls
func (h *Handler) AddWall(w http.ResponseWriter, r *http.Request) {
	var req AddWallRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	wall, err := h.service.AddWall(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Field not found")
		case ErrWallOutOfBounds:
			response.BadRequest(w, "Wall exceeds field boundaries")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, wall)
}

// RemoveWall deletes a wall
// DELETE /walls/{id}
func (h *Handler) RemoveWall(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid wall ID")
		return
	}

	ctx := r.Context()
	err = h.service.RemoveWall(ctx, id, middleware.GetUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		switch err {
		case ErrWallNotFound:
			response.NotFound(w, "Wall not found")
		case ErrNotOwner:
			response.Forbidden(w, "Permission denied")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Wall removed"})
}

// State returns the grid geometry
// GET /fields/{id}/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid field ID")
		return
	}

	ctx := r.Context()
	state, err := h.service.State(ctx, id, middleware.GetUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Field not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, state)
}

// ProfileFields returns the caller's field listings by tab
// GET /fields/mine?type=my|liked|favorites
func (h *Handler) ProfileFields(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")

	fields, err := h.service.ProfileFields(r.Context(), middleware.GetUserID(r.Context()), kind)
	if err != nil {
		response.InternalError(w)
		return
	}
	if fields == nil {
		fields = []*Field{}
	}

	response.OK(w, map[string]interface{}{"fields": fields})
}
