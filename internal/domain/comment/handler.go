package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/middleware"
	"github.com/algedu/algedu-api/internal/pkg/response"
	"github.com/algedu/algedu-api/internal/pkg/validator"
)

// Handler handles comment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates comment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Add attaches a comment to a field
// POST /fields/{id}/comments
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	fieldID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid field ID")
		return
	}

	var req AddCommentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	c, err := h.service.Add(r.Context(), fieldID, middleware.GetUserID(r.Context()), &req)
	if err != nil {
		switch err {
		case ErrFieldNotFound:
			response.NotFound(w, "Field not found")
		case ErrEmptyText:
			response.BadRequest(w, "Comment text cannot be empty")
		case ErrTextTooLong:
			response.BadRequest(w, "Comment is too long")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, c)
}

// ListByField lists a field's comments
// GET /fields/{id}/comments
func (h *Handler) ListByField(w http.ResponseWriter, r *http.Request) {
	fieldID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid field ID")
		return
	}

	ctx := r.Context()
	comments, err := h.service.ListByField(ctx, fieldID, middleware.GetUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		if err == ErrFieldNotFound {
			response.NotFound(w, "Field not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"comments": comments})
}

// ToggleLike flips a like on a comment
// POST /comments/{id}/like
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	liked, count, err := h.service.ToggleLike(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Comment not found")
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
