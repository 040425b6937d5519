package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/middleware"
	"github.com/algedu/algedu-api/internal/pkg/response"
	"github.com/algedu/algedu-api/internal/pkg/validator"
)

// Handler handles profile HTTP requests
type Handler struct {
	service        *Service
	maxUploadBytes int64
}

// NewHandler creates profile handler
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// GetOwn returns the caller's own profile
// GET /profiles/me
func (h *Handler) GetOwn(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetOwn(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Profile not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Get returns a public profile by username
// GET /profiles/{username}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Profile not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Update edits the caller's profile
// PUT /profiles/me
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	resp, err := h.service.Update(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Profile not found")
		case ErrEmailTaken:
			response.Conflict(w, "Email already in use")
		case ErrInvalidBirthDate:
			response.BadRequest(w, "Birth date must be between 1900 and today")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// UploadAvatar accepts a multipart image and sets it as the avatar
// POST /profiles/me/avatar
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "File too large or malformed form")
		return
	}

	f, header, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Missing avatar file")
		return
	}
	defer f.Close()

	resp, err := h.service.UploadAvatar(r.Context(), middleware.GetUserID(r.Context()), f, header.Filename)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Profile not found")
		case ErrInvalidImage:
			response.BadRequest(w, "File is not a valid image")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// AddComment leaves a message on a profile
// POST /profiles/{username}/comments
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddProfileCommentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	c, err := h.service.AddComment(r.Context(), chi.URLParam(r, "username"), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Profile not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.Created(w, c)
}

// ListComments lists a profile's messages
// GET /profiles/{username}/comments
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Profile not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"comments": comments})
}

// DeleteComment removes a profile message
// DELETE /profiles/comments/{id}
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	ctx := r.Context()
	err = h.service.DeleteComment(ctx, id, middleware.GetUserID(ctx), middleware.IsStaff(ctx))
	if err != nil {
		switch err {
		case ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case ErrNotAllowed:
			response.Forbidden(w, "Permission denied")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Comment deleted"})
}
