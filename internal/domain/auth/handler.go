package auth

import (
	"net/http"

	"github.com/algedu/algedu-api/internal/domain/user"
	"github.com/algedu/algedu-api/internal/middleware"
	"github.com/algedu/algedu-api/internal/pkg/response"
	"github.com/algedu/algedu-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register creates an account
// POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	u, tokens, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrPasswordMismatch:
			response.BadRequest(w, "Passwords do not match")
		case user.ErrUsernameTaken:
			response.Conflict(w, "Username already in use")
		case user.ErrEmailTaken:
			response.Conflict(w, "Email already in use")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]interface{}{
		"user":   NewUserResponse(u),
		"tokens": tokens,
	})
}

// Login authenticates a user
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	u, tokens, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid username or password")
		case ErrAccountDeactivated:
			response.Forbidden(w, "Your account has been deactivated")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{
		"user":   NewUserResponse(u),
		"tokens": tokens,
	})
}

// Refresh rotates a refresh token
// POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case ErrInvalidRefreshToken:
			response.Unauthorized(w, "Invalid refresh token")
		case ErrAccountDeactivated:
			response.Forbidden(w, "Your account has been deactivated")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, tokens)
}

// Logout revokes the refresh token
// POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		if err == ErrInvalidRefreshToken {
			response.Unauthorized(w, "Invalid refresh token")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated account
// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if err == user.ErrNotFound {
			response.NotFound(w, "User not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewUserResponse(u))
}
