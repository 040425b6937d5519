package moderation

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/middleware"
	"github.com/algedu/algedu-api/internal/pkg/response"
	"github.com/algedu/algedu-api/internal/pkg/validator"
)

// Handler handles moderation HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates moderation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubmitReport files a report against a field or comment
// POST /moderation/reports
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req SubmitReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.service.SubmitReport(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(w, http.StatusUnprocessableEntity,
				"VALIDATION_ERROR", verr.Message, map[string]string{"kind": verr.Kind})
		case errors.Is(err, ErrTargetNotFound):
			response.NotFound(w, "Reported content not found")
		case errors.Is(err, ErrUnsupportedKind):
			response.BadRequest(w, "Unsupported report target")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]interface{}{
		"report":  report,
		"message": "Report submitted",
	})
}

// ListPending returns the unresolved report queue
// GET /admin/moderation/reports?kind=field|comment
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListPending(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		if errors.Is(err, ErrUnsupportedKind) {
			response.BadRequest(w, "Unknown target kind")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"reports": reports})
}

// ResolveReport closes a pending report with block or ignore
// POST /admin/moderation/reports/{id}/resolve
func (h *Handler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ResolveReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.service.ResolveReport(r.Context(), id, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, ErrReportNotFound):
			response.NotFound(w, "Report not found")
		case errors.Is(err, ErrAlreadyResolved):
			response.Conflict(w, "Report has already been resolved")
		case errors.Is(err, ErrUnsupportedKind):
			response.BadRequest(w, "Unknown resolution action")
		default:
			response.InternalError(w)
		}
		return
	}

	message := "Report rejected"
	if report.Status == StatusApproved {
		message = "Content blocked"
	}
	response.OK(w, map[string]interface{}{
		"report":  report,
		"message": message,
	})
}

// Unblock reverses a block on a field or comment
// POST /admin/moderation/unblock
func (h *Handler) Unblock(w http.ResponseWriter, r *http.Request) {
	var req UnblockRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.Unblock(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, ErrTargetNotFound):
			response.NotFound(w, "Content not found")
		case errors.Is(err, ErrUnsupportedKind):
			response.BadRequest(w, "Unsupported target kind")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Content unblocked"})
}

// BanUser deactivates an account and blocks its content
// POST /admin/moderation/users/{id}/ban
func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.BanUser(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "User banned"})
}

// Panel returns the moderation dashboard
// GET /admin/moderation/panel
func (h *Handler) Panel(w http.ResponseWriter, r *http.Request) {
	panel, err := h.service.Panel(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, panel)
}
