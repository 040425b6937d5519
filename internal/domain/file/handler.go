package file

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/pkg/response"
)

// Handler handles file HTTP requests
type Handler struct {
	repo           Repository
	maxUploadBytes int64
}

// NewHandler creates file handler
func NewHandler(repo Repository, maxUploadBytes int64) *Handler {
	return &Handler{repo: repo, maxUploadBytes: maxUploadBytes}
}

// Upload stores a file attached later to a field
// POST /files
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "File too large or malformed upload")
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.InternalError(w)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	f := &StoredFile{
		ID:          uuid.New(),
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
		Size:        int64(len(data)),
		CreatedAt:   time.Now(),
	}
	if err := h.repo.Create(r.Context(), f); err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, f)
}

// Download streams a stored file as an attachment
// GET /files/{id}
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid file ID")
		return
	}

	f, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.InternalError(w)
		return
	}
	if f == nil {
		response.NotFound(w, "File not found")
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", f.Size))
	w.Write(f.Data)
}

// Routes returns file routes; uploads require authentication, downloads do not
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.Download)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Upload)
	})

	return r
}
