package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/service"
	"github.com/fanclubhq/fanclub/pkg/httputil"
	"github.com/fanclubhq/fanclub/pkg/middleware"
	"github.com/fanclubhq/fanclub/pkg/pagination"
)

// GalleryHandler handles HTTP requests for gallery endpoints.
type GalleryHandler struct {
	service *service.GalleryService
	logger  *slog.Logger
}

// NewGalleryHandler creates a new gallery HTTP handler.
func NewGalleryHandler(svc *service.GalleryService, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/gallery
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	list, err := h.service.ListPublished(r.Context(), params.PerPage, params.Offset)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: httputil.NewPaginatedResponse(list.Images, list.Total, params.Page, params.PerPage),
	})
}

// Upload handles POST /api/v1/gallery (multipart/form-data, admin only).
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxDocumentSize+1<<20)

	if err := r.ParseMultipartForm(domain.MaxDocumentSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "PAYLOAD_TOO_LARGE", Message: "request body exceeds the upload limit"},
			})
			return
		}
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "image file is required"},
		})
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	img, err := h.service.Upload(r.Context(), service.UploadInput{
		Title:       r.FormValue("title"),
		Caption:     r.FormValue("caption"),
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
		UploadedBy:  middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: img})
}
