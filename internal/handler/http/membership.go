package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/service"
	"github.com/fanclubhq/fanclub/pkg/httputil"
	"github.com/fanclubhq/fanclub/pkg/middleware"
)

// maxSubscribeBody bounds the multipart subscription request: two documents
// of up to 5 MB plus form-field overhead.
const maxSubscribeBody = 2*domain.MaxDocumentSize + 1<<20

// MembershipHandler handles HTTP requests for membership endpoints.
type MembershipHandler struct {
	service *service.MembershipService
	logger  *slog.Logger
}

// NewMembershipHandler creates a new membership HTTP handler.
func NewMembershipHandler(svc *service.MembershipService, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{service: svc, logger: logger}
}

// ListPlans handles GET /api/v1/memberships/plans
func (h *MembershipHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.ListPlans(r.Context())})
}

// Subscribe handles POST /api/v1/memberships/subscribe (multipart/form-data).
func (h *MembershipHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubscribeBody)

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

	input := service.SubscribeInput{
		UserID:       middleware.UserIDFromContext(r.Context()),
		FirstName:    r.FormValue("first_name"),
		LastName:     r.FormValue("last_name"),
		Email:        r.FormValue("email"),
		Phone:        r.FormValue("phone"),
		AddressLine1: r.FormValue("address_line1"),
		AddressLine2: r.FormValue("address_line2"),
		City:         r.FormValue("city"),
		PostalCode:   r.FormValue("postal_code"),
		Country:      r.FormValue("country"),
		Plan:         r.FormValue("plan"),
		University:   r.FormValue("university"),
		Program:      r.FormValue("program"),
	}

	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()

	for _, kind := range []string{domain.DocumentStudentID, domain.DocumentTimetable} {
		file, header, err := r.FormFile(kind)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to read file " + kind + ": " + err.Error()},
			})
			return
		}
		closers = append(closers, file)

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		input.Documents = append(input.Documents, service.DocumentUpload{
			Kind:        kind,
			Filename:    header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Body:        file,
		})
	}

	result, err := h.service.Subscribe(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}
