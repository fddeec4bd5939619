package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fanclubhq/fanclub/internal/service"
	"github.com/fanclubhq/fanclub/pkg/httputil"
	"github.com/fanclubhq/fanclub/pkg/middleware"
	"github.com/fanclubhq/fanclub/pkg/pagination"
)

// EventHandler handles HTTP requests for event endpoints.
type EventHandler struct {
	service *service.EventService
	logger  *slog.Logger
}

// NewEventHandler creates a new event HTTP handler.
func NewEventHandler(svc *service.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	list, err := h.service.ListUpcoming(r.Context(), params.PerPage, params.Offset)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: httputil.NewPaginatedResponse(list.Events, list.Total, params.Page, params.PerPage),
	})
}

// RSVP handles POST /api/v1/events/{id}/rsvp
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "event id is required"},
		})
		return
	}

	rsvp, err := h.service.RSVP(r.Context(), eventID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: rsvp})
}
