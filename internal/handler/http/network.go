package http

import (
	"log/slog"
	"net/http"

	"github.com/fanclubhq/fanclub/internal/service"
	"github.com/fanclubhq/fanclub/pkg/httputil"
)

// NetworkHandler handles HTTP requests for the global network directory.
type NetworkHandler struct {
	service *service.NetworkService
	logger  *slog.Logger
}

// NewNetworkHandler creates a new network HTTP handler.
func NewNetworkHandler(svc *service.NetworkService, logger *slog.Logger) *NetworkHandler {
	return &NetworkHandler{service: svc, logger: logger}
}

// ListGroups handles GET /api/v1/global-network/groups
func (h *NetworkHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.service.ListChapters(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: chapters})
}
