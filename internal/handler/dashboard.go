package handler

import (
	"net/http"

	"github.com/scoreline/tracker/internal/service"
)

// DashboardHandler serves the aggregated player state.
type DashboardHandler struct {
	trackerSvc *service.TrackerService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(trackerSvc *service.TrackerService) *DashboardHandler {
	return &DashboardHandler{trackerSvc: trackerSvc}
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	dash, err := h.trackerSvc.GetDashboard(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, dash)
}
