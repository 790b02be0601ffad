package handler

import (
	"net/http"

	"github.com/scoreline/tracker/internal/service"
)

// SettingsHandler handles destructive account endpoints.
type SettingsHandler struct {
	trackerSvc *service.TrackerService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(trackerSvc *service.TrackerService) *SettingsHandler {
	return &SettingsHandler{trackerSvc: trackerSvc}
}

// ResetHistory handles POST /settings/reset: wipes history, progress and
// ratings while keeping goals and the account.
func (h *SettingsHandler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.trackerSvc.ResetHistory(r.Context(), userID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// DeleteAccount handles DELETE /settings/account.
func (h *SettingsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.trackerSvc.DeleteAccount(r.Context(), userID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
