package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/scoreline/tracker/internal/domain"
	"github.com/scoreline/tracker/internal/service"
)

// GoalHandler handles goal CRUD and lifecycle endpoints.
type GoalHandler struct {
	goalSvc *service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalSvc *service.GoalService) *GoalHandler {
	return &GoalHandler{goalSvc: goalSvc}
}

func goalIDFromURL(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.ErrValidation("invalid goal id")
	}
	return id, nil
}

// List handles GET /goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	goals, err := h.goalSvc.ListGoals(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, goals)
}

// Create handles POST /goals.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.CreateGoalInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	goal, err := h.goalSvc.CreateGoal(r.Context(), userID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, goal)
}

// CreateFromPreset handles POST /goals/presets/{key}.
func (h *GoalHandler) CreateFromPreset(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	goal, err := h.goalSvc.CreateFromPreset(r.Context(), userID, chi.URLParam(r, "key"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, goal)
}

// ListPresets handles GET /goals/presets.
func (h *GoalHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.goalSvc.ListPresets())
}

// SetLocked handles POST /goals/{id}/lock and /goals/{id}/unlock.
func (h *GoalHandler) SetLocked(locked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			RespondError(w, err)
			return
		}
		goalID, err := goalIDFromURL(r)
		if err != nil {
			RespondError(w, err)
			return
		}
		if err := h.goalSvc.SetLocked(r.Context(), userID, goalID, locked); err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, map[string]bool{"locked": locked})
	}
}

// SetPaused handles POST /goals/{id}/pause and /goals/{id}/resume.
func (h *GoalHandler) SetPaused(paused bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			RespondError(w, err)
			return
		}
		goalID, err := goalIDFromURL(r)
		if err != nil {
			RespondError(w, err)
			return
		}
		if err := h.goalSvc.SetPaused(r.Context(), userID, goalID, paused); err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, map[string]bool{"paused": paused})
	}
}

// Delete handles DELETE /goals/{id}.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.goalSvc.DeleteGoal(r.Context(), userID, goalID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Reorder handles PUT /goals/order.
func (h *GoalHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		Order []uuid.UUID `json:"order"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.goalSvc.Reorder(r.Context(), userID, input.Order); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// Contributions handles GET /goals/{id}/contributions.
func (h *GoalHandler) Contributions(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	items, err := h.goalSvc.ListContributions(r.Context(), userID, goalID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, items)
}
