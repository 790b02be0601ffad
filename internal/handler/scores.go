package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/scoreline/tracker/internal/service"
)

// ScoreHandler handles the reconcile and history endpoints.
type ScoreHandler struct {
	trackerSvc *service.TrackerService
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(trackerSvc *service.TrackerService) *ScoreHandler {
	return &ScoreHandler{trackerSvc: trackerSvc}
}

// Check handles POST /scores/check: the reconcile endpoint.
func (h *ScoreHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	result, err := h.trackerSvc.CheckScores(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Export handles GET /scores/export: the full history as CSV.
func (h *ScoreHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	recs, err := h.trackerSvc.ExportHistory(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="score_history.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"score_id", "beatmap", "mods", "stars", "effective_stars",
		"accuracy", "max_combo", "full_combo", "perfect", "played_at"})
	for _, rec := range recs {
		combo := rec.ModCombination
		if combo == "" {
			combo = "NM"
		}
		cw.Write([]string{
			strconv.FormatInt(rec.ScoreID, 10),
			rec.Title,
			combo,
			fmt.Sprintf("%.2f", rec.Stars),
			fmt.Sprintf("%.2f", rec.EffectiveStars),
			fmt.Sprintf("%.4f", rec.Accuracy),
			strconv.Itoa(rec.MaxCombo),
			strconv.FormatBool(rec.IsFullCombo),
			strconv.FormatBool(rec.IsPerfect),
			rec.PlayedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	cw.Flush()
}
