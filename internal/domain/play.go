package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rank letter grades as reported by the scores API.
const (
	RankFail      = "F"
	RankPerfect   = "X"  // SS
	RankPerfectHD = "XH" // SS with Hidden/Flashlight
)

// PlayedScore is one externally-recorded play, as fetched from the scores API.
// It is immutable input: the engine never mutates it. A play is uniquely
// identified by ScoreID; reprocessing the same id must be a no-op.
type PlayedScore struct {
	ScoreID     int64     `json:"score_id"`
	UserID      int64     `json:"user_id"`
	BeatmapID   int64     `json:"beatmap_id"`
	Title       string    `json:"title"`
	Stars       float64   `json:"stars"`
	Accuracy    float64   `json:"accuracy"` // fraction in [0,1]
	MaxCombo    int       `json:"max_combo"`
	MapMaxCombo int       `json:"map_max_combo"` // 0 when the API did not report it
	MapLength   int       `json:"map_length"`    // seconds
	Mods        []string  `json:"mods"`
	Rank        string    `json:"rank"`
	MissCount   int       `json:"miss_count"`
	Passed      bool      `json:"passed"`
	PlayedAt    time.Time `json:"played_at"`
}

// Failed reports whether the play ended in the failing grade.
func (p PlayedScore) Failed() bool { return p.Rank == RankFail }

// PerfectRank reports whether the play earned one of the top two grades.
func (p PlayedScore) PerfectRank() bool {
	return p.Rank == RankPerfect || p.Rank == RankPerfectHD
}

// PlayRecord is the persisted history row for one processed play, including
// every derived classification field. Rows are append-only.
type PlayRecord struct {
	ID             uuid.UUID   `json:"id"`
	UserID         int64       `json:"user_id"`
	ScoreID        int64       `json:"score_id"`
	BeatmapID      int64       `json:"beatmap_id"`
	Title          string      `json:"title"`
	ModGroup       ModCategory `json:"mod_group"`
	ModCombination string      `json:"mod_combination"`
	Stars          float64     `json:"stars"`
	EffectiveStars float64     `json:"effective_stars"`
	Accuracy       float64     `json:"accuracy"`
	MapLength      int         `json:"map_length"`
	MaxCombo       int         `json:"max_combo"`
	IsPerfect      bool        `json:"is_perfect"`    // strict: combo exactly equals map max
	IsFullCombo    bool        `json:"is_full_combo"` // tolerant: within slider-end tolerance
	PlayedAt       time.Time   `json:"played_at"`
}
