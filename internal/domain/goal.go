package domain

import (
	"time"

	"github.com/google/uuid"
)

// Objective is the goal's success predicate, evaluated after all criteria
// filters pass.
type Objective string

const (
	// ObjectiveCount counts every play that passes the criteria filters.
	ObjectiveCount Objective = "count"
	// ObjectivePass counts plays that did not end in the failing grade.
	ObjectivePass Objective = "pass"
	// ObjectiveFullCombo counts plays with the tolerant full-combo verdict.
	ObjectiveFullCombo Objective = "fc"
	// ObjectivePerfectRank counts plays with one of the top two grades.
	ObjectivePerfectRank Objective = "ss"
)

// AnyMod is the wildcard value for the mod filters: no restriction applied.
const AnyMod = "Any"

// GoalCriteria is the structured filter attached to a goal. Every filter is
// optional; criteria are user-authored and may be incomplete, so absent fields
// mean "filter not applied" rather than an error. The JSON keys match the
// persisted JSONB shape.
type GoalCriteria struct {
	Type           Objective `json:"type"`
	MinStars       float64   `json:"min_stars"`                 // 0 = not enforced
	Mod            string    `json:"mod"`                       // dominant category or AnyMod
	ModCombination string    `json:"mod_combination,omitempty"` // exact canonical combination
	BeatmapID      int64     `json:"beatmap_id,omitempty"`      // 0 = any map
	BeatmapName    string    `json:"beatmap_name,omitempty"`
	UseLength      bool      `json:"use_length"`
	MinLength      int       `json:"map_length"` // seconds
	UseCombo       bool      `json:"use_combo"`
	MinCombo       int       `json:"min_combo"`
	UseAccuracy    bool      `json:"use_acc"`
	MinAccuracy    float64   `json:"acc_needed"` // percent, e.g. 99.0
	Streak         bool      `json:"streak"`
}

// Normalized fills the documented defaults for absent fields: objective
// defaults to count, mod filters default to the wildcard.
func (c GoalCriteria) Normalized() GoalCriteria {
	if c.Type == "" {
		c.Type = ObjectiveCount
	}
	if c.Mod == "" {
		c.Mod = AnyMod
	}
	if c.ModCombination == AnyMod {
		c.ModCombination = ""
	}
	return c
}

// Goal is a user-defined, criteria-gated counter toward a target number of
// matching plays. Progress is mutated only by the progress reducer; once
// completed a goal is excluded from future matching but stays listable.
type Goal struct {
	ID           uuid.UUID    `json:"id"`
	UserID       int64        `json:"user_id"`
	Title        string       `json:"title"`
	Progress     int          `json:"current_progress"`
	Target       int          `json:"target_progress"`
	Criteria     GoalCriteria `json:"criteria"`
	Locked       bool         `json:"is_locked"`
	Paused       bool         `json:"is_paused"`
	Completed    bool         `json:"is_completed"`
	DisplayOrder int          `json:"display_order"`
	AssignedAt   time.Time    `json:"assigned_at"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
}

// GoalProgressUpdate is the persistence delta for one goal after a reconcile
// run.
type GoalProgressUpdate struct {
	GoalID      uuid.UUID  `json:"goal_id"`
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// GoalSnapshot is the compact progress view returned to clients.
type GoalSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Current   int       `json:"current"`
	Target    int       `json:"target"`
	Completed bool      `json:"completed"`
}

// Contribution links one play to one goal it satisfied. Rows are append-only
// and removed only by cascade when the play or goal is deleted.
type Contribution struct {
	ID        uuid.UUID `json:"id"`
	GoalID    uuid.UUID `json:"goal_id"`
	PlayID    uuid.UUID `json:"play_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
