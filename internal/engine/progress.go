package engine

import (
	"time"

	"github.com/scoreline/tracker/internal/domain"
)

// ApplyProgress applies one match verdict to a goal's counters and reports
// whether the play contributed and whether the goal completed on this play.
//
// On a match the progress increments by one; crossing the target completes
// the goal and stamps the completion time exactly once. Completed goals never
// gain progress even if the caller passes one in. On a miss, streak goals
// reset to zero; others are left unchanged.
func ApplyProgress(g *domain.Goal, matched bool, now time.Time) (contributed, completedNow bool) {
	if g.Progress < 0 {
		g.Progress = 0
	}

	if !matched {
		if g.Criteria.Streak {
			g.Progress = 0
		}
		return false, false
	}

	if g.Completed {
		return false, false
	}

	g.Progress++
	if g.Progress >= g.Target {
		g.Completed = true
		if g.CompletedAt == nil {
			ts := now
			g.CompletedAt = &ts
		}
		return true, true
	}
	return true, false
}
