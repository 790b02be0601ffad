package engine

import "github.com/scoreline/tracker/internal/domain"

// MatchGoal evaluates one classified play against one goal's criteria. The
// criteria are a conjunction of independent filters; any failing filter
// short-circuits. Cheap filters run first, but order does not affect the
// result. Paused goals are excluded by the caller before matching.
func MatchGoal(p ClassifiedPlay, criteria domain.GoalCriteria) bool {
	c := criteria.Normalized()

	if c.MinStars > 0 && p.Stars < c.MinStars {
		return false
	}

	// Exact combination takes precedence over the single-category filter.
	if c.ModCombination != "" {
		if p.Combination != c.ModCombination {
			return false
		}
	} else if c.Mod != domain.AnyMod {
		if string(p.Category) != c.Mod {
			return false
		}
	}

	if c.BeatmapID != 0 && p.BeatmapID != c.BeatmapID {
		return false
	}
	if c.UseLength && p.MapLength < c.MinLength {
		return false
	}
	if c.UseCombo && p.MaxCombo < c.MinCombo {
		return false
	}
	if c.UseAccuracy && p.Accuracy*100 < c.MinAccuracy {
		return false
	}

	return objectiveMet(p, c.Type)
}

func objectiveMet(p ClassifiedPlay, obj domain.Objective) bool {
	switch obj {
	case domain.ObjectivePass:
		return !p.Failed()
	case domain.ObjectiveFullCombo:
		return p.Verdict.FullCombo
	case domain.ObjectivePerfectRank:
		return p.PerfectRank()
	default:
		// count, or an unrecognized user-authored objective
		return true
	}
}
