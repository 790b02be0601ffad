// Package engine implements the score classification and goal-progress core.
// Everything here is a pure function of its inputs: the engine holds no
// persistent state and performs no I/O. Callers load the current goal and
// rating snapshots, run the engine, and apply the returned deltas atomically.
package engine

import (
	"sort"
	"strings"

	"github.com/scoreline/tracker/internal/domain"
)

// DominantCategory collapses a modifier set into its single dominant rating
// bucket. This is a priority list, not a combination: a play with both DT and
// HR is categorized DT.
func DominantCategory(mods []string) domain.ModCategory {
	has := func(code string) bool {
		for _, m := range mods {
			if m == code {
				return true
			}
		}
		return false
	}

	switch {
	case has("DT") || has("NC"):
		return domain.CategoryDoubleTime
	case has("HR"):
		return domain.CategoryHardRock
	case has("HD"):
		return domain.CategoryHidden
	case has("FL"):
		return domain.CategoryFlashlight
	default:
		return domain.CategoryNoMod
	}
}

// CombinationString canonicalizes a modifier set into an order-independent
// combination string: non-empty codes sorted alphabetically and concatenated.
// An empty set yields "NM", so both sides of an exact-match comparison
// canonicalize the same way.
func CombinationString(mods []string) string {
	codes := make([]string, 0, len(mods))
	for _, m := range mods {
		if m != "" {
			codes = append(codes, m)
		}
	}
	if len(codes) == 0 {
		return string(domain.CategoryNoMod)
	}
	sort.Strings(codes)
	return strings.Join(codes, "")
}
