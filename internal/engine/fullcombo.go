package engine

import (
	"math"

	"github.com/scoreline/tracker/internal/domain"
)

// ClassifierConfig holds the tolerance constants for the full-combo
// classifier. The defaults reproduce the community heuristic (3% of the map's
// maximum combo, capped at 30 hits); the constants are configurable, not
// derived from an authoritative source.
type ClassifierConfig struct {
	TolerancePct float64 `json:"tolerance_pct"` // default 0.03
	ToleranceCap int     `json:"tolerance_cap"` // default 30
}

// DefaultClassifierConfig returns the default tolerance constants.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{TolerancePct: 0.03, ToleranceCap: 30}
}

// ComboVerdict carries both full-combo definitions for one play. The strict
// flag feeds the historical chart; the tolerant flag drives goal matching.
// The two are never merged.
type ComboVerdict struct {
	FullCombo bool `json:"is_fc"`      // tolerant: within slider-end tolerance
	Perfect   bool `json:"is_perfect"` // strict: combo exactly equals map max
}

// Classify decides whether a play counts as a full combo. The first
// applicable rule decides:
//
//  1. failing grade → not a full combo
//  2. any miss → not a full combo
//  3. map max combo fully unknown → not a full combo
//  4. achieved == map max → full combo, also the strict perfect case
//  5. deficit ≤ min(round(mapMax*TolerancePct), ToleranceCap) → full combo,
//     interpreted as dropped slider-end combo loss, not a genuine break
//
// Callers substitute the achieved combo for an unknown map max before calling
// (the accepted approximation from the data model); rule 3 only fires when
// both values are absent.
func (c ClassifierConfig) Classify(rank string, missCount, achievedCombo, mapMaxCombo int) ComboVerdict {
	if rank == domain.RankFail {
		return ComboVerdict{}
	}
	if missCount > 0 {
		return ComboVerdict{}
	}
	if mapMaxCombo <= 0 {
		return ComboVerdict{}
	}

	diff := mapMaxCombo - achievedCombo
	if diff == 0 {
		return ComboVerdict{FullCombo: true, Perfect: true}
	}

	threshold := int(math.Round(float64(mapMaxCombo) * c.TolerancePct))
	if threshold > c.ToleranceCap {
		threshold = c.ToleranceCap
	}
	if diff > 0 && diff <= threshold {
		return ComboVerdict{FullCombo: true}
	}
	return ComboVerdict{}
}
