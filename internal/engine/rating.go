package engine

import "github.com/scoreline/tracker/internal/domain"

// Exponential-moving-average weights for the per-category skill rating.
// Recent plays dominate gradually; there is no windowing beyond the constant
// factor.
const (
	RatingDecay = 0.95
	RatingBlend = 0.05
)

// UpdateRating folds one play's effective difficulty into the rating bucket
// for its dominant mod category:
//
//	new = old*RatingDecay + effective*RatingBlend
//
// The update applies to every newly processed play, not only goal matches.
func UpdateRating(v *domain.RatingVector, cat domain.ModCategory, effectiveStars float64) {
	v.Set(cat, v.Get(cat)*RatingDecay+effectiveStars*RatingBlend)
}
