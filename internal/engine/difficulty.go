package engine

// EffectiveStars combines raw difficulty, accuracy and combo completeness
// into the single scalar used for rating updates:
//
//	effective = stars * accuracy³ * (achievedCombo / mapMaxCombo)
//
// Cubing accuracy penalizes inaccurate plays steeply; the combo ratio rewards
// sustained combos. When the map's maximum combo is unknown (0) the ratio
// falls back to 1.0. Accuracy is expected in [0,1] and is not clamped.
func EffectiveStars(stars, accuracy float64, achievedCombo, mapMaxCombo int) float64 {
	comboRatio := 1.0
	if mapMaxCombo > 0 {
		comboRatio = float64(achievedCombo) / float64(mapMaxCombo)
	}
	return stars * accuracy * accuracy * accuracy * comboRatio
}
