package engine

import "github.com/scoreline/tracker/internal/domain"

// ClassifiedPlay is one play together with every derived field the matcher
// and rating updater consume.
type ClassifiedPlay struct {
	domain.PlayedScore

	Category       domain.ModCategory
	Combination    string
	EffectiveStars float64
	Verdict        ComboVerdict
}

// ClassifyPlay derives the mod grouping, effective difficulty and full-combo
// verdicts for one play. When the map's maximum combo is unreported the
// achieved combo substitutes as the best available estimate, which makes the
// tolerance check degenerate to a match for miss-free plays.
func (c ClassifierConfig) ClassifyPlay(p domain.PlayedScore) ClassifiedPlay {
	mapMax := p.MapMaxCombo
	if mapMax <= 0 {
		mapMax = p.MaxCombo
	}

	return ClassifiedPlay{
		PlayedScore:    p,
		Category:       DominantCategory(p.Mods),
		Combination:    CombinationString(p.Mods),
		EffectiveStars: EffectiveStars(p.Stars, p.Accuracy, p.MaxCombo, mapMax),
		Verdict:        c.Classify(p.Rank, p.MissCount, p.MaxCombo, mapMax),
	}
}

// Record builds the append-only history row for a classified play. The row id
// is left zero; the reconciliation loop assigns it.
func (p ClassifiedPlay) Record() domain.PlayRecord {
	return domain.PlayRecord{
		UserID:         p.UserID,
		ScoreID:        p.ScoreID,
		BeatmapID:      p.BeatmapID,
		Title:          p.Title,
		ModGroup:       p.Category,
		ModCombination: p.Combination,
		Stars:          p.Stars,
		EffectiveStars: p.EffectiveStars,
		Accuracy:       p.Accuracy,
		MapLength:      p.MapLength,
		MaxCombo:       p.MaxCombo,
		IsPerfect:      p.Verdict.Perfect,
		IsFullCombo:    p.Verdict.FullCombo,
		PlayedAt:       p.PlayedAt,
	}
}
