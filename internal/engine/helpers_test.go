package engine

import (
	"time"

	"github.com/scoreline/tracker/internal/domain"
)

// Shared test fixtures.

var testTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

type playOpts struct {
	scoreID     int64
	beatmapID   int64
	title       string
	stars       float64
	accuracy    float64
	maxCombo    int
	mapMaxCombo int
	mapLength   int
	mods        []string
	rank        string
	missCount   int
}

func play(opts ...func(*playOpts)) domain.PlayedScore {
	o := playOpts{
		scoreID:     1,
		beatmapID:   42,
		title:       "Test Map",
		stars:       6.0,
		accuracy:    1.0,
		maxCombo:    500,
		mapMaxCombo: 500,
		mapLength:   120,
		rank:        "S",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return domain.PlayedScore{
		ScoreID:     o.scoreID,
		UserID:      7,
		BeatmapID:   o.beatmapID,
		Title:       o.title,
		Stars:       o.stars,
		Accuracy:    o.accuracy,
		MaxCombo:    o.maxCombo,
		MapMaxCombo: o.mapMaxCombo,
		MapLength:   o.mapLength,
		Mods:        o.mods,
		Rank:        o.rank,
		MissCount:   o.missCount,
		Passed:      o.rank != domain.RankFail,
		PlayedAt:    testTime,
	}
}

func classified(opts ...func(*playOpts)) ClassifiedPlay {
	return DefaultClassifierConfig().ClassifyPlay(play(opts...))
}
