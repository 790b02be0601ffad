package domain

import "time"

// FeedItem is one entry in the live or persistent score feed.
type FeedItem struct {
	Title          string      `json:"title"`
	Stars          float64     `json:"stars"`
	Rank           string      `json:"rank,omitempty"`
	ModGroup       ModCategory `json:"mods"`
	ModCombination string      `json:"mod_combination"`
	IsFullCombo    bool        `json:"is_fc"`
	IsPerfect      bool        `json:"is_perfect"`
	PlayedAt       time.Time   `json:"timestamp"`
}

// FeedItemFromRecord builds the feed view of a persisted play.
func FeedItemFromRecord(rec PlayRecord, rank string) FeedItem {
	combo := rec.ModCombination
	if combo == "" {
		combo = string(CategoryNoMod)
	}
	return FeedItem{
		Title:          rec.Title,
		Stars:          rec.Stars,
		Rank:           rank,
		ModGroup:       rec.ModGroup,
		ModCombination: combo,
		IsFullCombo:    rec.IsFullCombo,
		IsPerfect:      rec.IsPerfect,
		PlayedAt:       rec.PlayedAt,
	}
}
