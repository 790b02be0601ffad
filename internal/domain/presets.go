package domain

// GoalPreset is a server-defined goal template a player can instantiate.
type GoalPreset struct {
	Key         string       `json:"key"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Target      int          `json:"target"`
	Criteria    GoalCriteria `json:"criteria"`
}

// GoalPresets is the built-in goal library.
var GoalPresets = []GoalPreset{
	{
		Key:         "fc_streak_5",
		Title:       "Consistency Rookie",
		Description: "Full-combo 5 maps in a row (any difficulty)",
		Target:      5,
		Criteria:    GoalCriteria{Type: ObjectiveFullCombo, Mod: AnyMod, Streak: true},
	},
	{
		Key:         "accumulate_5star_10",
		Title:       "5-Star Conqueror",
		Description: "Accumulate 10 full combos on maps above 5.0 stars",
		Target:      10,
		Criteria:    GoalCriteria{Type: ObjectiveFullCombo, Mod: AnyMod, MinStars: 5.0},
	},
	{
		Key:         "single_acc_99",
		Title:       "Accuracy Master",
		Description: "Submit a play with at least 99% accuracy (min. 4 stars)",
		Target:      1,
		Criteria:    GoalCriteria{Type: ObjectiveCount, Mod: AnyMod, MinStars: 4.0, UseAccuracy: true, MinAccuracy: 99.0},
	},
	{
		Key:         "pass_dt_6star",
		Title:       "Speed Demon",
		Description: "Pass a DoubleTime map above 6.0 stars",
		Target:      1,
		Criteria:    GoalCriteria{Type: ObjectivePass, Mod: string(CategoryDoubleTime), MinStars: 6.0},
	},
}

// PresetByKey returns the preset with the given key, or nil.
func PresetByKey(key string) *GoalPreset {
	for i := range GoalPresets {
		if GoalPresets[i].Key == key {
			return &GoalPresets[i]
		}
	}
	return nil
}
