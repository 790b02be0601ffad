package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoreline/tracker/internal/domain"
)

func activeGoal(criteria domain.GoalCriteria, progress, target int) domain.Goal {
	return domain.Goal{
		ID:       uuid.New(),
		UserID:   7,
		Title:    "test goal",
		Progress: progress,
		Target:   target,
		Criteria: criteria,
	}
}

func TestReconcile_EndToEndScenario(t *testing.T) {
	goal := activeGoal(domain.GoalCriteria{
		Type:     domain.ObjectiveFullCombo,
		MinStars: 5.0,
		Mod:      domain.AnyMod,
	}, 2, 3)

	batch := Batch{
		Plays: []domain.PlayedScore{play(func(p *playOpts) {
			p.scoreID = 1001
			p.stars = 6.0
			p.maxCombo = 500
			p.mapMaxCombo = 500
		})},
		Goals: []domain.Goal{goal},
		Seen:  map[int64]bool{},
	}

	res := Reconcile(DefaultClassifierConfig(), batch, testTime)

	assert.True(t, res.Updated)

	require.Len(t, res.GoalUpdates, 1)
	assert.Equal(t, 3, res.GoalUpdates[0].Progress)
	assert.True(t, res.GoalUpdates[0].Completed)
	require.NotNil(t, res.GoalUpdates[0].CompletedAt)

	require.Len(t, res.Contributions, 1)
	assert.Equal(t, goal.ID, res.Contributions[0].GoalID)
	assert.Equal(t, int64(1001), res.Contributions[0].ScoreID)

	require.Len(t, res.Records, 1)
	assert.Equal(t, res.Records[0].ID, res.Contributions[0].PlayID)
	assert.True(t, res.Records[0].IsFullCombo)
	assert.True(t, res.Records[0].IsPerfect)

	// No mods: the NM bucket absorbs the play.
	assert.InDelta(t, 6.0*RatingBlend, res.Ratings.NoMod, 1e-9)

	require.Len(t, res.Feed, 1)
	assert.True(t, res.Feed[0].IsFullCombo)

	assert.Equal(t, 1, res.FCHistogram[6])
	assert.Equal(t, []uuid.UUID{goal.ID}, res.NewlyCompleted)
}

func TestReconcile_SeenPlaysSkipped(t *testing.T) {
	goal := activeGoal(domain.GoalCriteria{Type: domain.ObjectiveCount}, 0, 10)
	batch := Batch{
		Plays: []domain.PlayedScore{play(func(p *playOpts) { p.scoreID = 50 })},
		Goals: []domain.Goal{goal},
		Seen:  map[int64]bool{50: true},
	}

	res := Reconcile(DefaultClassifierConfig(), batch, testTime)

	assert.False(t, res.Updated)
	assert.Empty(t, res.Records)
	assert.Empty(t, res.GoalUpdates)
	assert.Zero(t, res.Ratings.NoMod)
}

func TestReconcile_Idempotence(t *testing.T) {
	goal := activeGoal(domain.GoalCriteria{Type: domain.ObjectiveCount}, 0, 10)
	plays := []domain.PlayedScore{
		play(func(p *playOpts) { p.scoreID = 1 }),
		play(func(p *playOpts) { p.scoreID = 2 }),
	}

	first := Reconcile(DefaultClassifierConfig(), Batch{
		Plays: plays,
		Goals: []domain.Goal{goal},
		Seen:  map[int64]bool{},
	}, testTime)
	assert.True(t, first.Updated)
	require.Len(t, first.GoalUpdates, 1)
	assert.Equal(t, 2, first.GoalUpdates[0].Progress)

	// Re-fetch of the same batch after the first run's writes: everything is
	// seen, nothing changes.
	seen := map[int64]bool{1: true, 2: true}
	goal.Progress = 2
	second := Reconcile(DefaultClassifierConfig(), Batch{
		Plays:   plays,
		Goals:   []domain.Goal{goal},
		Ratings: first.Ratings,
		Seen:    seen,
	}, testTime)
	assert.False(t, second.Updated)
	assert.Empty(t, second.GoalUpdates)
	assert.Equal(t, first.Ratings, second.Ratings)
}

func TestReconcile_DuplicateWithinBatchProcessedOnce(t *testing.T) {
	goal := activeGoal(domain.GoalCriteria{Type: domain.ObjectiveCount}, 0, 10)
	p := play(func(p *playOpts) { p.scoreID = 9 })
	res := Reconcile(DefaultClassifierConfig(), Batch{
		Plays: []domain.PlayedScore{p, p},
		Goals: []domain.Goal{goal},
		Seen:  map[int64]bool{},
	}, testTime)

	require.Len(t, res.Records, 1)
	require.Len(t, res.GoalUpdates, 1)
	assert.Equal(t, 1, res.GoalUpdates[0].Progress)
}

func TestReconcile_OldestFirstPreservesStreakSemantics(t *testing.T) {
	// Streak goal at 2/3. Input is newest-first: the newest play matches,
	// the oldest does not. Chronological order means the miss resets first,
	// then the match brings progress to 1.
	goal := activeGoal(domain.GoalCriteria{
		Type:     domain.ObjectiveFullCombo,
		Mod:      domain.AnyMod,
		Streak:   true,
		MinStars: 0,
	}, 2, 3)

	newest := play(func(p *playOpts) { p.scoreID = 2 }) // perfect combo
	oldest := play(func(p *playOpts) {
		p.scoreID = 1
		p.missCount = 3
	})

	res := Reconcile(DefaultClassifierConfig(), Batch{
		Plays: []domain.PlayedScore{newest, oldest},
		Goals: []domain.Goal{goal},
		Seen:  map[int64]bool{},
	}, testTime)

	require.Len(t, res.GoalUpdates, 1)
	assert.Equal(t, 1, res.GoalUpdates[0].Progress)
	assert.False(t, res.GoalUpdates[0].Completed)
}

func TestReconcile_PausedGoalsNeverMatch(t *testing.T) {
	goal := activeGoal(domain.GoalCriteria{Type: domain.ObjectiveCount}, 1, 5)
	goal.Paused = true

	res := Reconcile(DefaultClassifierConfig(), Batch{
		Plays: []domain.PlayedScore{play()},
		Goals: []domain.Goal{goal},
		Seen:  map[int64]bool{},
	}, testTime)

	assert.True(t, res.Updated) // the play itself still processes
	assert.Empty(t, res.GoalUpdates)
	assert.Empty(t, res.Contributions)
	require.Len(t, res.Snapshots, 1)
	assert.Equal(t, 1, res.Snapshots[0].Current)
}

func TestReconcile_PausedStreakGoalDoesNotReset(t *testing.T) {
	goal := activeGoal(domain.GoalCriteria{Type: domain.ObjectiveFullCombo, Streak: true}, 4, 5)
	goal.Paused = true

	res := Reconcile(DefaultClassifierConfig(), Batch{
		Plays: []domain.PlayedScore{play(func(p *playOpts) { p.missCount = 2 })},
		Goals: []domain.Goal{goal},
		Seen:  map[int64]bool{},
	}, testTime)

	assert.Empty(t, res.GoalUpdates)
	assert.Equal(t, 4, res.Snapshots[0].Current)
}

func TestReconcile_RatingUpdatesUnconditionally(t *testing.T) {
	// No goals at all: the rating bucket still absorbs every play.
	res := Reconcile(DefaultClassifierConfig(), Batch{
		Plays: []domain.PlayedScore{play(func(p *playOpts) {
			p.mods = []string{"HD", "DT"}
		})},
		Seen: map[int64]bool{},
	}, testTime)

	assert.True(t, res.Updated)
	assert.NotZero(t, res.Ratings.DoubleTime)
	assert.Zero(t, res.Ratings.Hidden)
}

func TestReconcile_HistogramCountsStrictPerfectOnly(t *testing.T) {
	res := Reconcile(DefaultClassifierConfig(), Batch{
		Plays: []domain.PlayedScore{
			// Tolerant but not perfect: diff 1 of 371.
			play(func(p *playOpts) { p.scoreID = 1; p.stars = 4.3; p.maxCombo = 370; p.mapMaxCombo = 371 }),
			// Strict perfect.
			play(func(p *playOpts) { p.scoreID = 2; p.stars = 5.7 }),
		},
		Seen: map[int64]bool{},
	}, testTime)

	assert.Equal(t, map[int]int{5: 1}, res.FCHistogram)
}

func TestReconcile_MissingScoreIDSkipped(t *testing.T) {
	res := Reconcile(DefaultClassifierConfig(), Batch{
		Plays: []domain.PlayedScore{play(func(p *playOpts) { p.scoreID = 0 })},
		Seen:  map[int64]bool{},
	}, testTime)
	assert.False(t, res.Updated)
	assert.Empty(t, res.Records)
}
