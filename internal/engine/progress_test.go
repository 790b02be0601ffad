package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoreline/tracker/internal/domain"
)

func TestApplyProgress_MatchIncrements(t *testing.T) {
	g := domain.Goal{Progress: 1, Target: 5}
	contributed, completedNow := ApplyProgress(&g, true, testTime)
	assert.True(t, contributed)
	assert.False(t, completedNow)
	assert.Equal(t, 2, g.Progress)
	assert.False(t, g.Completed)
}

func TestApplyProgress_NoMatchLeavesNonStreakUnchanged(t *testing.T) {
	g := domain.Goal{Progress: 3, Target: 5}
	contributed, _ := ApplyProgress(&g, false, testTime)
	assert.False(t, contributed)
	assert.Equal(t, 3, g.Progress)
}

func TestApplyProgress_StreakResetsOnMiss(t *testing.T) {
	g := domain.Goal{Progress: 4, Target: 5, Criteria: domain.GoalCriteria{Streak: true}}
	for i := 0; i < 3; i++ {
		g.Progress = 4
		ApplyProgress(&g, false, testTime)
		assert.Equal(t, 0, g.Progress)
	}
}

func TestApplyProgress_StreakMatchIncrementsNormally(t *testing.T) {
	g := domain.Goal{Progress: 2, Target: 5, Criteria: domain.GoalCriteria{Streak: true}}
	contributed, _ := ApplyProgress(&g, true, testTime)
	assert.True(t, contributed)
	assert.Equal(t, 3, g.Progress)
}

func TestApplyProgress_CompletionStampedOnce(t *testing.T) {
	g := domain.Goal{Progress: 4, Target: 5}
	contributed, completedNow := ApplyProgress(&g, true, testTime)
	assert.True(t, contributed)
	assert.True(t, completedNow)
	assert.True(t, g.Completed)
	require.NotNil(t, g.CompletedAt)
	stamp := *g.CompletedAt
	assert.Equal(t, testTime, stamp)

	// A spurious re-evaluation after completion must not re-increment or
	// re-stamp.
	contributed, completedNow = ApplyProgress(&g, true, testTime.Add(1))
	assert.False(t, contributed)
	assert.False(t, completedNow)
	assert.Equal(t, 5, g.Progress)
	assert.Equal(t, stamp, *g.CompletedAt)
}

func TestApplyProgress_NullProgressTreatedAsZero(t *testing.T) {
	g := domain.Goal{Progress: -1, Target: 3}
	ApplyProgress(&g, true, testTime)
	assert.Equal(t, 1, g.Progress)
}
