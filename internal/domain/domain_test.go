package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteriaNormalizedDefaults(t *testing.T) {
	c := GoalCriteria{}.Normalized()
	assert.Equal(t, ObjectiveCount, c.Type)
	assert.Equal(t, AnyMod, c.Mod)
}

func TestCriteriaNormalizedWildcardCombination(t *testing.T) {
	c := GoalCriteria{ModCombination: AnyMod}.Normalized()
	assert.Empty(t, c.ModCombination)
}

func TestCriteriaJSONRoundTrip(t *testing.T) {
	// Keys match the persisted JSONB shape the original data used.
	raw := `{"type":"fc","min_stars":5.5,"mod":"DT","use_acc":true,"acc_needed":98.0,"streak":true}`

	var c GoalCriteria
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, ObjectiveFullCombo, c.Type)
	assert.InDelta(t, 5.5, c.MinStars, 1e-9)
	assert.Equal(t, "DT", c.Mod)
	assert.True(t, c.UseAccuracy)
	assert.InDelta(t, 98.0, c.MinAccuracy, 1e-9)
	assert.True(t, c.Streak)
}

func TestCredentialExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	valid := Credential{AccessToken: "tok", ExpiresAt: now.Add(time.Hour)}
	assert.False(t, valid.Expired(now))

	stale := Credential{AccessToken: "tok", ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, stale.Expired(now))

	empty := Credential{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, empty.Expired(now))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrSourceUnavailable(cause)

	assert.Equal(t, "SOURCE_UNAVAILABLE", err.Code)
	assert.Equal(t, 502, err.Status)
	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	assert.ErrorAs(t, error(err), &appErr)
}

func TestRatingVectorTypedLookup(t *testing.T) {
	var v RatingVector
	v.Set(CategoryDoubleTime, 7.2)
	assert.InDelta(t, 7.2, v.Get(CategoryDoubleTime), 1e-9)
	assert.Zero(t, v.Get(CategoryNoMod))

	// Unknown categories fall back to the no-mod bucket.
	v.Set(ModCategory("EZ"), 1.0)
	assert.InDelta(t, 1.0, v.Get(ModCategory("whatever")), 1e-9)
	assert.InDelta(t, 1.0, v.NoMod, 1e-9)
}

func TestPresetLibrary(t *testing.T) {
	require.NotEmpty(t, GoalPresets)

	p := PresetByKey("fc_streak_5")
	require.NotNil(t, p)
	assert.Equal(t, 5, p.Target)
	assert.True(t, p.Criteria.Streak)
	assert.Equal(t, ObjectiveFullCombo, p.Criteria.Type)

	assert.Nil(t, PresetByKey("nope"))
}
