package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_FailingGrade(t *testing.T) {
	v := DefaultClassifierConfig().Classify("F", 0, 1000, 1000)
	assert.False(t, v.FullCombo)
	assert.False(t, v.Perfect)
}

func TestClassify_AnyMissBreaksFullCombo(t *testing.T) {
	v := DefaultClassifierConfig().Classify("A", 1, 1000, 1000)
	assert.False(t, v.FullCombo)
}

func TestClassify_UnknownMapMax(t *testing.T) {
	v := DefaultClassifierConfig().Classify("S", 0, 500, 0)
	assert.False(t, v.FullCombo)
}

func TestClassify_PerfectIsBothStrictAndTolerant(t *testing.T) {
	v := DefaultClassifierConfig().Classify("S", 0, 1159, 1159)
	assert.True(t, v.FullCombo)
	assert.True(t, v.Perfect)
}

func TestClassify_WithinTolerance(t *testing.T) {
	// map max 1159: threshold = min(round(1159*0.03)=35, 30) = 30
	v := DefaultClassifierConfig().Classify("S", 0, 1130, 1159) // diff 29
	assert.True(t, v.FullCombo)
	assert.False(t, v.Perfect)
}

func TestClassify_BeyondTolerance(t *testing.T) {
	v := DefaultClassifierConfig().Classify("S", 0, 1100, 1159) // diff 59
	assert.False(t, v.FullCombo)
}

func TestClassify_ShortMapPercentageThreshold(t *testing.T) {
	// map max 371: threshold = min(round(371*0.03)=11, 30) = 11
	v := DefaultClassifierConfig().Classify("S", 0, 370, 371) // diff 1
	assert.True(t, v.FullCombo)
	assert.False(t, v.Perfect)

	v = DefaultClassifierConfig().Classify("S", 0, 359, 371) // diff 12
	assert.False(t, v.FullCombo)
}

func TestClassify_ConfigurableConstants(t *testing.T) {
	strict := ClassifierConfig{TolerancePct: 0, ToleranceCap: 0}
	assert.False(t, strict.Classify("S", 0, 1158, 1159).FullCombo)
	assert.True(t, strict.Classify("S", 0, 1159, 1159).FullCombo)
}

func TestClassifyPlay_SubstitutesAchievedComboForUnknownMapMax(t *testing.T) {
	cfg := DefaultClassifierConfig()
	cp := cfg.ClassifyPlay(play(func(p *playOpts) {
		p.maxCombo = 512
		p.mapMaxCombo = 0
	}))
	// Substitution makes the ratio check degenerate to a match.
	assert.True(t, cp.Verdict.FullCombo)
	assert.True(t, cp.Verdict.Perfect)
	assert.InDelta(t, 6.0, cp.EffectiveStars, 1e-9)
}
