package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStars_PerfectPlay(t *testing.T) {
	assert.InDelta(t, 5.0, EffectiveStars(5.0, 1.0, 1000, 1000), 1e-9)
}

func TestEffectiveStars_AccuracyCubed(t *testing.T) {
	// 5.0 * 0.95³ = 4.286...
	assert.InDelta(t, 4.286, EffectiveStars(5.0, 0.95, 1000, 1000), 0.001)
}

func TestEffectiveStars_ComboRatio(t *testing.T) {
	assert.InDelta(t, 2.5, EffectiveStars(5.0, 1.0, 500, 1000), 1e-9)
}

func TestEffectiveStars_UnknownMapMaxFallsBackToFullRatio(t *testing.T) {
	assert.InDelta(t, 5.0, EffectiveStars(5.0, 1.0, 432, 0), 1e-9)
}
