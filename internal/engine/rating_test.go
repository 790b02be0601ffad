package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scoreline/tracker/internal/domain"
)

func TestUpdateRating_EMA(t *testing.T) {
	v := domain.RatingVector{NoMod: 10.0}
	UpdateRating(&v, domain.CategoryNoMod, 20.0)
	assert.InDelta(t, 10.5, v.NoMod, 1e-9)
}

func TestUpdateRating_OnlyTargetBucketChanges(t *testing.T) {
	v := domain.RatingVector{NoMod: 3.0, DoubleTime: 4.0}
	UpdateRating(&v, domain.CategoryDoubleTime, 6.0)
	assert.InDelta(t, 3.0, v.NoMod, 1e-9)
	assert.InDelta(t, 4.0*RatingDecay+6.0*RatingBlend, v.DoubleTime, 1e-9)
	assert.Zero(t, v.Hidden)
	assert.Zero(t, v.HardRock)
	assert.Zero(t, v.Flashlight)
}

func TestRatingVector_TypedLookup(t *testing.T) {
	var v domain.RatingVector
	for i, cat := range domain.Categories {
		v.Set(cat, float64(i+1))
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, v.Values())
	assert.Equal(t, 4.0, v.Get(domain.CategoryDoubleTime))
}
