package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scoreline/tracker/internal/domain"
)

func TestDominantCategory_PriorityOrder(t *testing.T) {
	// DT-family wins over everything else.
	assert.Equal(t, domain.CategoryDoubleTime, DominantCategory([]string{"HR", "DT"}))
	assert.Equal(t, domain.CategoryDoubleTime, DominantCategory([]string{"HD", "FL", "DT"}))
	assert.Equal(t, domain.CategoryHardRock, DominantCategory([]string{"HR", "HD"}))
	assert.Equal(t, domain.CategoryHidden, DominantCategory([]string{"HD"}))
	assert.Equal(t, domain.CategoryFlashlight, DominantCategory([]string{"FL"}))
}

func TestDominantCategory_NightcoreCountsAsDoubleTime(t *testing.T) {
	assert.Equal(t, domain.CategoryDoubleTime, DominantCategory([]string{"NC"}))
}

func TestDominantCategory_Empty(t *testing.T) {
	assert.Equal(t, domain.CategoryNoMod, DominantCategory(nil))
	assert.Equal(t, domain.CategoryNoMod, DominantCategory([]string{}))
}

func TestDominantCategory_UnknownModsIgnored(t *testing.T) {
	assert.Equal(t, domain.CategoryNoMod, DominantCategory([]string{"SD", "NF"}))
}

func TestCombinationString_OrderIndependent(t *testing.T) {
	assert.Equal(t, "DTHD", CombinationString([]string{"DT", "HD"}))
	assert.Equal(t, "DTHD", CombinationString([]string{"HD", "DT"}))
}

func TestCombinationString_Empty(t *testing.T) {
	assert.Equal(t, "NM", CombinationString(nil))
	assert.Equal(t, "NM", CombinationString([]string{""}))
}

func TestCombinationString_Single(t *testing.T) {
	assert.Equal(t, "HD", CombinationString([]string{"HD"}))
}
