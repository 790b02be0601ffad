package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scoreline/tracker/internal/domain"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		criteria domain.GoalCriteria
		want     string
	}{
		{
			name:     "map specific",
			criteria: domain.GoalCriteria{Type: domain.ObjectiveFullCombo, BeatmapName: "Blue Zenith"},
			want:     "FC Blue Zenith",
		},
		{
			name:     "star gated",
			criteria: domain.GoalCriteria{Type: domain.ObjectivePass, MinStars: 6.5},
			want:     "6.5★+ PASS",
		},
		{
			name:     "mod gated",
			criteria: domain.GoalCriteria{Type: domain.ObjectiveFullCombo, Mod: "DT"},
			want:     "DT FC",
		},
		{
			name:     "bare objective",
			criteria: domain.GoalCriteria{Type: domain.ObjectivePerfectRank},
			want:     "SS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveTitle(tt.criteria.Normalized()))
		})
	}
}
