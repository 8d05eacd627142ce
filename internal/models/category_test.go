package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Category
	}{
		{"canonical passes through", "Technique", CategoryTechnique},
		{"legacy technique label", "技术", CategoryTechnique},
		{"legacy equipment label", "装备", CategoryEquipment},
		{"legacy tournament label", "比赛", CategoryTournament},
		{"legacy training label", "训练", CategoryTraining},
		{"legacy other label", "其他", CategoryOther},
		{"unknown falls back to other", "memes", CategoryOther},
		{"empty falls back to other", "", CategoryOther},
		{"case sensitive", "technique", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.raw))
		})
	}
}

func TestCategories_CoversEveryAliasTarget(t *testing.T) {
	all := Categories()
	assert.Len(t, all, 5)

	seen := make(map[Category]bool, len(all))
	for _, c := range all {
		seen[c] = true
	}
	for raw, want := range categoryAliases {
		assert.True(t, seen[want], "alias %q maps outside the canonical set", raw)
	}
}
