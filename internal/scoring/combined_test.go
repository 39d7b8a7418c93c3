package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine_MergesTestAndAchievementScores(t *testing.T) {
	categoryScores := map[Category]int{
		CategoryScientific:    55,
		CategoryComputational: 40,
		CategoryOutdoor:       10,
	}
	contributionSets := []map[Category]int{
		{CategoryScientific: 80, CategoryComputational: 40},
		{CategoryScientific: 10},
	}

	view := Combine(categoryScores, contributionSets)
	require.Len(t, view.Categories, CategoryCount)

	assert.Equal(t, 105, view.TestTotal)
	assert.Equal(t, 130, view.AchievementTotal)
	assert.Equal(t, 235, view.CombinedTotal)

	// scientific: 55 test + 90 achievement
	top := view.Categories[0]
	assert.Equal(t, CategoryScientific, top.Category)
	assert.Equal(t, "Scientific", top.CategoryName)
	assert.Equal(t, 55, top.TestScore)
	assert.Equal(t, 90, top.AchievementScore)
	assert.Equal(t, 145, top.CombinedScore)

	second := view.Categories[1]
	assert.Equal(t, CategoryComputational, second.Category)
	assert.Equal(t, 80, second.CombinedScore)
}

func TestCombine_AchievementOnlyView(t *testing.T) {
	view := Combine(nil, []map[Category]int{{CategoryMusical: 50}})

	assert.Equal(t, 0, view.TestTotal)
	assert.Equal(t, 50, view.AchievementTotal)
	assert.Equal(t, CategoryMusical, view.Categories[0].Category)
	assert.Equal(t, 50, view.Categories[0].CombinedScore)
}

func TestCombine_EmptyInputs(t *testing.T) {
	view := Combine(nil, nil)

	require.Len(t, view.Categories, CategoryCount)
	assert.Equal(t, 0, view.CombinedTotal)

	// With every score zero the canonical questionnaire order survives
	for i, c := range Categories {
		assert.Equal(t, c, view.Categories[i].Category)
	}
}
