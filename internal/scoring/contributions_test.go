package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func categoryPtr(c Category) *Category {
	return &c
}

func TestContributions_PrimaryAndSecondary(t *testing.T) {
	mapping := CategoryMapping{
		Primary:   categoryPtr(CategoryScientific),
		Secondary: categoryPtr(CategoryComputational),
	}

	contributions := Contributions(80, mapping)
	assert.Equal(t, map[Category]int{
		CategoryScientific:    80,
		CategoryComputational: 40,
	}, contributions)
}

func TestContributions_OddPointsFloorTheSecondaryShare(t *testing.T) {
	mapping := CategoryMapping{
		Primary:   categoryPtr(CategoryMusical),
		Secondary: categoryPtr(CategoryAesthetic),
	}

	// 35 points (district second place): secondary gets 17, not 18
	contributions := Contributions(35, mapping)
	assert.Equal(t, 35, contributions[CategoryMusical])
	assert.Equal(t, 17, contributions[CategoryAesthetic])
}

func TestContributions_PrimaryOnly(t *testing.T) {
	contributions := Contributions(60, CategoryMapping{Primary: categoryPtr(CategoryOutdoor)})
	assert.Equal(t, map[Category]int{CategoryOutdoor: 60}, contributions)
}

func TestContributions_SecondaryOnly(t *testing.T) {
	contributions := Contributions(60, CategoryMapping{Secondary: categoryPtr(CategoryClerical)})
	assert.Equal(t, map[Category]int{CategoryClerical: 30}, contributions)
}

func TestContributions_SameCategoryTwiceCountsOnce(t *testing.T) {
	mapping := CategoryMapping{
		Primary:   categoryPtr(CategoryMedical),
		Secondary: categoryPtr(CategoryMedical),
	}

	// The full share wins when both slots name the same category
	contributions := Contributions(100, mapping)
	assert.Equal(t, map[Category]int{CategoryMedical: 100}, contributions)
}

func TestContributions_UnmappedType(t *testing.T) {
	assert.Empty(t, Contributions(100, CategoryMapping{}))
}
