//go:build unit

package core

import (
	"plant-pal/internal/core/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_DefaultQueryKeepsEverythingInOrder(t *testing.T) {
	cat := mixedCatalog()
	out := Filter(cat.All(), model.DefaultQueryState())
	assert.Equal(t, names(cat.plants), names(out))
}

func TestFilter_TextMatchesNameOrDescription(t *testing.T) {
	plants := []model.Plant{
		{ID: 1, Name: "Snake Plant", Description: "Tough as nails"},
		{ID: 2, Name: "Pothos", Description: "Trailing vine, great for shelves"},
		{ID: 3, Name: "Peace Lily", Description: "White blooms"},
	}
	q := model.DefaultQueryState()

	q.SearchText = "SNAKE"
	assert.Equal(t, []string{"Snake Plant"}, names(Filter(plants, q)))

	q.SearchText = "vine"
	assert.Equal(t, []string{"Pothos"}, names(Filter(plants, q)))

	q.SearchText = "l"
	assert.Equal(t, []string{"Snake Plant", "Pothos", "Peace Lily"}, names(Filter(plants, q)))
}

func TestFilter_FacetsAreConjunctive(t *testing.T) {
	cat := mixedCatalog()
	q := model.DefaultQueryState()
	q.Category = "Succulent"
	q.Difficulty = "Very Easy"
	assert.Equal(t, []string{"Echeveria", "aloe Vera"}, names(Filter(cat.All(), q)))

	q.SearchText = "aloe"
	assert.Equal(t, []string{"aloe Vera"}, names(Filter(cat.All(), q)))

	q.Category = "Herb"
	assert.Empty(t, Filter(cat.All(), q))
}

func TestFilter_EmptyInputs(t *testing.T) {
	out := Filter(nil, model.DefaultQueryState())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	cat := mixedCatalog()
	in := cat.All()
	before := names(in)
	q := model.DefaultQueryState()
	q.Category = "Indoor"
	_ = Filter(in, q)
	assert.Equal(t, before, names(in))
}

func TestFilter_FacetConstraintNeverGrowsMatches(t *testing.T) {
	cat := mixedCatalog()
	for _, text := range []string{"", "a", "plant", "zz"} {
		base := model.DefaultQueryState()
		base.SearchText = text
		all := len(Filter(cat.All(), base))

		for _, c := range testVocab.Categories {
			q := base
			q.Category = c
			assert.LessOrEqual(t, len(Filter(cat.All(), q)), all, "category %s text %q", c, text)
		}
		for _, d := range testVocab.Difficulties {
			q := base
			q.Difficulty = d
			assert.LessOrEqual(t, len(Filter(cat.All(), q)), all, "difficulty %s text %q", d, text)
		}
	}
}
