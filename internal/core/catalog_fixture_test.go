//go:build unit

package core

import (
	"plant-pal/internal/core/model"
)

var testVocab = model.Vocabulary{
	Categories:   []model.Category{"Indoor", "Outdoor", "Succulent", "Fern", "Flowering", "Herb"},
	Difficulties: []model.Difficulty{"Very Easy", "Easy", "Intermediate", "Hard"},
	Sizes:        []model.Size{"Small", "Medium", "Large", "Extra Large"},
	SortOptions: []model.SortOption{
		{Key: model.SortName, Label: "Name (A-Z)"},
		{Key: model.SortPriceLow, Label: "Price (Low to High)"},
		{Key: model.SortPriceHigh, Label: "Price (High to Low)"},
		{Key: model.SortDifficulty, Label: "Difficulty (Easy first)"},
	},
}

// memCatalog is a minimal CatalogStore for tests.
type memCatalog struct {
	vocab  model.Vocabulary
	plants []model.Plant
}

func (m memCatalog) All() []model.Plant {
	out := make([]model.Plant, len(m.plants))
	for i, p := range m.plants {
		out[i] = p.Clone()
	}
	return out
}

func (m memCatalog) ByID(id int) (model.Plant, error) {
	for _, p := range m.plants {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return model.Plant{}, model.ErrNotFound
}

func (m memCatalog) Featured() []model.Plant {
	var out []model.Plant
	for _, p := range m.plants {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (m memCatalog) Vocabulary() model.Vocabulary { return m.vocab }

func (m memCatalog) Len() int { return len(m.plants) }

func mk(id int, name string, price float64, difficulty model.Difficulty, category model.Category) model.Plant {
	return model.Plant{
		ID:          id,
		Name:        name,
		Description: name + " for your home",
		Price:       price,
		Category:    category,
		Difficulty:  difficulty,
		Size:        "Medium",
		Image:       "🌿",
		InStock:     true,
	}
}

// threePlants is the reference catalog used by the end-to-end scenarios.
func threePlants() memCatalog {
	return memCatalog{vocab: testVocab, plants: []model.Plant{
		mk(1, "Monstera Deliciosa", 34.99, "Easy", "Indoor"),
		mk(2, "Snake Plant", 24.99, "Very Easy", "Indoor"),
		mk(3, "Fiddle Leaf Fig", 49.99, "Intermediate", "Indoor"),
	}}
}

func mixedCatalog() memCatalog {
	return memCatalog{vocab: testVocab, plants: []model.Plant{
		mk(1, "Monstera Deliciosa", 34.99, "Easy", "Indoor"),
		mk(2, "Snake Plant", 24.99, "Very Easy", "Indoor"),
		mk(3, "Fiddle Leaf Fig", 49.99, "Intermediate", "Indoor"),
		mk(4, "Boston Fern", 19.99, "Intermediate", "Fern"),
		mk(5, "Echeveria", 12.5, "Very Easy", "Succulent"),
		mk(6, "Bird of Paradise", 89, "Hard", "Indoor"),
		mk(7, "Basil", 6.99, "Easy", "Herb"),
		mk(8, "aloe Vera", 14.99, "Very Easy", "Succulent"),
	}}
}

func names(ps []model.Plant) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
