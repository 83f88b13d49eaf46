package core

import (
	"cmp"
	"plant-pal/internal/core/model"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a new slice ordered by key. The ordering is stable, so ties keep
// their relative input order. An unknown key returns the plants unchanged.
//
// Difficulty ranks come from the declared order of vocab.Difficulties; a plant
// whose difficulty is missing there must have been rejected at catalog load.
func Sort(plants []model.Plant, key model.SortKey, vocab model.Vocabulary) []model.Plant {
	out := slices.Clone(plants)
	if out == nil {
		out = []model.Plant{}
	}
	if c := comparator(key, vocab); c != nil {
		slices.SortStableFunc(out, c)
	}
	return out
}

// IsSortable reports whether key selects one of the engine's comparators.
func IsSortable(key model.SortKey) bool {
	switch key {
	case model.SortName, model.SortPriceLow, model.SortPriceHigh, model.SortDifficulty:
		return true
	}
	return false
}

func comparator(key model.SortKey, vocab model.Vocabulary) func(a, b model.Plant) int {
	switch key {
	case model.SortName:
		// Collators keep scratch buffers, one per sort call.
		col := collate.New(language.English)
		return func(a, b model.Plant) int {
			return col.CompareString(a.Name, b.Name)
		}
	case model.SortPriceLow:
		return func(a, b model.Plant) int {
			return cmp.Compare(a.Price, b.Price)
		}
	case model.SortPriceHigh:
		return func(a, b model.Plant) int {
			return cmp.Compare(b.Price, a.Price)
		}
	case model.SortDifficulty:
		rank := make(map[model.Difficulty]int, len(vocab.Difficulties))
		for i, d := range vocab.Difficulties {
			rank[d] = i
		}
		return func(a, b model.Plant) int {
			return cmp.Compare(rank[a.Difficulty], rank[b.Difficulty])
		}
	}
	return nil
}
