package core

import (
	"plant-pal/internal/core/model"
	"strings"
)

// Filter returns the plants matching every predicate of q. Input order is
// preserved and the input slice is not modified.
func Filter(plants []model.Plant, q model.QueryState) []model.Plant {
	needle := strings.ToLower(q.SearchText)

	out := make([]model.Plant, 0, len(plants))
	for _, p := range plants {
		if !matchesText(p, needle) {
			continue
		}
		if !matchesCategory(p, q.Category) {
			continue
		}
		if !matchesDifficulty(p, q.Difficulty) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesText expects an already lower-cased needle.
func matchesText(p model.Plant, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

func matchesCategory(p model.Plant, category model.Category) bool {
	return category == model.AllCategories || category == p.Category
}

func matchesDifficulty(p model.Plant, difficulty model.Difficulty) bool {
	return difficulty == model.AllDifficulties || difficulty == p.Difficulty
}
