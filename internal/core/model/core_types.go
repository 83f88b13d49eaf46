package model

import (
	"encoding/json"
	"errors"
)

// All core models live here together for simplicity.

type Category string

type Difficulty string

type Size string

type SortKey string

// All is the wildcard facet value meaning "no constraint".
const All = "All"

const (
	AllCategories   Category   = All
	AllDifficulties Difficulty = All
)

const (
	SortName       SortKey = "name"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortDifficulty SortKey = "difficulty"
)

var (
	ErrValidation       = errors.New("validation")
	ErrNotFound         = errors.New("not_found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrCatalogInvariant = errors.New("catalog_invariant")
)

type Plant struct {
	ID               int        `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	Description      string     `json:"description" yaml:"description"`
	Price            float64    `json:"price" yaml:"price"`
	Category         Category   `json:"category" yaml:"category"`
	Difficulty       Difficulty `json:"difficulty" yaml:"difficulty"`
	Light            string     `json:"light" yaml:"light"`
	Water            string     `json:"water" yaml:"water"`
	Size             Size       `json:"size" yaml:"size"`
	CareInstructions []string   `json:"careInstructions" yaml:"care_instructions"`
	Benefits         []string   `json:"benefits" yaml:"benefits"`
	Image            string     `json:"image" yaml:"image"`
	InStock          bool       `json:"inStock" yaml:"in_stock"`
	Featured         bool       `json:"featured" yaml:"featured"`
}

// Clone returns a copy that shares no slices with p.
func (p Plant) Clone() Plant {
	p.CareInstructions = append([]string(nil), p.CareInstructions...)
	p.Benefits = append([]string(nil), p.Benefits...)
	return p
}

type SortOption struct {
	Key   SortKey `json:"key" yaml:"key"`
	Label string  `json:"label" yaml:"label"`
}

// Vocabulary holds the published enumerations. The rank of a difficulty is its
// index in Difficulties.
type Vocabulary struct {
	Categories   []Category   `json:"categories" yaml:"categories"`
	Difficulties []Difficulty `json:"difficulties" yaml:"difficulties"`
	Sizes        []Size       `json:"sizes" yaml:"sizes"`
	SortOptions  []SortOption `json:"sortOptions" yaml:"sort_options"`
}

func (v Vocabulary) HasCategory(c Category) bool {
	for _, x := range v.Categories {
		if x == c {
			return true
		}
	}
	return false
}

func (v Vocabulary) HasSize(s Size) bool {
	for _, x := range v.Sizes {
		if x == s {
			return true
		}
	}
	return false
}

func (v Vocabulary) HasSortKey(k SortKey) bool {
	for _, o := range v.SortOptions {
		if o.Key == k {
			return true
		}
	}
	return false
}

// DifficultyRank reports the position of d in the declared difficulty order.
func (v Vocabulary) DifficultyRank(d Difficulty) (int, bool) {
	for i, x := range v.Difficulties {
		if x == d {
			return i, true
		}
	}
	return 0, false
}

// QueryState is the discovery intent of one viewer. Category and Difficulty
// hold either All or a vocabulary member.
type QueryState struct {
	SearchText string     `json:"searchText"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	SortKey    SortKey    `json:"sortKey"`
}

func DefaultQueryState() QueryState {
	return QueryState{Category: AllCategories, Difficulty: AllDifficulties, SortKey: SortName}
}

type ResultView struct {
	Items      []Plant `json:"items"`
	TotalCount int     `json:"totalCount"`
	MatchCount int     `json:"matchCount"`
}

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"` // credentials | google
}

type SubmitPlantInput struct {
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Price            json.Number `json:"price"`
	Category         string      `json:"category"`
	Difficulty       string      `json:"difficulty"`
	Light            string      `json:"light"`
	Water            string      `json:"water"`
	Size             string      `json:"size"`
	CareInstructions []string    `json:"careInstructions"`
	Benefits         []string    `json:"benefits"`
	Image            string      `json:"image"`
}

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
