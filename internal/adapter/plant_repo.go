package adapter

import (
	"errors"
	"fmt"
	"plant-pal/internal/core"
	"plant-pal/internal/core/model"
	"strings"
)

var (
	errNotFound = errors.New("not found")
)

var _ core.CatalogStore = (*PlantRepo)(nil)

// PlantRepo is the immutable in-memory catalog. It is validated once in
// NewPlantRepo and never written afterwards, so it needs no locking and can be
// shared by every request.
type PlantRepo struct {
	vocab  model.Vocabulary
	plants []model.Plant // catalog order
	byID   map[int]int   // id -> index in plants
}

// NewPlantRepo validates vocab and plants and builds the store. Any invariant
// violation is reported as model.ErrCatalogInvariant.
func NewPlantRepo(vocab model.Vocabulary, plants []model.Plant) (*PlantRepo, error) {
	if err := validateVocabulary(vocab); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCatalogInvariant, err)
	}

	r := &PlantRepo{
		vocab:  copyVocabulary(vocab),
		plants: make([]model.Plant, 0, len(plants)),
		byID:   make(map[int]int, len(plants)),
	}
	for i, p := range plants {
		if err := validatePlant(vocab, p); err != nil {
			return nil, fmt.Errorf("%w: plant #%d (id %d): %v", model.ErrCatalogInvariant, i, p.ID, err)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate plant id %d", model.ErrCatalogInvariant, p.ID)
		}
		r.byID[p.ID] = len(r.plants)
		r.plants = append(r.plants, p.Clone())
	}
	return r, nil
}

func (r *PlantRepo) All() []model.Plant {
	out := make([]model.Plant, len(r.plants))
	for i, p := range r.plants {
		out[i] = p.Clone()
	}
	return out
}

func (r *PlantRepo) ByID(id int) (model.Plant, error) {
	i, ok := r.byID[id]
	if !ok {
		return model.Plant{}, errNotFound
	}
	return r.plants[i].Clone(), nil
}

func (r *PlantRepo) Featured() []model.Plant {
	out := []model.Plant{}
	for _, p := range r.plants {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (r *PlantRepo) Vocabulary() model.Vocabulary { return copyVocabulary(r.vocab) }

func (r *PlantRepo) Len() int { return len(r.plants) }

func copyVocabulary(v model.Vocabulary) model.Vocabulary {
	v.Categories = append([]model.Category(nil), v.Categories...)
	v.Difficulties = append([]model.Difficulty(nil), v.Difficulties...)
	v.Sizes = append([]model.Size(nil), v.Sizes...)
	v.SortOptions = append([]model.SortOption(nil), v.SortOptions...)
	return v
}

func validateVocabulary(v model.Vocabulary) error {
	if err := checkEnum("category", v.Categories); err != nil {
		return err
	}
	if err := checkEnum("difficulty", v.Difficulties); err != nil {
		return err
	}
	if err := checkEnum("size", v.Sizes); err != nil {
		return err
	}
	if len(v.SortOptions) == 0 {
		return errors.New("no sort options")
	}
	seen := make(map[model.SortKey]bool, len(v.SortOptions))
	for _, o := range v.SortOptions {
		if !core.IsSortable(o.Key) {
			return fmt.Errorf("sort option %q has no comparator", o.Key)
		}
		if seen[o.Key] {
			return fmt.Errorf("duplicate sort option %q", o.Key)
		}
		if strings.TrimSpace(o.Label) == "" {
			return fmt.Errorf("sort option %q has no label", o.Key)
		}
		seen[o.Key] = true
	}
	if !seen[model.SortName] {
		return fmt.Errorf("default sort option %q missing", model.SortName)
	}
	return nil
}

// checkEnum rejects empty, duplicate and sentinel values.
func checkEnum[T ~string](kind string, values []T) error {
	if len(values) == 0 {
		return fmt.Errorf("no %s values", kind)
	}
	seen := make(map[T]bool, len(values))
	for _, v := range values {
		switch {
		case strings.TrimSpace(string(v)) == "":
			return fmt.Errorf("empty %s value", kind)
		case string(v) == model.All:
			return fmt.Errorf("%s value %q is reserved", kind, v)
		case seen[v]:
			return fmt.Errorf("duplicate %s %q", kind, v)
		}
		seen[v] = true
	}
	return nil
}

func validatePlant(v model.Vocabulary, p model.Plant) error {
	if p.ID <= 0 {
		return errors.New("id must be positive")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		return errors.New("description is empty")
	}
	if !(p.Price > 0) {
		return fmt.Errorf("price %v must be positive", p.Price)
	}
	if !v.HasCategory(p.Category) {
		return fmt.Errorf("unknown category %q", p.Category)
	}
	if _, ok := v.DifficultyRank(p.Difficulty); !ok {
		return fmt.Errorf("unknown difficulty %q", p.Difficulty)
	}
	if !v.HasSize(p.Size) {
		return fmt.Errorf("unknown size %q", p.Size)
	}
	for _, s := range p.CareInstructions {
		if strings.TrimSpace(s) == "" {
			return errors.New("empty care instruction")
		}
	}
	for _, s := range p.Benefits {
		if strings.TrimSpace(s) == "" {
			return errors.New("empty benefit")
		}
	}
	return nil
}
