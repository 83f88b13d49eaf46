package core

import (
	"context"
	"errors"
	"fmt"
	"plant-pal/internal/core/model"
	"strings"
	"time"
)

// SubmissionSink receives plants submitted from the dashboard. The catalog
// itself is never written.
type SubmissionSink interface {
	Record(ctx context.Context, by model.User, p model.Plant) error
}

type TextSanitizer interface {
	Sanitize(s string) string
}

// Defaults preselected by the submission form.
const (
	DefaultCategory   model.Category   = "Indoor"
	DefaultDifficulty model.Difficulty = "Easy"
	DefaultSize       model.Size       = "Medium"
	DefaultImage                       = "🌱"
)

var errRequiredFields = fmt.Errorf("%w: please fill in all required fields", model.ErrValidation)

type Service struct {
	Catalog   CatalogStore
	Sink      SubmissionSink
	Sanitizer TextSanitizer
	Now       func() time.Time
}

func NewService(catalog CatalogStore, sink SubmissionSink, sanitizer TextSanitizer) *Service {
	return &Service{Catalog: catalog, Sink: sink, Sanitizer: sanitizer, Now: time.Now}
}

// ListPlants runs q through a request-scoped controller.
func (s *Service) ListPlants(_ context.Context, q model.QueryState) (model.ResultView, error) {
	c := NewController(s.Catalog)
	if err := c.Apply(q); err != nil {
		return model.ResultView{}, err
	}
	return c.View(), nil
}

func (s *Service) GetPlant(_ context.Context, id int) (model.Plant, error) {
	p, err := s.Catalog.ByID(id)
	if err != nil {
		return model.Plant{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) FeaturedPlants(_ context.Context) []model.Plant {
	return s.Catalog.Featured()
}

func (s *Service) Facets(_ context.Context) model.Vocabulary {
	return s.Catalog.Vocabulary()
}

// SubmitPlant validates and cleans a dashboard submission and hands it to the
// sink. The returned plant is what was recorded.
func (s *Service) SubmitPlant(ctx context.Context, by model.User, in model.SubmitPlantInput) (model.Plant, error) {
	name := s.clean(in.Name)
	description := s.clean(in.Description)
	if name == "" || description == "" || in.Price == "" {
		return model.Plant{}, errRequiredFields
	}

	price, err := in.Price.Float64()
	if err != nil || price <= 0 {
		return model.Plant{}, &FieldError{Field: "price", Value: in.Price.String()}
	}

	vocab := s.Catalog.Vocabulary()

	category := model.Category(valueOr(in.Category, string(DefaultCategory)))
	if !vocab.HasCategory(category) {
		return model.Plant{}, &FieldError{Field: "category", Value: in.Category}
	}
	difficulty := model.Difficulty(valueOr(in.Difficulty, string(DefaultDifficulty)))
	if _, ok := vocab.DifficultyRank(difficulty); !ok {
		return model.Plant{}, &FieldError{Field: "difficulty", Value: in.Difficulty}
	}
	size := model.Size(valueOr(in.Size, string(DefaultSize)))
	if !vocab.HasSize(size) {
		return model.Plant{}, &FieldError{Field: "size", Value: in.Size}
	}

	p := model.Plant{
		ID:               int(s.Now().UnixMilli()),
		Name:             name,
		Description:      description,
		Price:            price,
		Category:         category,
		Difficulty:       difficulty,
		Light:            s.clean(in.Light),
		Water:            s.clean(in.Water),
		Size:             size,
		CareInstructions: s.cleanList(in.CareInstructions),
		Benefits:         s.cleanList(in.Benefits),
		Image:            valueOr(strings.TrimSpace(in.Image), DefaultImage),
		InStock:          true,
		Featured:         false,
	}

	if err := s.Sink.Record(ctx, by, p); err != nil {
		return model.Plant{}, fmt.Errorf("record submission: %w", err)
	}
	return p, nil
}

// ErrNotFound is returned by GetPlant for unknown ids.
var ErrNotFound = model.ErrNotFound

// IsValidation reports whether err was caused by caller input.
func IsValidation(err error) bool {
	return errors.Is(err, model.ErrValidation)
}

// helpers
func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *Service) clean(v string) string {
	v = strings.TrimSpace(v)
	if s.Sanitizer != nil {
		v = strings.TrimSpace(s.Sanitizer.Sanitize(v))
	}
	return v
}

// cleanList drops items that are blank after cleaning.
func (s *Service) cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = s.clean(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
