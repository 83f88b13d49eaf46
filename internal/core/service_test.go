//go:build unit

package core

import (
	"context"
	"errors"
	"plant-pal/internal/core/model"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	got []model.Plant
	err error
}

func (s *recordingSink) Record(_ context.Context, _ model.User, p model.Plant) error {
	if s.err != nil {
		return s.err
	}
	s.got = append(s.got, p)
	return nil
}

type tagStripper struct{}

func (tagStripper) Sanitize(s string) string { return strings.ReplaceAll(s, "<b>", "") }

func newTestService(sink *recordingSink) *Service {
	svc := NewService(mixedCatalog(), sink, tagStripper{})
	svc.Now = func() time.Time { return time.UnixMilli(1700000000123) }
	return svc
}

var demoUser = model.User{ID: "1", Email: "demo@plantpal.com", Name: "Demo User", Provider: "credentials"}

func TestListPlants_AppliesQuery(t *testing.T) {
	svc := newTestService(&recordingSink{})
	q := model.DefaultQueryState()
	q.Category = "Succulent"
	q.SortKey = model.SortPriceLow

	v, err := svc.ListPlants(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Echeveria", "aloe Vera"}, names(v.Items))
	assert.Equal(t, 8, v.TotalCount)
}

func TestListPlants_RejectsUnknownFacet(t *testing.T) {
	svc := newTestService(&recordingSink{})
	q := model.DefaultQueryState()
	q.Category = "Cactus"
	_, err := svc.ListPlants(context.Background(), q)
	assert.True(t, IsValidation(err))
}

func TestGetPlant(t *testing.T) {
	svc := newTestService(&recordingSink{})
	p, err := svc.GetPlant(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Echeveria", p.Name)

	_, err = svc.GetPlant(context.Background(), 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSubmitPlant_CleansAndRecords(t *testing.T) {
	sink := &recordingSink{}
	svc := newTestService(sink)

	out, err := svc.SubmitPlant(context.Background(), demoUser, model.SubmitPlantInput{
		Name:             "  <b>Calathea ",
		Description:      "Patterned leaves",
		Price:            "29.5",
		CareInstructions: []string{"Keep humid", "  ", ""},
		Benefits:         []string{"", "Pet friendly"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1700000000123, out.ID)
	assert.Equal(t, "Calathea", out.Name)
	assert.Equal(t, 29.5, out.Price)
	assert.Equal(t, DefaultCategory, out.Category)
	assert.Equal(t, DefaultDifficulty, out.Difficulty)
	assert.Equal(t, DefaultSize, out.Size)
	assert.Equal(t, DefaultImage, out.Image)
	assert.Equal(t, []string{"Keep humid"}, out.CareInstructions)
	assert.Equal(t, []string{"Pet friendly"}, out.Benefits)
	assert.True(t, out.InStock)
	assert.False(t, out.Featured)

	require.Len(t, sink.got, 1)
	assert.Equal(t, out, sink.got[0])
	// the catalog is untouched
	assert.Equal(t, 8, svc.Catalog.Len())
}

func TestSubmitPlant_Validation(t *testing.T) {
	base := model.SubmitPlantInput{Name: "Calathea", Description: "Leaves", Price: "10"}
	cases := map[string]func(in *model.SubmitPlantInput){
		"blank name":       func(in *model.SubmitPlantInput) { in.Name = "   " },
		"blank desc":       func(in *model.SubmitPlantInput) { in.Description = "" },
		"missing price":    func(in *model.SubmitPlantInput) { in.Price = "" },
		"zero price":       func(in *model.SubmitPlantInput) { in.Price = "0" },
		"negative price":   func(in *model.SubmitPlantInput) { in.Price = "-3" },
		"unknown category": func(in *model.SubmitPlantInput) { in.Category = "Tree" },
		"unknown level":    func(in *model.SubmitPlantInput) { in.Difficulty = "Extreme" },
		"unknown size":     func(in *model.SubmitPlantInput) { in.Size = "Huge" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			sink := &recordingSink{}
			svc := newTestService(sink)
			in := base
			mutate(&in)
			_, err := svc.SubmitPlant(context.Background(), demoUser, in)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Empty(t, sink.got)
		})
	}
}

func TestSubmitPlant_SinkFailure(t *testing.T) {
	svc := newTestService(&recordingSink{err: errors.New("disk full")})
	_, err := svc.SubmitPlant(context.Background(), demoUser, model.SubmitPlantInput{Name: "A", Description: "B", Price: "1"})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
}
