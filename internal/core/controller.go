package core

import (
	"fmt"
	"plant-pal/internal/core/model"
	"slices"
)

// CatalogStore is the read-only plant catalog. Implementations must not share
// mutable state with the slices they return.
type CatalogStore interface {
	All() []model.Plant
	ByID(id int) (model.Plant, error)
	Featured() []model.Plant
	Vocabulary() model.Vocabulary
	Len() int
}

// FieldError reports a query value outside its allowed domain.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return model.ErrValidation }

// DeriveView filters and sorts the whole catalog for q.
func DeriveView(store CatalogStore, q model.QueryState) model.ResultView {
	all := store.All()
	items := Sort(Filter(all, q), q.SortKey, store.Vocabulary())
	return model.ResultView{
		Items:      items,
		TotalCount: len(all),
		MatchCount: len(items),
	}
}

// Controller owns one viewer's QueryState and the ResultView derived from it.
// It is not safe for concurrent use; create one per session or request.
//
// Setters reject out-of-domain values and keep the previous state.
type Controller struct {
	store CatalogStore
	query model.QueryState
	view  model.ResultView
}

func NewController(store CatalogStore) *Controller {
	c := &Controller{store: store, query: model.DefaultQueryState()}
	c.recompute()
	return c
}

func (c *Controller) Query() model.QueryState { return c.query }

// View returns the current result. The caller owns the returned Items.
func (c *Controller) View() model.ResultView {
	v := c.view
	v.Items = slices.Clone(c.view.Items)
	return v
}

func (c *Controller) SetSearchText(text string) {
	c.query.SearchText = text
	c.recompute()
}

func (c *Controller) SetCategory(value model.Category) error {
	if err := c.checkCategory(value); err != nil {
		return err
	}
	c.query.Category = value
	c.recompute()
	return nil
}

func (c *Controller) SetDifficulty(value model.Difficulty) error {
	if err := c.checkDifficulty(value); err != nil {
		return err
	}
	c.query.Difficulty = value
	c.recompute()
	return nil
}

func (c *Controller) SetSortKey(value string) error {
	if err := c.checkSortKey(value); err != nil {
		return err
	}
	c.query.SortKey = model.SortKey(value)
	c.recompute()
	return nil
}

// Clear restores the default query.
func (c *Controller) Clear() {
	c.query = model.DefaultQueryState()
	c.recompute()
}

// Apply replaces the whole query in one step. Nothing changes unless every
// field is valid.
func (c *Controller) Apply(q model.QueryState) error {
	if err := c.checkCategory(q.Category); err != nil {
		return err
	}
	if err := c.checkDifficulty(q.Difficulty); err != nil {
		return err
	}
	if err := c.checkSortKey(string(q.SortKey)); err != nil {
		return err
	}
	c.query = q
	c.recompute()
	return nil
}

func (c *Controller) checkCategory(value model.Category) error {
	if value == model.AllCategories || c.store.Vocabulary().HasCategory(value) {
		return nil
	}
	return &FieldError{Field: "category", Value: string(value)}
}

func (c *Controller) checkDifficulty(value model.Difficulty) error {
	if value == model.AllDifficulties {
		return nil
	}
	if _, ok := c.store.Vocabulary().DifficultyRank(value); ok {
		return nil
	}
	return &FieldError{Field: "difficulty", Value: string(value)}
}

func (c *Controller) checkSortKey(value string) error {
	if c.store.Vocabulary().HasSortKey(model.SortKey(value)) {
		return nil
	}
	return &FieldError{Field: "sort", Value: value}
}

func (c *Controller) recompute() {
	c.view = DeriveView(c.store, c.query)
}
