package service

import (
	"context"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/models"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"
)

// Categories is the category registry: CRUD over named categories with a
// scan-based uniqueness check and a deletion cascade that reassigns orphaned
// transactions to the Uncategorized sentinel.
type Categories struct {
	st store.Store
}

func NewCategories(st store.Store) *Categories {
	return &Categories{st: st}
}

// List returns all live categories.
func (s *Categories) List(ctx context.Context) ([]models.Category, error) {
	docs, err := s.st.Scan(ctx, models.CategoriesCollection, nil)
	if err != nil {
		return nil, apperr.Store(err)
	}
	out := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		cat, err := models.CategoryFromRecord(doc.ID, doc.Record)
		if err != nil {
			return nil, apperr.Store(err)
		}
		out = append(out, cat)
	}
	return out, nil
}

// Create inserts a new category. The name must not collide with any live
// category (case-sensitive exact match).
func (s *Categories) Create(ctx context.Context, body map[string]interface{}) (*models.Category, error) {
	raw, ok := body["name"]
	if !ok {
		return nil, apperr.Validationf("Category name is required")
	}
	name, err := toString(raw)
	if err != nil {
		return nil, apperr.Validationf("Category name is required")
	}

	existing, err := s.st.Scan(ctx, models.CategoriesCollection, func(_ string, rec store.Record) bool {
		return rec["name"] == name
	})
	if err != nil {
		return nil, apperr.Store(err)
	}
	if len(existing) > 0 {
		return nil, apperr.Conflictf("Category '%s' already exists.", name)
	}

	cat := models.Category{Name: name}
	id, err := s.st.Add(ctx, models.CategoriesCollection, cat.Record())
	if err != nil {
		return nil, apperr.Store(err)
	}
	cat.ID = id
	return &cat, nil
}

// DeleteByName removes every category with the given name, then reassigns
// every transaction referencing it to Uncategorized. Semester capital is
// unaffected: a category change never touches amounts.
func (s *Categories) DeleteByName(ctx context.Context, name string) error {
	matches, err := s.st.Scan(ctx, models.CategoriesCollection, func(_ string, rec store.Record) bool {
		return rec["name"] == name
	})
	if err != nil {
		return apperr.Store(err)
	}
	if len(matches) == 0 {
		return apperr.NotFoundf("Category with name '%s' not found.", name)
	}

	for _, doc := range matches {
		if err := s.st.Delete(ctx, models.CategoriesCollection, doc.ID); err != nil {
			return apperr.Store(err)
		}
	}

	orphaned, err := s.st.Scan(ctx, models.TransactionsCollection, func(_ string, rec store.Record) bool {
		return rec["category"] == name
	})
	if err != nil {
		return apperr.Store(err)
	}
	for _, doc := range orphaned {
		update := store.Record{"category": models.UncategorizedName}
		if err := s.st.Update(ctx, models.TransactionsCollection, doc.ID, update); err != nil {
			return apperr.Store(err)
		}
	}
	return nil
}

// exists reports whether any live category carries the given name.
func (s *Categories) exists(ctx context.Context, name string) (bool, error) {
	matches, err := s.st.Scan(ctx, models.CategoriesCollection, func(_ string, rec store.Record) bool {
		return rec["name"] == name
	})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}
