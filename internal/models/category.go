package models

import "github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"

// Collection names in the document store.
const (
	CategoriesCollection     = "categories"
	TransactionsCollection   = "transactions"
	SemestersCollection      = "semesters"
	ReimbursementsCollection = "reimbursements"
)

// UncategorizedName is the sentinel category assigned to transactions whose
// category is deleted. A literal value, not a stored record.
const UncategorizedName = "Uncategorized"

// Category represents a named transaction category. Names are unique across
// live categories.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c Category) Record() store.Record {
	return store.Record{"name": c.Name}
}

func CategoryFromRecord(id string, rec store.Record) (Category, error) {
	var c Category
	if err := store.Decode(rec, &c); err != nil {
		return Category{}, err
	}
	c.ID = id
	return c, nil
}
