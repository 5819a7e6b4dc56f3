package service

import (
	"context"
	"testing"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/models"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"
)

// env bundles the services over a shared in-memory store.
type env struct {
	ctx        context.Context
	st         *store.Memory
	categories *Categories
	txns       *Transactions
	semesters  *Semesters
	reims      *Reimbursements
}

func newEnv() *env {
	st := store.NewMemory()
	categories := NewCategories(st)
	return &env{
		ctx:        context.Background(),
		st:         st,
		categories: categories,
		txns:       NewTransactions(st, categories),
		semesters:  NewSemesters(st),
		reims:      NewReimbursements(st),
	}
}

func (e *env) mustCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	cat, err := e.categories.Create(e.ctx, map[string]interface{}{"name": name})
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return cat
}

func (e *env) mustSemester(t *testing.T, name string, startingCapital float64) *models.Semester {
	t.Helper()
	sem, err := e.semesters.Create(e.ctx, map[string]interface{}{
		"name":              name,
		"date":              "2025-01-01",
		"starting_capital":  startingCapital,
		"active_house_size": 10,
		"insurance_cost":    50.0,
	})
	if err != nil {
		t.Fatalf("create semester %s: %v", name, err)
	}
	return sem
}

func (e *env) mustTransaction(t *testing.T, semesterID, category string, amount float64) *models.Transaction {
	t.Helper()
	txn, err := e.txns.Create(e.ctx, map[string]interface{}{
		"payer":       "Alice",
		"time":        "2025-01-15T12:00:00Z",
		"message":     "test",
		"amount":      amount,
		"category":    category,
		"semester_id": semesterID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return txn
}

func (e *env) semester(t *testing.T, id string) *models.Semester {
	t.Helper()
	sem, err := e.semesters.Get(e.ctx, id)
	if err != nil {
		t.Fatalf("get semester %s: %v", id, err)
	}
	return sem
}
