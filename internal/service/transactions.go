package service

import (
	"context"
	"errors"
	"time"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/models"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"
)

// DefaultPageSize is the transaction page size when the caller supplies no
// limit.
const DefaultPageSize = 10

// Transactions is the transaction ledger. Every create and delete is paired
// with an atomic update of the owning semester's transactions list and
// current_capital; those two fields are never written read-modify-write
// here, so concurrent writers to the same semester cannot lose updates.
type Transactions struct {
	st         store.Store
	categories *Categories
}

func NewTransactions(st store.Store, categories *Categories) *Transactions {
	return &Transactions{st: st, categories: categories}
}

// List pages through a semester's ledger. The semester's transactions id
// list is the authoritative order; startAfter, when given, must be an id in
// that list and the page begins immediately after it. Ids whose records have
// gone missing are skipped without shrinking the page cursor.
func (s *Transactions) List(ctx context.Context, semesterID string, limit int, startAfter string) (*models.TransactionPage, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	sem, err := s.getSemester(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	start := 0
	if startAfter != "" {
		pos := -1
		for i, id := range sem.Transactions {
			if id == startAfter {
				pos = i
				break
			}
		}
		if pos < 0 {
			return nil, apperr.Validationf("'start_after' ID '%s' not valid for this semester.", startAfter)
		}
		start = pos + 1
	}

	end := start + limit
	if end > len(sem.Transactions) {
		end = len(sem.Transactions)
	}
	paged := sem.Transactions[start:end]

	page := &models.TransactionPage{Transactions: []models.Transaction{}}
	for _, id := range paged {
		rec, err := s.st.Get(ctx, models.TransactionsCollection, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, apperr.Store(err)
		}
		txn, err := models.TransactionFromRecord(id, rec)
		if err != nil {
			return nil, apperr.Store(err)
		}
		page.Transactions = append(page.Transactions, txn)
	}

	// more pages may exist only when this one filled up
	if len(paged) == limit {
		last := paged[len(paged)-1]
		page.NextStartAfter = &last
	}
	return page, nil
}

// All returns every live transaction of a semester in ledger order.
func (s *Transactions) All(ctx context.Context, semesterID string) ([]models.Transaction, error) {
	sem, err := s.getSemester(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Transaction, 0, len(sem.Transactions))
	for _, id := range sem.Transactions {
		rec, err := s.st.Get(ctx, models.TransactionsCollection, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, apperr.Store(err)
		}
		txn, err := models.TransactionFromRecord(id, rec)
		if err != nil {
			return nil, apperr.Store(err)
		}
		out = append(out, txn)
	}
	return out, nil
}

// Create validates and inserts a transaction, then atomically appends its id
// to the owning semester and atomically adds its amount to current_capital.
// There is no rollback if the paired semester update fails after the insert.
func (s *Transactions) Create(ctx context.Context, body map[string]interface{}) (*models.Transaction, error) {
	if err := requireFields(body, "payer", "time", "message", "amount", "category", "semester_id"); err != nil {
		return nil, err
	}

	category, err := toString(body["category"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	ok, err := s.categories.exists(ctx, category)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if !ok {
		return nil, apperr.Validationf("Category '%s' does not exist.", category)
	}

	timeStr, err := toString(body["time"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	if _, err := time.Parse(models.TimeLayout, timeStr); err != nil {
		return nil, apperr.Validationf("Invalid time format. Use ISO 8601 (e.g., '2025-01-15T12:34:56Z').")
	}

	amount, err := toFloat(body["amount"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	payer, err := toString(body["payer"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	message, err := toString(body["message"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	semesterID, err := toString(body["semester_id"])
	if err != nil {
		return nil, apperr.Store(err)
	}

	if _, err := s.getSemester(ctx, semesterID); err != nil {
		return nil, err
	}

	txn := models.Transaction{
		Payer:      payer,
		Time:       timeStr,
		Message:    message,
		Amount:     amount,
		Category:   category,
		SemesterID: semesterID,
	}
	id, err := s.st.Add(ctx, models.TransactionsCollection, txn.Record())
	if err != nil {
		return nil, apperr.Store(err)
	}
	txn.ID = id

	if err := s.st.AtomicListAppend(ctx, models.SemestersCollection, semesterID, "transactions", id); err != nil {
		return nil, apperr.Store(err)
	}
	if err := s.st.AtomicIncrement(ctx, models.SemestersCollection, semesterID, "current_capital", amount); err != nil {
		return nil, apperr.Store(err)
	}
	return &txn, nil
}

// Update overwrites the supplied fields on a transaction. A category change
// is re-validated against the registry; every other field, including amount
// and semester_id, is written as-is with no aggregate recomputation. That
// keeps the endpoint an escape hatch that can break the capital invariant.
func (s *Transactions) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if raw, ok := fields["category"]; ok {
		category, err := toString(raw)
		if err != nil {
			return apperr.Store(err)
		}
		exists, err := s.categories.exists(ctx, category)
		if err != nil {
			return apperr.Store(err)
		}
		if !exists {
			return apperr.Validationf("Category '%s' does not exist.", category)
		}
	}

	if _, err := s.st.Get(ctx, models.TransactionsCollection, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFoundf("Transaction with ID '%s' not found.", id)
		}
		return apperr.Store(err)
	}
	if err := s.st.Update(ctx, models.TransactionsCollection, id, store.Record(fields)); err != nil {
		return apperr.Store(err)
	}
	return nil
}

// Delete removes a transaction and reverses its effect on the owning
// semester's aggregates, returning the owning semester's id. When the
// semester no longer exists the reversal is skipped silently.
func (s *Transactions) Delete(ctx context.Context, id string) (string, error) {
	rec, err := s.st.Get(ctx, models.TransactionsCollection, id)
	if errors.Is(err, store.ErrNotFound) {
		return "", apperr.NotFoundf("Transaction with ID '%s' not found.", id)
	}
	if err != nil {
		return "", apperr.Store(err)
	}
	txn, err := models.TransactionFromRecord(id, rec)
	if err != nil {
		return "", apperr.Store(err)
	}
	if txn.SemesterID == "" {
		return "", apperr.Validationf("The transaction is not associated with any semester.")
	}

	_, err = s.st.Get(ctx, models.SemestersCollection, txn.SemesterID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// owning semester already deleted, nothing to reverse
	case err != nil:
		return "", apperr.Store(err)
	default:
		if err := s.st.AtomicListRemove(ctx, models.SemestersCollection, txn.SemesterID, "transactions", id); err != nil {
			return "", apperr.Store(err)
		}
		if err := s.st.AtomicIncrement(ctx, models.SemestersCollection, txn.SemesterID, "current_capital", -txn.Amount); err != nil {
			return "", apperr.Store(err)
		}
	}

	if err := s.st.Delete(ctx, models.TransactionsCollection, id); err != nil {
		return "", apperr.Store(err)
	}
	return txn.SemesterID, nil
}

func (s *Transactions) getSemester(ctx context.Context, id string) (models.Semester, error) {
	rec, err := s.st.Get(ctx, models.SemestersCollection, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Semester{}, apperr.NotFoundf("Semester with ID '%s' not found.", id)
	}
	if err != nil {
		return models.Semester{}, apperr.Store(err)
	}
	sem, err := models.SemesterFromRecord(id, rec)
	if err != nil {
		return models.Semester{}, apperr.Store(err)
	}
	return sem, nil
}
