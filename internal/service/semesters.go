package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/models"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"
)

// Semesters is the semester aggregate manager. It owns current_capital, the
// ordered transaction id list and the weekly_balance history, and cascades
// semester deletion to every owned transaction.
type Semesters struct {
	st store.Store
}

func NewSemesters(st store.Store) *Semesters {
	return &Semesters{st: st}
}

// List returns all semesters.
func (s *Semesters) List(ctx context.Context) ([]models.Semester, error) {
	docs, err := s.st.Scan(ctx, models.SemestersCollection, nil)
	if err != nil {
		return nil, apperr.Store(err)
	}
	out := make([]models.Semester, 0, len(docs))
	for _, doc := range docs {
		sem, err := models.SemesterFromRecord(doc.ID, doc.Record)
		if err != nil {
			return nil, apperr.Store(err)
		}
		out = append(out, sem)
	}
	return out, nil
}

// Get returns a single semester by id.
func (s *Semesters) Get(ctx context.Context, id string) (*models.Semester, error) {
	rec, err := s.st.Get(ctx, models.SemestersCollection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFoundf("Semester with ID '%s' not found.", id)
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	sem, err := models.SemesterFromRecord(id, rec)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &sem, nil
}

// Create inserts a semester with current_capital seeded from
// starting_capital, net_change zero and empty ledger lists.
func (s *Semesters) Create(ctx context.Context, body map[string]interface{}) (*models.Semester, error) {
	if err := requireFields(body, "name", "date", "starting_capital", "active_house_size", "insurance_cost"); err != nil {
		return nil, err
	}

	name, err := toString(body["name"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	date, err := toString(body["date"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	startingCapital, err := toFloat(body["starting_capital"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	houseSize, err := toInt(body["active_house_size"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	insuranceCost, err := toFloat(body["insurance_cost"])
	if err != nil {
		return nil, apperr.Store(err)
	}

	sem := models.Semester{
		Name:            name,
		Date:            date,
		StartingCapital: startingCapital,
		CurrentCapital:  startingCapital,
		NetChange:       0.0,
		ActiveHouseSize: houseSize,
		InsuranceCost:   insuranceCost,
		WeeklyBalance:   []models.WeeklyBalance{},
		Transactions:    []string{},
	}
	id, err := s.st.Add(ctx, models.SemestersCollection, sem.Record())
	if err != nil {
		return nil, apperr.Store(err)
	}
	sem.ID = id
	return &sem, nil
}

// Update overwrites the supplied fields as-is. A caller can set
// current_capital directly, bypassing the incremental maintenance done by
// the transaction ledger; preserved deliberately as an escape hatch.
func (s *Semesters) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, err := s.st.Get(ctx, models.SemestersCollection, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFoundf("Semester with ID '%s' not found.", id)
		}
		return apperr.Store(err)
	}
	if err := s.st.Update(ctx, models.SemestersCollection, id, store.Record(fields)); err != nil {
		return apperr.Store(err)
	}
	return nil
}

// Delete removes a semester and cascade-deletes every transaction its id
// list references. The cascade is best-effort: ids whose records are already
// gone are logged and skipped. No per-transaction aggregate reversal is
// needed since the semester itself is going away.
func (s *Semesters) Delete(ctx context.Context, id string) error {
	sem, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, txnID := range sem.Transactions {
		_, err := s.st.Get(ctx, models.TransactionsCollection, txnID)
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("semester %s cascade: transaction %s already gone, skipping", id, txnID)
			continue
		}
		if err != nil {
			return apperr.Store(err)
		}
		if err := s.st.Delete(ctx, models.TransactionsCollection, txnID); err != nil {
			return apperr.Store(err)
		}
	}

	if err := s.st.Delete(ctx, models.SemestersCollection, id); err != nil {
		return apperr.Store(err)
	}
	return nil
}

// AddWeeklyBalance appends a {date, value} snapshot to the semester's
// weekly_balance list. The append is a read-then-write of the full list:
// duplicate entries are permitted and insertion order is preserved, which an
// append-unique list union would not honor.
func (s *Semesters) AddWeeklyBalance(ctx context.Context, id string, body map[string]interface{}) (*models.WeeklyBalance, error) {
	if err := requireFields(body, "date", "value"); err != nil {
		return nil, err
	}

	dateStr, err := toString(body["date"])
	if err != nil {
		return nil, apperr.Validationf("Invalid date format. Use 'YYYY-MM-DD'.")
	}
	parsed, err := time.Parse(models.DateLayout, dateStr)
	if err != nil {
		return nil, apperr.Validationf("Invalid date format. Use 'YYYY-MM-DD'.")
	}
	value, err := toFloat(body["value"])
	if err != nil {
		return nil, apperr.Store(err)
	}

	sem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := models.WeeklyBalance{Date: parsed.Format(models.DateLayout), Value: value}
	updated := make([]interface{}, 0, len(sem.WeeklyBalance)+1)
	for _, wb := range sem.WeeklyBalance {
		updated = append(updated, map[string]interface{}{"date": wb.Date, "value": wb.Value})
	}
	updated = append(updated, map[string]interface{}{"date": entry.Date, "value": entry.Value})

	if err := s.st.Update(ctx, models.SemestersCollection, id, store.Record{"weekly_balance": updated}); err != nil {
		return nil, apperr.Store(err)
	}
	return &entry, nil
}
