package service

import (
	"context"
	"errors"
	"time"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/models"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"
)

// Reimbursements is an independent CRUD resource with no cross-entity
// effects.
type Reimbursements struct {
	st store.Store
}

func NewReimbursements(st store.Store) *Reimbursements {
	return &Reimbursements{st: st}
}

func (s *Reimbursements) List(ctx context.Context) ([]models.Reimbursement, error) {
	docs, err := s.st.Scan(ctx, models.ReimbursementsCollection, nil)
	if err != nil {
		return nil, apperr.Store(err)
	}
	out := make([]models.Reimbursement, 0, len(docs))
	for _, doc := range docs {
		r, err := models.ReimbursementFromRecord(doc.ID, doc.Record)
		if err != nil {
			return nil, apperr.Store(err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Reimbursements) Create(ctx context.Context, body map[string]interface{}) (*models.Reimbursement, error) {
	if err := requireFields(body, "date", "requester", "amount", "reason"); err != nil {
		return nil, err
	}

	date, err := toString(body["date"])
	if err != nil {
		return nil, apperr.Validationf("Invalid date format. Use 'YYYY-MM-DD'.")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, apperr.Validationf("Invalid date format. Use 'YYYY-MM-DD'.")
	}
	requester, err := toString(body["requester"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	amount, err := toFloat(body["amount"])
	if err != nil {
		return nil, apperr.Store(err)
	}
	reason, err := toString(body["reason"])
	if err != nil {
		return nil, apperr.Store(err)
	}

	r := models.Reimbursement{
		Date:      date,
		Requester: requester,
		Amount:    amount,
		Reason:    reason,
	}
	id, err := s.st.Add(ctx, models.ReimbursementsCollection, r.Record())
	if err != nil {
		return nil, apperr.Store(err)
	}
	r.ID = id
	return &r, nil
}

func (s *Reimbursements) Delete(ctx context.Context, id string) error {
	_, err := s.st.Get(ctx, models.ReimbursementsCollection, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFoundf("Reimbursement with ID '%s' not found.", id)
	}
	if err != nil {
		return apperr.Store(err)
	}
	if err := s.st.Delete(ctx, models.ReimbursementsCollection, id); err != nil {
		return apperr.Store(err)
	}
	return nil
}
