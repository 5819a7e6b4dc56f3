package models

import "github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"

// Reimbursement is a standalone repayment request with no cross-entity
// effects.
type Reimbursement struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Requester string  `json:"requester"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

func (r Reimbursement) Record() store.Record {
	return store.Record{
		"date":      r.Date,
		"requester": r.Requester,
		"amount":    r.Amount,
		"reason":    r.Reason,
	}
}

func ReimbursementFromRecord(id string, rec store.Record) (Reimbursement, error) {
	var r Reimbursement
	if err := store.Decode(rec, &r); err != nil {
		return Reimbursement{}, err
	}
	r.ID = id
	return r, nil
}
