package models

import "github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"

// DateLayout is the required format of semester and reimbursement dates.
const DateLayout = "2006-01-02"

// WeeklyBalance is one balance snapshot. The list on a semester is ordered
// by insertion, not by date, and duplicates are permitted.
type WeeklyBalance struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Semester is a budgeting period with its own capital ledger.
//
// CurrentCapital and Transactions are denormalized aggregates over the
// transaction collection: the capital is maintained by atomic increments at
// each transaction create/delete (never recomputed from scratch), and
// Transactions is the append-ordered list of live transaction ids, which is
// also the canonical pagination order.
type Semester struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Date            string          `json:"date"`
	StartingCapital float64         `json:"starting_capital"`
	CurrentCapital  float64         `json:"current_capital"`
	NetChange       float64         `json:"net_change"`
	ActiveHouseSize int             `json:"active_house_size"`
	InsuranceCost   float64         `json:"insurance_cost"`
	WeeklyBalance   []WeeklyBalance `json:"weekly_balance"`
	Transactions    []string        `json:"transactions"`
}

func (s Semester) Record() store.Record {
	weekly := make([]interface{}, 0, len(s.WeeklyBalance))
	for _, wb := range s.WeeklyBalance {
		weekly = append(weekly, map[string]interface{}{"date": wb.Date, "value": wb.Value})
	}
	txns := make([]interface{}, 0, len(s.Transactions))
	for _, id := range s.Transactions {
		txns = append(txns, id)
	}
	return store.Record{
		"name":              s.Name,
		"date":              s.Date,
		"starting_capital":  s.StartingCapital,
		"current_capital":   s.CurrentCapital,
		"net_change":        s.NetChange,
		"active_house_size": s.ActiveHouseSize,
		"insurance_cost":    s.InsuranceCost,
		"weekly_balance":    weekly,
		"transactions":      txns,
	}
}

func SemesterFromRecord(id string, rec store.Record) (Semester, error) {
	var s Semester
	if err := store.Decode(rec, &s); err != nil {
		return Semester{}, err
	}
	s.ID = id
	if s.WeeklyBalance == nil {
		s.WeeklyBalance = []WeeklyBalance{}
	}
	if s.Transactions == nil {
		s.Transactions = []string{}
	}
	return s, nil
}
