package models

import "github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"

// TimeLayout is the required format of a transaction timestamp, an ISO-8601
// UTC instant.
const TimeLayout = "2006-01-02T15:04:05Z"

// Transaction is a single ledger entry. It is owned by its semester for
// lifecycle purposes but stored in its own collection; the owning semester
// keeps the append-ordered list of transaction ids and the running capital.
type Transaction struct {
	ID         string  `json:"id"`
	Payer      string  `json:"payer"`
	Time       string  `json:"time"`
	Message    string  `json:"message"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	SemesterID string  `json:"semester_id"`
}

func (t Transaction) Record() store.Record {
	return store.Record{
		"payer":       t.Payer,
		"time":        t.Time,
		"message":     t.Message,
		"amount":      t.Amount,
		"category":    t.Category,
		"semester_id": t.SemesterID,
	}
}

func TransactionFromRecord(id string, rec store.Record) (Transaction, error) {
	var t Transaction
	if err := store.Decode(rec, &t); err != nil {
		return Transaction{}, err
	}
	t.ID = id
	return t, nil
}

// TransactionPage is one page of a semester's ledger in creation order.
// NextStartAfter is the cursor for the following page, nil when this page
// may be the last.
type TransactionPage struct {
	Transactions   []Transaction `json:"transactions"`
	NextStartAfter *string       `json:"next_start_after"`
}
