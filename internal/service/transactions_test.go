package service

import (
	"testing"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/models"
)

func TestTransactionCreateUpdatesAggregates(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Food")
	sem := e.mustSemester(t, "Fall", 1000)

	if sem.CurrentCapital != 1000.0 {
		t.Fatalf("current_capital = %v, want 1000.0", sem.CurrentCapital)
	}

	txn := e.mustTransaction(t, sem.ID, "Food", -25.5)

	got := e.semester(t, sem.ID)
	if got.CurrentCapital != 974.5 {
		t.Errorf("current_capital = %v, want 974.5", got.CurrentCapital)
	}
	if len(got.Transactions) != 1 || got.Transactions[0] != txn.ID {
		t.Errorf("transactions = %v, want [%s]", got.Transactions, txn.ID)
	}

	if _, err := e.txns.Delete(e.ctx, txn.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got = e.semester(t, sem.ID)
	if got.CurrentCapital != 1000.0 {
		t.Errorf("current_capital after delete = %v, want 1000.0", got.CurrentCapital)
	}
	if len(got.Transactions) != 0 {
		t.Errorf("transactions after delete = %v, want empty", got.Transactions)
	}
}

// current_capital must always equal starting_capital plus the sum of live
// transaction amounts, however creates and deletes interleave.
func TestCapitalInvariant(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Misc")
	sem := e.mustSemester(t, "Fall", 500)

	amounts := []float64{-25.5, 100, -0.25, 42, -300}
	var ids []string
	for _, a := range amounts {
		ids = append(ids, e.mustTransaction(t, sem.ID, "Misc", a).ID)
	}
	if _, err := e.txns.Delete(e.ctx, ids[1]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := e.txns.Delete(e.ctx, ids[4]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	e.mustTransaction(t, sem.ID, "Misc", 7.75)

	live, err := e.txns.All(e.ctx, sem.ID)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	sum := 0.0
	for _, txn := range live {
		sum += txn.Amount
	}

	got := e.semester(t, sem.ID)
	if got.CurrentCapital != 500+sum {
		t.Errorf("current_capital = %v, want %v", got.CurrentCapital, 500+sum)
	}
}

func TestTransactionOrderPreserved(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Misc")
	sem := e.mustSemester(t, "Fall", 0)

	var ids []string
	for i := 0; i < 4; i++ {
		ids = append(ids, e.mustTransaction(t, sem.ID, "Misc", 1).ID)
	}
	if _, err := e.txns.Delete(e.ctx, ids[1]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got := e.semester(t, sem.ID)
	want := []string{ids[0], ids[2], ids[3]}
	if len(got.Transactions) != len(want) {
		t.Fatalf("transactions = %v, want %v", got.Transactions, want)
	}
	for i := range want {
		if got.Transactions[i] != want[i] {
			t.Errorf("transactions[%d] = %s, want %s", i, got.Transactions[i], want[i])
		}
	}
}

// Walking the cursor must yield all transactions exactly once, in creation
// order, and finish with a nil cursor.
func TestPaginationCompleteness(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Misc")
	sem := e.mustSemester(t, "Fall", 0)

	var created []string
	for i := 0; i < 7; i++ {
		created = append(created, e.mustTransaction(t, sem.ID, "Misc", 1).ID)
	}

	var seen []string
	cursor := ""
	for pages := 0; ; pages++ {
		if pages > 10 {
			t.Fatal("pagination did not terminate")
		}
		page, err := e.txns.List(e.ctx, sem.ID, 3, cursor)
		if err != nil {
			t.Fatalf("List(cursor=%q) error = %v", cursor, err)
		}
		for _, txn := range page.Transactions {
			seen = append(seen, txn.ID)
		}
		if page.NextStartAfter == nil {
			break
		}
		cursor = *page.NextStartAfter
	}

	if len(seen) != len(created) {
		t.Fatalf("saw %d transactions, want %d", len(seen), len(created))
	}
	for i := range created {
		if seen[i] != created[i] {
			t.Errorf("seen[%d] = %s, want %s", i, seen[i], created[i])
		}
	}
}

func TestListCursorSemantics(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Misc")
	sem := e.mustSemester(t, "Fall", 0)

	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, e.mustTransaction(t, sem.ID, "Misc", 1).ID)
	}

	// exactly limit returned: cursor set even when nothing follows
	page, err := e.txns.List(e.ctx, sem.ID, 3, ids[2])
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Transactions) != 3 {
		t.Fatalf("page size = %d, want 3", len(page.Transactions))
	}
	if page.NextStartAfter == nil || *page.NextStartAfter != ids[5] {
		t.Errorf("next_start_after = %v, want %s", page.NextStartAfter, ids[5])
	}

	// trailing page comes back empty with a nil cursor
	page, err = e.txns.List(e.ctx, sem.ID, 3, ids[5])
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Transactions) != 0 || page.NextStartAfter != nil {
		t.Errorf("trailing page = %+v, want empty", page)
	}

	// unknown cursor is a validation error
	_, err = e.txns.List(e.ctx, sem.ID, 3, "bogus")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("List(bogus cursor) error = %v, want validation", err)
	}
}

func TestListSkipsMissingRecords(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Misc")
	sem := e.mustSemester(t, "Fall", 0)

	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, e.mustTransaction(t, sem.ID, "Misc", 1).ID)
	}
	// drop the middle record out from under the semester's id list
	if err := e.st.Delete(e.ctx, models.TransactionsCollection, ids[1]); err != nil {
		t.Fatalf("store delete: %v", err)
	}

	page, err := e.txns.List(e.ctx, sem.ID, 10, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Transactions) != 2 {
		t.Fatalf("page size = %d, want 2 (missing id skipped)", len(page.Transactions))
	}
	if page.Transactions[0].ID != ids[0] || page.Transactions[1].ID != ids[2] {
		t.Errorf("page ids = %v", page.Transactions)
	}
}

func TestListSemesterNotFound(t *testing.T) {
	e := newEnv()
	_, err := e.txns.List(e.ctx, "missing", 10, "")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("List(missing semester) error = %v, want not found", err)
	}
}

func TestTransactionCreateValidation(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Food")
	sem := e.mustSemester(t, "Fall", 1000)

	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"payer":       "Alice",
			"time":        "2025-01-15T12:00:00Z",
			"message":     "groceries",
			"amount":      -25.5,
			"category":    "Food",
			"semester_id": sem.ID,
		}
	}

	// first missing field is reported, in declaration order
	body := valid()
	delete(body, "payer")
	delete(body, "amount")
	_, err := e.txns.Create(e.ctx, body)
	if err == nil || err.Error() != "'payer' is required." {
		t.Errorf("missing fields error = %v, want 'payer' is required.", err)
	}

	body = valid()
	body["category"] = "Ghost"
	_, err = e.txns.Create(e.ctx, body)
	if apperr.KindOf(err) != apperr.KindValidation || err.Error() != "Category 'Ghost' does not exist." {
		t.Errorf("unknown category error = %v", err)
	}

	// date without time-of-day must be rejected
	body = valid()
	body["time"] = "2025-01-15"
	_, err = e.txns.Create(e.ctx, body)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("bad time error = %v, want validation", err)
	}

	body = valid()
	body["semester_id"] = "missing"
	_, err = e.txns.Create(e.ctx, body)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("missing semester error = %v, want not found", err)
	}
}

func TestTransactionUpdate(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Food")
	e.mustCategory(t, "Rent")
	sem := e.mustSemester(t, "Fall", 1000)
	txn := e.mustTransaction(t, sem.ID, "Food", -25.5)

	if err := e.txns.Update(e.ctx, txn.ID, map[string]interface{}{"category": "Ghost"}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("update to unknown category error = %v, want validation", err)
	}
	if err := e.txns.Update(e.ctx, "missing", map[string]interface{}{"message": "x"}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("update missing transaction error = %v, want not found", err)
	}

	// amount overwrite is accepted and deliberately does not touch the
	// semester aggregate
	if err := e.txns.Update(e.ctx, txn.ID, map[string]interface{}{"category": "Rent", "amount": -999.0}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	page, _ := e.txns.List(e.ctx, sem.ID, 10, "")
	if page.Transactions[0].Category != "Rent" || page.Transactions[0].Amount != -999.0 {
		t.Errorf("updated transaction = %+v", page.Transactions[0])
	}
	if got := e.semester(t, sem.ID).CurrentCapital; got != 974.5 {
		t.Errorf("current_capital = %v, want 974.5 (untouched by PATCH)", got)
	}
}

func TestTransactionDeleteWhenSemesterGone(t *testing.T) {
	e := newEnv()
	e.mustCategory(t, "Food")
	sem := e.mustSemester(t, "Fall", 1000)
	txn := e.mustTransaction(t, sem.ID, "Food", -25.5)

	// remove the semester record out-of-band, leaving the transaction
	if err := e.st.Delete(e.ctx, models.SemestersCollection, sem.ID); err != nil {
		t.Fatalf("store delete: %v", err)
	}

	semID, err := e.txns.Delete(e.ctx, txn.ID)
	if err != nil {
		t.Fatalf("Delete() with gone semester error = %v, want silent skip", err)
	}
	if semID != sem.ID {
		t.Errorf("returned semester id = %s, want %s", semID, sem.ID)
	}
}

func TestTransactionDeleteNotFound(t *testing.T) {
	e := newEnv()
	if _, err := e.txns.Delete(e.ctx, "missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("Delete(missing) error = %v, want not found", err)
	}
}
