package service

import (
	"context"
	"sort"
)

// CategoryTotal accumulates a category's income, expense and net over a
// semester's live transactions.
type CategoryTotal struct {
	Category string  `json:"category"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Net      float64 `json:"net"`
}

// SemesterStats is the aggregated view of one semester's ledger.
type SemesterStats struct {
	SemesterID   string          `json:"semester_id"`
	TotalIncome  float64         `json:"total_income"`
	TotalExpense float64         `json:"total_expense"`
	Net          float64         `json:"net"`
	ByCategory   []CategoryTotal `json:"by_category"`
}

// Stats sums a semester's live transactions by category. Positive amounts
// count as income, negative as expense. Computed by scan on demand; it never
// reads or writes the semester's denormalized aggregates.
func (s *Transactions) Stats(ctx context.Context, semesterID string) (*SemesterStats, error) {
	txns, err := s.All(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	stats := &SemesterStats{SemesterID: semesterID, ByCategory: []CategoryTotal{}}
	byCat := make(map[string]*CategoryTotal)
	for _, txn := range txns {
		ct, ok := byCat[txn.Category]
		if !ok {
			ct = &CategoryTotal{Category: txn.Category}
			byCat[txn.Category] = ct
		}
		if txn.Amount >= 0 {
			ct.Income += txn.Amount
			stats.TotalIncome += txn.Amount
		} else {
			ct.Expense += -txn.Amount
			stats.TotalExpense += -txn.Amount
		}
	}

	for _, ct := range byCat {
		ct.Net = ct.Income - ct.Expense
		stats.ByCategory = append(stats.ByCategory, *ct)
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})
	stats.Net = stats.TotalIncome - stats.TotalExpense
	return stats, nil
}
