package core

// MonthlySummary holds the per-variant totals for one calendar month.
// Balance is always Income minus Expense.
type MonthlySummary struct {
	Year    int
	Month   int // 1-12
	Income  Money
	Expense Money
	Balance Money
}
