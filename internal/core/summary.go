package core

// Summary aggregates the ledger over an optional date range. Balance is
// always Income minus Expense; nothing is cached, every call recomputes
// from the matching rows.
type Summary struct {
	Income  Money
	Expense Money
	Balance Money
	Count   int
}

// CategoryAmount is one slice of a per-category breakdown. Categories with
// no matching transactions are omitted, never reported as zero.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// MonthlyPoint is one month of the income-vs-expense trend. Month is the
// calendar month in YYYY-MM form; only months with at least one transaction
// appear.
type MonthlyPoint struct {
	Month   string
	Income  Money
	Expense Money
}
