package memory

import (
	"context"
	"errors"
	"testing"

	"finflow/internal/core"
)

func mustTransaction(t *testing.T, kind core.Kind, amount, category, iso string) core.Transaction {
	t.Helper()
	m, err := core.ParseMoney(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	d, err := core.ParseDate(iso)
	if err != nil {
		t.Fatalf("parse date %q: %v", iso, err)
	}
	return core.Transaction{Kind: kind, Amount: m, Category: category, Date: d}
}

func TestRoundTripScenario(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.AddTransaction(ctx, 1, mustTransaction(t, core.Income, "2500.00", "salary", "2025-01-01")); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, err := s.AddTransaction(ctx, 1, mustTransaction(t, core.Expense, "45.50", "food", "2025-01-02")); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	sum, err := s.Summary(ctx, 1, nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Income.String() != "2500.00" || sum.Expense.String() != "45.50" ||
		sum.Balance.String() != "2454.50" || sum.Count != 2 {
		t.Fatalf("summary mismatch: %+v", sum)
	}

	breakdown, err := s.CategoryBreakdown(ctx, 1, core.Expense, nil)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(breakdown) != 1 || breakdown[0].Category != "food" || breakdown[0].Amount.String() != "45.50" {
		t.Fatalf("breakdown mismatch: %+v", breakdown)
	}

	trend, err := s.MonthlyTrend(ctx, 1, nil)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(trend) != 1 || trend[0].Month != "2025-01" ||
		trend[0].Income.String() != "2500.00" || trend[0].Expense.String() != "45.50" {
		t.Fatalf("trend mismatch: %+v", trend)
	}
}

func TestRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	s := New()

	bad := mustTransaction(t, core.Expense, "1.00", "food", "2025-01-02")
	bad.Amount = core.Money{}
	if _, err := s.AddTransaction(ctx, 1, bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	wrongSet := mustTransaction(t, core.Income, "10.00", "food", "2025-01-02")
	if _, err := s.AddTransaction(ctx, 1, wrongSet); !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	txs, err := s.ListTransactions(ctx, 1, core.Filter{})
	if err != nil || len(txs) != 0 {
		t.Fatalf("rejected inserts must not persist: %d rows, err=%v", len(txs), err)
	}
}

func TestListOrderingAndFilters(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, tx := range []core.Transaction{
		mustTransaction(t, core.Expense, "10.00", "food", "2025-01-05"),
		mustTransaction(t, core.Expense, "20.00", "transport", "2025-01-10"),
		mustTransaction(t, core.Expense, "30.00", "food", "2025-01-10"),
		mustTransaction(t, core.Income, "40.00", "salary", "2025-02-01"),
	} {
		if _, err := s.AddTransaction(ctx, 1, tx); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	all, err := s.ListTransactions(ctx, 1, core.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 || all[0].Date.ISO() != "2025-02-01" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	// Same date: higher ID first.
	if all[1].ID != 3 || all[2].ID != 2 {
		t.Fatalf("tie-break by descending id failed: %+v", all)
	}

	jan := &core.DateRange{From: core.NewDate(2025, 1, 1), To: core.NewDate(2025, 1, 31)}
	filtered, err := s.ListTransactions(ctx, 1, core.Filter{Range: jan, Category: "food"})
	if err != nil || len(filtered) != 2 {
		t.Fatalf("expected 2 january food rows, got %d (err=%v)", len(filtered), err)
	}

	none, err := s.ListTransactions(ctx, 1, core.Filter{Category: "utilities"})
	if err != nil || len(none) != 0 {
		t.Fatalf("no match must be empty success, got %d rows, err=%v", len(none), err)
	}
}

func TestBreakdownConsistentWithSummary(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, tx := range []core.Transaction{
		mustTransaction(t, core.Expense, "12.25", "food", "2025-03-01"),
		mustTransaction(t, core.Expense, "7.75", "food", "2025-03-02"),
		mustTransaction(t, core.Expense, "30.00", "transport", "2025-03-03"),
	} {
		if _, err := s.AddTransaction(ctx, 1, tx); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	breakdown, err := s.CategoryBreakdown(ctx, 1, core.Expense, nil)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	var total core.Money
	for _, ca := range breakdown {
		if !ca.Amount.IsPositive() {
			t.Fatalf("zero category leaked into breakdown: %+v", ca)
		}
		total = total.Add(ca.Amount)
	}
	sum, err := s.Summary(ctx, 1, nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if total.String() != sum.Expense.String() {
		t.Fatalf("breakdown total %s != summary expense %s", total, sum.Expense)
	}
}

func TestLedgersAreScopedByUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.AddTransaction(ctx, 1, mustTransaction(t, core.Expense, "10.00", "food", "2025-01-05")); err != nil {
		t.Fatalf("add user 1: %v", err)
	}
	if _, err := s.AddTransaction(ctx, 2, mustTransaction(t, core.Income, "99.00", "salary", "2025-01-06")); err != nil {
		t.Fatalf("add user 2: %v", err)
	}

	mine, err := s.ListTransactions(ctx, 1, core.Filter{})
	if err != nil {
		t.Fatalf("list user 1: %v", err)
	}
	if len(mine) != 1 || mine[0].Category != "food" {
		t.Fatalf("user 1 sees %+v, want only its own entry", mine)
	}

	theirs, err := s.ListTransactions(ctx, 2, core.Filter{})
	if err != nil {
		t.Fatalf("list user 2: %v", err)
	}
	if len(theirs) != 1 || theirs[0].Category != "salary" {
		t.Fatalf("user 2 sees %+v, want only its own entry", theirs)
	}

	sum, err := s.Summary(ctx, 2, nil)
	if err != nil {
		t.Fatalf("summary user 2: %v", err)
	}
	if sum.Expense.IsPositive() || sum.Income.String() != "99.00" {
		t.Fatalf("user 2 summary leaked other ledgers: %+v", sum)
	}

	empty, err := s.ListTransactions(ctx, 3, core.Filter{})
	if err != nil {
		t.Fatalf("list user 3: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("unknown user should see an empty ledger, got %+v", empty)
	}
}
