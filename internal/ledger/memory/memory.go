// Package memory implements the ledger ports in process memory. It backs
// the "memory" data backend and the HTTP handler tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"finflow/internal/core"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64][]core.Transaction
}

func New() *Store {
	return &Store{nextID: 1, items: map[int64][]core.Transaction{}}
}

// AddTransaction validates and stores the transaction under userID,
// assigning an identifier in insertion order. Identifiers are global, like
// an autoincrement column, not per user.
func (s *Store) AddTransaction(_ context.Context, userID int64, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	if !slices.Contains(core.DefaultCategories(tx.Kind), tx.Category) {
		return 0, core.ErrUnknownCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = s.nextID
	s.nextID++
	s.items[userID] = append(s.items[userID], tx)
	return tx.ID, nil
}

func (s *Store) ListTransactions(_ context.Context, userID int64, f core.Filter) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Transaction, 0, len(s.items[userID]))
	for _, tx := range s.items[userID] {
		if f.Range != nil && !f.Range.Contains(tx.Date) {
			continue
		}
		if f.Category != "" && tx.Category != f.Category {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Summary(ctx context.Context, userID int64, r *core.DateRange) (core.Summary, error) {
	txs, err := s.ListTransactions(ctx, userID, core.Filter{Range: r})
	if err != nil {
		return core.Summary{}, err
	}
	var sum core.Summary
	for _, tx := range txs {
		switch tx.Kind {
		case core.Income:
			sum.Income = sum.Income.Add(tx.Amount)
		case core.Expense:
			sum.Expense = sum.Expense.Add(tx.Amount)
		}
		sum.Count++
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	return sum, nil
}

func (s *Store) CategoryBreakdown(ctx context.Context, userID int64, kind core.Kind, r *core.DateRange) ([]core.CategoryAmount, error) {
	txs, err := s.ListTransactions(ctx, userID, core.Filter{Range: r})
	if err != nil {
		return nil, err
	}
	byCat := map[string]core.Money{}
	for _, tx := range txs {
		if tx.Kind != kind {
			continue
		}
		byCat[tx.Category] = byCat[tx.Category].Add(tx.Amount)
	}
	out := make([]core.CategoryAmount, 0, len(byCat))
	for cat, amount := range byCat {
		out = append(out, core.CategoryAmount{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount.Decimal) {
			return out[i].Amount.GreaterThan(out[j].Amount.Decimal)
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (s *Store) MonthlyTrend(ctx context.Context, userID int64, r *core.DateRange) ([]core.MonthlyPoint, error) {
	txs, err := s.ListTransactions(ctx, userID, core.Filter{Range: r})
	if err != nil {
		return nil, err
	}
	byMonth := map[string]*core.MonthlyPoint{}
	for _, tx := range txs {
		month := tx.Date.Month()
		p, ok := byMonth[month]
		if !ok {
			p = &core.MonthlyPoint{Month: month}
			byMonth[month] = p
		}
		switch tx.Kind {
		case core.Income:
			p.Income = p.Income.Add(tx.Amount)
		case core.Expense:
			p.Expense = p.Expense.Add(tx.Amount)
		}
	}
	out := make([]core.MonthlyPoint, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Month, out[j].Month) < 0
	})
	return out, nil
}

func (s *Store) Categories(_ context.Context, kind core.Kind) ([]string, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	return slices.Clone(core.DefaultCategories(kind)), nil
}
