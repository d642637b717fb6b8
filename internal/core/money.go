// Package core holds the domain model of the ledger: transactions, money,
// dates, and the validation rules enforced before anything is persisted.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a positive currency amount with two decimal places. Arithmetic
// goes through decimal to keep summaries exact; the float form exists only
// for the REAL column at the storage boundary.
type Money struct {
	decimal.Decimal
}

// ParseMoney converts a user-supplied amount string to Money. It accepts
// both dot (12.34) and comma (12,34) decimal separators and rounds half-up
// to two decimal places. Zero, negative, and malformed values are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	m := Money{d.Round(2)}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MoneyFromFloat converts a stored REAL value back to Money, rounding away
// accumulated float noise.
func MoneyFromFloat(f float64) Money {
	return Money{decimal.NewFromFloat(f).Round(2)}
}

func (m Money) Validate() error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Float returns the amount as float64 for the REAL amount column.
func (m Money) Float() float64 {
	f, _ := m.Float64()
	return f
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.StringFixed(2)
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// Sub returns the difference m - o. The result may be negative (balances).
func (m Money) Sub(o Money) Money {
	return Money{m.Decimal.Sub(o.Decimal)}
}
