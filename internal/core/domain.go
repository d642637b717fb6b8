package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind is the income/expense classification of a transaction.
	Kind string

	// Date is a calendar date (business date), distinct from the
	// record-creation timestamp.
	Date struct {
		time.Time
	}

	// DateRange is an inclusive [From, To] filter on transaction date.
	DateRange struct {
		From Date
		To   Date
	}

	// Transaction is one ledger entry. ID and CreatedAt are assigned by
	// the store; everything else is caller-supplied.
	Transaction struct {
		ID          int64
		Kind        Kind
		Amount      Money
		Category    string
		Description string
		Date        Date
		CreatedAt   time.Time
	}

	// Filter narrows a transaction listing. Zero values mean "no filter".
	Filter struct {
		Range    *DateRange
		Category string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrEmptyCategory   = errors.New("empty category")
	ErrUnknownCategory = errors.New("category not in the set for this kind")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidRange    = errors.New("start date after end date")
)

// IsValidation reports whether err belongs to the caller-input error class,
// as opposed to a store-access failure.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrInvalidAmount, ErrInvalidKind, ErrEmptyCategory,
		ErrUnknownCategory, ErrInvalidDate, ErrInvalidRange,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// ParseKind normalizes and validates a user-supplied kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ISO renders the date as YYYY-MM-DD, the persisted form.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Month renders the calendar month as YYYY-MM.
func (d Date) Month() string {
	return d.Format("2006-01")
}

func (r DateRange) Validate() error {
	if err := r.From.Validate(); err != nil {
		return err
	}
	if err := r.To.Validate(); err != nil {
		return err
	}
	if r.From.After(r.To.Time) {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether d falls inside the inclusive range.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.From.Time) && !d.After(r.To.Time)
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// DefaultCategories is the fixed enumerated category set per kind. It seeds
// the categories table and backs the entry form before any transaction
// exists; membership is enforced at insert time.
func DefaultCategories(k Kind) []string {
	switch k {
	case Income:
		return []string{"salary", "freelance", "investment", "other"}
	case Expense:
		return []string{"food", "transport", "utilities", "entertainment", "health", "shopping", "other"}
	default:
		return nil
	}
}
