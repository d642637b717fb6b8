package http

import (
	"net/url"

	"github.com/shopspring/decimal"

	"finflow/internal/core"
)

var hundred = decimal.NewFromInt(100)

// parseFilter extracts the optional date range and category from query
// parameters. start and end must be supplied together; a half-open pair is
// a caller error.
func parseFilter(q url.Values) (core.Filter, error) {
	var f core.Filter

	start := sanitizeInput(q.Get("start"))
	end := sanitizeInput(q.Get("end"))
	switch {
	case start == "" && end == "":
	case start == "" || end == "":
		return f, core.ErrInvalidRange
	default:
		from, err := core.ParseDate(start)
		if err != nil {
			return f, err
		}
		to, err := core.ParseDate(end)
		if err != nil {
			return f, err
		}
		r := core.DateRange{From: from, To: to}
		if err := r.Validate(); err != nil {
			return f, err
		}
		f.Range = &r
	}

	f.Category = sanitizeInput(q.Get("category"))
	return f, nil
}

// transactionRow is the template view of one ledger entry.
type transactionRow struct {
	ID          int64
	Date        string
	Kind        string
	Category    string
	Amount      string
	Description string
}

func toRows(txs []core.Transaction) []transactionRow {
	rows := make([]transactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, transactionRow{
			ID:          tx.ID,
			Date:        tx.Date.ISO(),
			Kind:        string(tx.Kind),
			Category:    tx.Category,
			Amount:      "$" + tx.Amount.String(),
			Description: tx.Description,
		})
	}
	return rows
}

// filterEcho carries the active filter back into form fields.
type filterEcho struct {
	Start    string
	End      string
	Category string
}

func echoFilter(f core.Filter) filterEcho {
	e := filterEcho{Category: f.Category}
	if f.Range != nil {
		e.Start = f.Range.From.ISO()
		e.End = f.Range.To.ISO()
	}
	return e
}
