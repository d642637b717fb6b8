// Package export renders a filtered transaction view as CSV: one row per
// transaction with date, type, category, amount, description. Field quoting
// follows encoding/csv, which covers embedded commas and quotes.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"finflow/internal/core"
)

var header = []string{"date", "type", "category", "amount", "description"}

// WriteCSV streams the transactions to w in their given order.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.ISO(),
			string(tx.Kind),
			tx.Category,
			tx.Amount.String(),
			tx.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", tx.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
