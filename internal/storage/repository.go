// Package storage persists the ledger in a single local SQLite file. All
// reads recompute from the row set; writes are single-row inserts, each its
// own atomic unit.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finflow/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// Open creates the backing file if missing, runs the schema bootstrap, and
// returns a ready repository. Opening an already-initialized database is a
// no-op beyond the connection.
func Open(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// SQLite serializes writers; one connection keeps commits ordered.
	db.SetMaxOpenConns(1)

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddTransaction implements ledger.TransactionWriter. The transaction is
// validated and its category checked against the configured set for the
// kind before anything touches the transactions table.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, userID int64, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	var known bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE name = ? AND type = ?)`,
		tx.Category, string(tx.Kind)).Scan(&known)
	if err != nil {
		return 0, fmt.Errorf("check category: %w", err)
	}
	if !known {
		return 0, fmt.Errorf("%w: %s/%s", core.ErrUnknownCategory, tx.Kind, tx.Category)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, type, amount, category, description, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, string(tx.Kind), tx.Amount.Float(), tx.Category, tx.Description, tx.Date.ISO())
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"kind", tx.Kind,
		"amount", tx.Amount.String(),
		"category", tx.Category,
		"date", tx.Date.ISO())

	return id, nil
}

// ListTransactions implements ledger.TransactionLister: most-recent date
// first, ties broken by descending identifier.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID int64, f core.Filter) ([]core.Transaction, error) {
	query := `SELECT id, type, amount, category, COALESCE(description, ''), date, created_at
	          FROM transactions WHERE user_id = ?`
	args := []any{userID}
	query, args = appendRange(query, args, f.Range)
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var (
			tx        core.Transaction
			kind      string
			amount    float64
			date      time.Time
			createdAt string
		)
		if err := rows.Scan(&tx.ID, &kind, &amount, &tx.Category, &tx.Description, &date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Kind = core.Kind(kind)
		tx.Amount = core.MoneyFromFloat(amount)
		// The date column is declared DATE, so the driver hands back a
		// time.Time; renormalize to the calendar-date form.
		tx.Date = core.NewDate(date.Year(), int(date.Month()), date.Day())
		tx.CreatedAt = parseTimestamp(createdAt)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Summary implements ledger.SummaryReader with a single aggregation pass;
// no running totals are maintained anywhere.
func (r *SQLiteRepository) Summary(ctx context.Context, userID int64, dr *core.DateRange) (core.Summary, error) {
	query := `SELECT
	            COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
	            COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0),
	            COUNT(*)
	          FROM transactions WHERE user_id = ?`
	args := []any{userID}
	query, args = appendRange(query, args, dr)

	var income, expense float64
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&income, &expense, &count); err != nil {
		return core.Summary{}, fmt.Errorf("summary: %w", err)
	}

	sum := core.Summary{
		Income:  core.MoneyFromFloat(income),
		Expense: core.MoneyFromFloat(expense),
		Count:   count,
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	return sum, nil
}

// CategoryBreakdown implements ledger.AnalyticsReader. Categories without
// matching rows never appear; ordering is by amount descending for
// proportional displays.
func (r *SQLiteRepository) CategoryBreakdown(ctx context.Context, userID int64, kind core.Kind, dr *core.DateRange) ([]core.CategoryAmount, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	query := `SELECT category, SUM(amount) FROM transactions WHERE user_id = ? AND type = ?`
	args := []any{userID, string(kind)}
	query, args = appendRange(query, args, dr)
	query += ` GROUP BY category ORDER BY SUM(amount) DESC, category ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryAmount
	for rows.Next() {
		var cat string
		var amount float64
		if err := rows.Scan(&cat, &amount); err != nil {
			return nil, fmt.Errorf("scan breakdown row: %w", err)
		}
		out = append(out, core.CategoryAmount{Category: cat, Amount: core.MoneyFromFloat(amount)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate breakdown: %w", err)
	}
	return out, nil
}

// MonthlyTrend implements ledger.AnalyticsReader: one point per calendar
// month with at least one transaction, ascending; gaps are not zero-filled.
func (r *SQLiteRepository) MonthlyTrend(ctx context.Context, userID int64, dr *core.DateRange) ([]core.MonthlyPoint, error) {
	query := `SELECT strftime('%Y-%m', date),
	            COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
	            COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
	          FROM transactions WHERE user_id = ?`
	args := []any{userID}
	query, args = appendRange(query, args, dr)
	query += ` GROUP BY strftime('%Y-%m', date) ORDER BY strftime('%Y-%m', date) ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	defer rows.Close()

	var out []core.MonthlyPoint
	for rows.Next() {
		var month string
		var income, expense float64
		if err := rows.Scan(&month, &income, &expense); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		out = append(out, core.MonthlyPoint{
			Month:   month,
			Income:  core.MoneyFromFloat(income),
			Expense: core.MoneyFromFloat(expense),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trend: %w", err)
	}
	return out, nil
}

// Categories implements ledger.CategoryReader from the static configuration
// table, in seed order.
func (r *SQLiteRepository) Categories(ctx context.Context, kind core.Kind) ([]string, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM categories WHERE type = ? ORDER BY id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// appendRange adds the inclusive business-date bounds to a WHERE clause.
func appendRange(query string, args []any, dr *core.DateRange) (string, []any) {
	if dr == nil {
		return query, args
	}
	query += ` AND date >= ? AND date <= ?`
	return query, append(args, dr.From.ISO(), dr.To.ISO())
}

// parseTimestamp decodes SQLite's CURRENT_TIMESTAMP text form. A zero time
// is returned for anything unexpected; created_at is audit/display only.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
