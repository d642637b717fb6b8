// Package ledger defines the ports the presentation layer consumes. The
// SQLite repository and the in-memory store both satisfy them.
package ledger

import (
	"context"

	"finflow/internal/core"
)

type (
	// TransactionWriter appends one validated transaction to the ledger
	// and returns the store-assigned identifier.
	TransactionWriter interface {
		AddTransaction(ctx context.Context, userID int64, tx core.Transaction) (int64, error)
	}

	// TransactionLister returns transactions most-recent date first, ties
	// broken by descending identifier. An empty result is not an error.
	TransactionLister interface {
		ListTransactions(ctx context.Context, userID int64, f core.Filter) ([]core.Transaction, error)
	}

	// SummaryReader recomputes the aggregate totals over the optional
	// date range on every call.
	SummaryReader interface {
		Summary(ctx context.Context, userID int64, r *core.DateRange) (core.Summary, error)
	}

	// AnalyticsReader serves the chart-backing aggregations.
	AnalyticsReader interface {
		CategoryBreakdown(ctx context.Context, userID int64, kind core.Kind, r *core.DateRange) ([]core.CategoryAmount, error)
		MonthlyTrend(ctx context.Context, userID int64, r *core.DateRange) ([]core.MonthlyPoint, error)
	}

	// CategoryReader returns the fixed enumerated category set for a kind.
	// The set is static configuration, not derived from history.
	CategoryReader interface {
		Categories(ctx context.Context, kind core.Kind) ([]string, error)
	}

	// Store is the full query layer.
	Store interface {
		TransactionWriter
		TransactionLister
		SummaryReader
		AnalyticsReader
		CategoryReader
	}
)

// DefaultUserID identifies the single implicit user of the deployment.
// Every operation is userID-parameterized so real multi-user support only
// needs an authentication boundary, not a data-model rework.
const DefaultUserID int64 = 1
