package http

import (
	"log/slog"
	"net/http"

	"finflow/internal/ledger"
)

// handleDashboard renders the overview page: summary cards for the optional
// date range plus the most recent transactions.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	f, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date filter", http.StatusUnprocessableEntity)
		return
	}

	sum, err := s.summaries.Summary(r.Context(), ledger.DefaultUserID, f.Range)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err)
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	txs, err := s.lister.ListTransactions(r.Context(), ledger.DefaultUserID, f)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}
	const recentLimit = 10
	if len(txs) > recentLimit {
		txs = txs[:recentLimit]
	}

	data := struct {
		Filter  filterEcho
		Income  string
		Expense string
		Balance string
		Count   int
		Recent  []transactionRow
	}{
		Filter:  echoFilter(f),
		Income:  "$" + sum.Income.String(),
		Expense: "$" + sum.Expense.String(),
		Balance: "$" + sum.Balance.String(),
		Count:   sum.Count,
		Recent:  toRows(txs),
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
