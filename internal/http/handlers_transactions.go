package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"finflow/internal/core"
	"finflow/internal/export"
	"finflow/internal/ledger"
)

// handleTransactions dispatches /transactions: GET lists the filtered
// history, POST records a new ledger entry.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleNewTransactionForm renders the entry form with the static category
// sets for both kinds, available before any transaction exists.
func (s *Server) handleNewTransactionForm(w http.ResponseWriter, r *http.Request) {
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

	incomeCats, err := s.categories.Categories(r.Context(), core.Income)
	if err != nil {
		slog.ErrorContext(r.Context(), "Income categories error", "error", err)
	}
	expenseCats, err := s.categories.Categories(r.Context(), core.Expense)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense categories error", "error", err)
	}

	data := struct {
		Today             string
		IncomeCategories  []string
		ExpenseCategories []string
	}{
		Today:             time.Now().Format("2006-01-02"),
		IncomeCategories:  incomeCats,
		ExpenseCategories: expenseCats,
	}

	if err := s.templates.ExecuteTemplate(w, "transaction_form.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Form template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	kind, err := core.ParseKind(r.Form.Get("kind"))
	if err != nil {
		writeValidationError(w, "Unknown transaction kind")
		return
	}

	amount, err := core.ParseMoney(r.Form.Get("amount"))
	if err != nil {
		writeValidationError(w, "Amount must be a positive number")
		return
	}

	dateStr := sanitizeInput(r.Form.Get("date"))
	date := core.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	if dateStr != "" {
		if date, err = core.ParseDate(dateStr); err != nil {
			writeValidationError(w, "Date must be YYYY-MM-DD")
			return
		}
	}

	tx := core.Transaction{
		Kind:        kind,
		Amount:      amount,
		Category:    sanitizeInput(r.Form.Get("category")),
		Description: sanitizeInput(r.Form.Get("description")),
		Date:        date,
	}

	id, err := s.writer.AddTransaction(r.Context(), ledger.DefaultUserID, tx)
	if err != nil {
		if core.IsValidation(err) {
			writeValidationError(w, "Invalid transaction: "+err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Add transaction error", "error", err,
			"kind", tx.Kind, "category", tx.Category)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to save the transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", fmt.Sprintf(`{"transaction:created": {"id": %d}}`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Recorded ` + template.HTMLEscapeString(string(tx.Kind)) +
		` #` + fmt.Sprint(id) + `: $` + template.HTMLEscapeString(tx.Amount.String()) +
		` (` + template.HTMLEscapeString(tx.Category) + `)</div>`))
}

func writeValidationError(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
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

	txs, err := s.lister.ListTransactions(r.Context(), ledger.DefaultUserID, f)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	data := struct {
		Filter     filterEcho
		Categories []string
		Count      int
		Rows       []transactionRow
	}{
		Filter:     echoFilter(f),
		Categories: s.allCategories(r),
		Count:      len(txs),
		Rows:       toRows(txs),
	}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Transactions template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleExportCSV streams the currently filtered view as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	f, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date filter", http.StatusUnprocessableEntity)
		return
	}

	txs, err := s.lister.ListTransactions(r.Context(), ledger.DefaultUserID, f)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	filename := "transactions.csv"
	if f.Range != nil {
		filename = fmt.Sprintf("transactions_%s_%s.csv", f.Range.From.ISO(), f.Range.To.ISO())
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteCSV(w, txs); err != nil {
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
	}
}

// allCategories merges both kinds' sets for the history filter dropdown.
func (s *Server) allCategories(r *http.Request) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, kind := range []core.Kind{core.Income, core.Expense} {
		cats, err := s.categories.Categories(r.Context(), kind)
		if err != nil {
			slog.ErrorContext(r.Context(), "Categories error", "error", err, "kind", kind)
			continue
		}
		for _, c := range cats {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
