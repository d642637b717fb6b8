package http

import (
	"log/slog"
	"net/http"

	"finflow/internal/core"
	"finflow/internal/ledger"
)

// handleAnalytics renders the category breakdown for the selected kind and
// the monthly income-vs-expense trend, over the optional date range.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
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

	kind := core.Expense
	if v := sanitizeInput(r.URL.Query().Get("kind")); v != "" {
		if kind, err = core.ParseKind(v); err != nil {
			http.Error(w, "unknown kind", http.StatusUnprocessableEntity)
			return
		}
	}

	breakdown, err := s.analytics.CategoryBreakdown(r.Context(), ledger.DefaultUserID, kind, f.Range)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category breakdown error", "error", err, "kind", kind)
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	trend, err := s.analytics.MonthlyTrend(r.Context(), ledger.DefaultUserID, f.Range)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly trend error", "error", err)
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	// Scale bars against the largest category for proportional display.
	var maxAmount core.Money
	for _, ca := range breakdown {
		if ca.Amount.GreaterThan(maxAmount.Decimal) {
			maxAmount = ca.Amount
		}
	}

	type barRow struct {
		Category string
		Amount   string
		Width    int
	}
	type trendRow struct {
		Month   string
		Income  string
		Expense string
	}

	data := struct {
		Filter filterEcho
		Kind   string
		Bars   []barRow
		Trend  []trendRow
	}{
		Filter: echoFilter(f),
		Kind:   string(kind),
	}
	for _, ca := range breakdown {
		width := 0
		if maxAmount.IsPositive() {
			width = int(ca.Amount.Div(maxAmount.Decimal).Mul(hundred).Round(0).IntPart())
			if width > 0 && width < 2 { // keep tiny slices visible
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Bars = append(data.Bars, barRow{
			Category: ca.Category,
			Amount:   "$" + ca.Amount.String(),
			Width:    width,
		})
	}
	for _, p := range trend {
		data.Trend = append(data.Trend, trendRow{
			Month:   p.Month,
			Income:  "$" + p.Income.String(),
			Expense: "$" + p.Expense.String(),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "analytics.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Analytics template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
