// Command finflow-seed populates the store with random sample transactions
// for local development and demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"finflow/internal/backend"
	"finflow/internal/cli"
	"finflow/internal/core"
	"finflow/internal/ledger"
)

var descriptions = map[string][]string{
	"salary":        {"monthly salary", "payroll"},
	"freelance":     {"contract work", "consulting invoice"},
	"investment":    {"dividends", "interest"},
	"food":          {"groceries", "lunch", "dinner out", "coffee"},
	"transport":     {"fuel", "bus ticket", "train", "parking"},
	"utilities":     {"electricity", "water bill", "internet"},
	"entertainment": {"cinema", "concert", "streaming subscription"},
	"health":        {"pharmacy", "dentist", "gym"},
	"shopping":      {"clothes", "electronics", "household"},
	"other":         {"misc", ""},
}

func main() {
	count := flag.Int("n", 120, "number of transactions to generate")
	months := flag.Int("months", 6, "spread transactions over the last N months")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	be, err := backend.New(logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}
	defer func() {
		if be.Cleanup != nil {
			_ = be.Cleanup()
		}
	}()

	rng := rand.New(rand.NewSource(*seed))
	ctx := context.Background()
	now := time.Now().UTC()
	windowDays := *months * 30
	if windowDays < 1 {
		windowDays = 1
	}

	created := 0
	for i := 0; i < *count; i++ {
		tx := randomTransaction(rng, now, windowDays)
		if _, err := be.Store.AddTransaction(ctx, ledger.DefaultUserID, tx); err != nil {
			logger.Error("Failed to seed transaction", "error", err, "category", tx.Category)
			continue
		}
		created++
	}

	logger.Info("Seeding complete", "created", created, "requested", *count, "backend", cfg.DataBackend)
}

func randomTransaction(rng *rand.Rand, now time.Time, windowDays int) core.Transaction {
	// Roughly one income entry for every five expenses, like a real ledger.
	kind := core.Expense
	if rng.Intn(6) == 0 {
		kind = core.Income
	}

	cats := core.DefaultCategories(kind)
	category := cats[rng.Intn(len(cats))]

	var cents int64
	if kind == core.Income {
		cents = 50000 + rng.Int63n(450000) // 500.00 to 4999.99
	} else {
		cents = 100 + rng.Int63n(29900) // 1.00 to 299.99
	}
	amount := core.Money{Decimal: decimal.New(cents, -2)}

	day := now.AddDate(0, 0, -rng.Intn(windowDays))
	date := core.NewDate(day.Year(), int(day.Month()), day.Day())

	opts := descriptions[category]
	desc := ""
	if len(opts) > 0 {
		desc = opts[rng.Intn(len(opts))]
	}
	if desc != "" && rng.Intn(4) == 0 {
		desc = fmt.Sprintf("%s #%d", desc, rng.Intn(100))
	}

	return core.Transaction{
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: desc,
		Date:        date,
	}
}
