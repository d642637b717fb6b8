// Package backend assembles a ledger.Store from configuration: the SQLite
// repository (with the optional event publisher) or the in-memory store.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finflow/internal/amqp"
	"finflow/internal/config"
	"finflow/internal/core"
	"finflow/internal/ledger"
	"finflow/internal/ledger/memory"
	"finflow/internal/service"
	"finflow/internal/storage"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result bundles the assembled store with its cleanup function.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
}

// storeWithService routes writes through the transaction service while the
// repository keeps serving reads directly.
type storeWithService struct {
	*storage.SQLiteRepository
	writer *service.TransactionService
}

func (s *storeWithService) AddTransaction(ctx context.Context, userID int64, tx core.Transaction) (int64, error) {
	return s.writer.AddTransaction(ctx, userID, tx)
}

// New builds the backend named by cfg.DataBackend.
func New(logger *slog.Logger, cfg *config.Config) (*Result, error) {
	switch cfg.DataBackend {
	case "sqlite":
		return newSQLite(logger, cfg)
	case "memory":
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New(), Cleanup: nil}, nil
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}

func newSQLite(logger *slog.Logger, cfg *config.Config) (*Result, error) {
	repo, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	var publisher service.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			publisher = client
			logger.Info("Initialized AMQP publisher",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	svc := service.NewTransactionService(repo, publisher)
	store := &storeWithService{SQLiteRepository: repo, writer: svc}

	logger.Info("Initialized SQLite backend",
		"db_path", cfg.DBPath,
		"amqp_enabled", publisher != nil)

	cleanup := func() error {
		if err := svc.Close(); err != nil {
			repo.Close()
			return err
		}
		return repo.Close()
	}
	return &Result{Store: store, Cleanup: cleanup}, nil
}
