// Package service orchestrates writes across the store and the optional
// event publisher.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"finflow/internal/amqp"
	"finflow/internal/core"
	"finflow/internal/ledger"
)

// Publisher is the slice of the AMQP client the service needs.
type Publisher interface {
	PublishTransactionCreated(ctx context.Context, msg *amqp.TransactionCreatedMessage) error
	Close() error
}

// TransactionService persists transactions and announces them. The publish
// happens inside the request, after the row is durable; a publish failure is
// logged and never fails the operation.
type TransactionService struct {
	store     ledger.TransactionWriter
	publisher Publisher
}

func NewTransactionService(store ledger.TransactionWriter, publisher Publisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

// AddTransaction implements ledger.TransactionWriter.
func (s *TransactionService) AddTransaction(ctx context.Context, userID int64, tx core.Transaction) (int64, error) {
	id, err := s.store.AddTransaction(ctx, userID, tx)
	if err != nil {
		return 0, err
	}

	if s.publisher == nil {
		return id, nil
	}

	msg := amqp.NewTransactionCreatedMessage(id, string(tx.Kind), tx.Amount.String(), tx.Category, tx.Date.ISO())
	if err := s.publisher.PublishTransactionCreated(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"id", id, "error", err)
		// The row is saved; the event stream is best-effort.
	}

	return id, nil
}

// Close releases the publisher connection, if any.
func (s *TransactionService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}
