package service

import (
	"context"
	"errors"
	"testing"

	"finflow/internal/amqp"
	"finflow/internal/core"
	"finflow/internal/ledger/memory"
)

type fakePublisher struct {
	published []*amqp.TransactionCreatedMessage
	err       error
	closed    bool
}

func (f *fakePublisher) PublishTransactionCreated(_ context.Context, msg *amqp.TransactionCreatedMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func validTransaction(t *testing.T) core.Transaction {
	t.Helper()
	m, err := core.ParseMoney("45.50")
	if err != nil {
		t.Fatalf("parse money: %v", err)
	}
	return core.Transaction{Kind: core.Expense, Amount: m, Category: "food", Date: core.NewDate(2025, 1, 2)}
}

func TestAddTransactionPublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewTransactionService(memory.New(), pub)

	id, err := svc.AddTransaction(context.Background(), 1, validTransaction(t))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	msg := pub.published[0]
	if msg.ID != id || msg.Kind != "expense" || msg.Amount != "45.50" || msg.Date != "2025-01-02" {
		t.Fatalf("event mismatch: %+v", msg)
	}

	if err := svc.Close(); err != nil || !pub.closed {
		t.Fatalf("close: err=%v closed=%v", err, pub.closed)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, &fakePublisher{err: errors.New("broker down")})

	if _, err := svc.AddTransaction(context.Background(), 1, validTransaction(t)); err != nil {
		t.Fatalf("write must survive publish failure: %v", err)
	}
	txs, err := store.ListTransactions(context.Background(), 1, core.Filter{})
	if err != nil || len(txs) != 1 {
		t.Fatalf("expected persisted row, got %d (err=%v)", len(txs), err)
	}
}

func TestValidationFailureSkipsPublish(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewTransactionService(memory.New(), pub)

	bad := validTransaction(t)
	bad.Amount = core.Money{}
	if _, err := svc.AddTransaction(context.Background(), 1, bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatal("no event may be published for a rejected transaction")
	}
}

func TestNilPublisher(t *testing.T) {
	svc := NewTransactionService(memory.New(), nil)
	if _, err := svc.AddTransaction(context.Background(), 1, validTransaction(t)); err != nil {
		t.Fatalf("add without publisher: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close without publisher: %v", err)
	}
}
