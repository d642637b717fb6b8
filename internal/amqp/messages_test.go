package amqp

import (
	"testing"
	"time"
)

func TestTransactionCreatedMessageJSON(t *testing.T) {
	msg := NewTransactionCreatedMessage(42, "expense", "45.50", "food", "2025-01-02")
	if msg.CreatedAt.IsZero() || time.Since(msg.CreatedAt) > time.Minute {
		t.Fatalf("unexpected created_at: %v", msg.CreatedAt)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TransactionCreatedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 || got.Kind != "expense" || got.Amount != "45.50" ||
		got.Category != "food" || got.Date != "2025-01-02" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := TransactionCreatedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
