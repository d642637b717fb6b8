package amqp

import (
	"encoding/json"
	"time"
)

// TransactionCreatedMessage announces a newly persisted ledger entry to
// external consumers. It carries display fields only; consumers needing the
// full row read the store by ID.
type TransactionCreatedMessage struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTransactionCreatedMessage(id int64, kind, amount, category, date string) *TransactionCreatedMessage {
	return &TransactionCreatedMessage{
		ID:        id,
		Kind:      kind,
		Amount:    amount,
		Category:  category,
		Date:      date,
		CreatedAt: time.Now(),
	}
}

func (m *TransactionCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionCreatedMessageFromJSON(data []byte) (*TransactionCreatedMessage, error) {
	var m TransactionCreatedMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
