package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
)

// TransactionRecordedMessage announces a transaction appended to the ledger.
// Amount is the decimal string so no precision is lost on the wire.
type TransactionRecordedMessage struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage creates a message with a fresh ID
func NewTransactionRecordedMessage(t core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:          uuid.NewString(),
		Date:        t.Date.String(),
		Amount:      t.Amount.String(),
		Category:    t.Category.String(),
		Description: t.Description,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON creates a message from JSON bytes
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Transaction decodes the message back into a validated transaction.
func (m *TransactionRecordedMessage) Transaction() (core.Transaction, error) {
	return core.ParseRecord([]string{m.Date, m.Amount, m.Category, m.Description})
}
