package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseRegisteredMessage carries everything the worker needs to notify the
// owner, so delivery never has to read the database.
type ExpenseRegisteredMessage struct {
	ExpenseID   uuid.UUID       `json:"expense_id"`
	UserID      uuid.UUID       `json:"user_id"`
	UserName    string          `json:"user_name"`
	UserEmail   string          `json:"user_email"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Value       decimal.Decimal `json:"value"`
	Timestamp   time.Time       `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseRegisteredMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRegisteredMessageFromJSON decodes a message and rejects bodies
// without an expense id or recipient.
func ExpenseRegisteredMessageFromJSON(data []byte) (*ExpenseRegisteredMessage, error) {
	var msg ExpenseRegisteredMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ExpenseID == uuid.Nil {
		return nil, fmt.Errorf("missing expense_id")
	}
	if msg.UserEmail == "" {
		return nil, fmt.Errorf("missing user_email")
	}
	return &msg, nil
}
