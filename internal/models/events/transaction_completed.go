package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCompleted is published once per committed transaction entry.
type TransactionCompleted struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
