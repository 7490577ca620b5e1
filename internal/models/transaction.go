package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the business reason for a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
	TransactionTypeTransfer   TransactionType = "Transfer"
)

// Transaction is a single immutable ledger record for an account.
// Entries are append-only: once stored they are never edited or deleted.
type Transaction struct {
	ID          string          `json:"id"`         // unique identifier, assigned at append time
	Seq         int64           `json:"-"`          // insertion order, assigned by the store
	AccountID   string          `json:"account_id"` // owning account
	Amount      decimal.Decimal `json:"amount"`     // signed: positive = credit, negative = debit
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
