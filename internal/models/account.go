package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultAccountType is assigned when the caller does not pick one.
const DefaultAccountType = "Savings"

// Account holds a balance and the bookkeeping fields around it.
// Balance is the only mutable financial field; LastActivityAt moves with it.
type Account struct {
	ID             string          `json:"id"`               // unique identifier, immutable
	AccountNumber  string          `json:"account_number"`   // human-facing number, assigned at creation
	AccountType    string          `json:"account_type"`     // informational label, e.g. Savings or Checking
	Balance        decimal.Decimal `json:"balance"`          // fixed-point, scale 2
	OwnerID        string          `json:"owner_id"`         // owning user, immutable
	CreatedAt      time.Time       `json:"created_at"`
	LastActivityAt time.Time       `json:"last_activity_at"` // updated on every successful mutation
	IsActive       bool            `json:"is_active"`        // inactive accounts reject mutations
}

// NewAccountNumber returns a fresh 10-character account number
// (the first 10 hex characters of a UUID with dashes stripped).
func NewAccountNumber() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}
