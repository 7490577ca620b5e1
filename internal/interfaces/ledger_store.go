package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
)

// LedgerStore is durable keyed storage for accounts and transactions.
// Implementations do pure reads and writes; the business rules live in the
// ledger package, which is also the only writer.
type LedgerStore interface {
	CreateAccount(ctx context.Context, account models.Account) error
	GetAccount(ctx context.Context, accountID string) (models.Account, error)
	GetAccountsByOwner(ctx context.Context, ownerID string) ([]models.Account, error)

	// UpdateBalance overwrites the balance and last-activity timestamp of one
	// account. Callers serialize their read-modify-write around it.
	UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal, lastActivityAt time.Time) error
	SetAccountActive(ctx context.Context, accountID string, active bool) error

	// AppendTransaction persists a new entry, assigns its insertion sequence
	// and returns the stored copy. Existing entries are never overwritten.
	AppendTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error)
	GetTransactionsByAccount(ctx context.Context, accountID string) ([]models.Transaction, error)
	GetTransactionsByAccounts(ctx context.Context, accountIDs []string) ([]models.Transaction, error)
}
