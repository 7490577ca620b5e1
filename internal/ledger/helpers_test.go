package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger-system/internal/ledger"
	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
	"github.com/sheikh-saqib/banking-ledger-system/internal/storage/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedAccount writes an account straight into the store with the given
// balance, bypassing the facade, so tests can start from any state.
func seedAccount(t *testing.T, store interfaces.LedgerStore, ownerID, balance string) models.Account {
	t.Helper()
	now := time.Now().UTC()
	account := models.Account{
		ID:             uuid.New().String(),
		AccountNumber:  models.NewAccountNumber(),
		AccountType:    models.DefaultAccountType,
		Balance:        dec(balance),
		OwnerID:        ownerID,
		CreatedAt:      now,
		LastActivityAt: now,
		IsActive:       true,
	}
	require.NoError(t, store.CreateAccount(context.Background(), account))
	return account
}

// balanceOf reads the committed balance back from the store.
func balanceOf(t *testing.T, store interfaces.LedgerStore, accountID string) decimal.Decimal {
	t.Helper()
	account, err := store.GetAccount(context.Background(), accountID)
	require.NoError(t, err)
	return account.Balance
}

// entrySum adds up all transaction amounts for an account, the quantity the
// balance must always equal.
func entrySum(t *testing.T, store interfaces.LedgerStore, accountID string) decimal.Decimal {
	t.Helper()
	txns, err := store.GetTransactionsByAccount(context.Background(), accountID)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.Amount)
	}
	return sum
}

// requireConsistent asserts the account's balance movement since opening
// equals the sum of its entries (seeded accounts start with a balance but no
// entries, so the check is relative to the opening balance).
func requireConsistent(t *testing.T, store interfaces.LedgerStore, accountID string, opening decimal.Decimal) {
	t.Helper()
	moved := balanceOf(t, store, accountID).Sub(opening)
	sum := entrySum(t, store, accountID)
	require.True(t, moved.Equal(sum), "balance moved %s but entries sum to %s", moved, sum)
}

// failingStore wraps another store and fails selected writes, for exercising
// the compensation paths.
type failingStore struct {
	interfaces.LedgerStore

	// failBalanceCall[id] = n fails the n-th UpdateBalance for that account.
	failBalanceCall map[string]int
	balanceCalls    map[string]int

	// failAppendCall = n fails the n-th AppendTransaction. Zero disables.
	failAppendCall int
	appendCalls    int
}

func newFailingStore(inner interfaces.LedgerStore) *failingStore {
	return &failingStore{
		LedgerStore:     inner,
		failBalanceCall: make(map[string]int),
		balanceCalls:    make(map[string]int),
	}
}

func (f *failingStore) UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal, lastActivityAt time.Time) error {
	f.balanceCalls[accountID]++
	if n, ok := f.failBalanceCall[accountID]; ok && n == f.balanceCalls[accountID] {
		return fmt.Errorf("%w: injected write failure", ledger.ErrStoreUnavailable)
	}
	return f.LedgerStore.UpdateBalance(ctx, accountID, balance, lastActivityAt)
}

func (f *failingStore) AppendTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	f.appendCalls++
	if f.failAppendCall != 0 && f.appendCalls == f.failAppendCall {
		return models.Transaction{}, fmt.Errorf("%w: injected append failure", ledger.ErrStoreUnavailable)
	}
	return f.LedgerStore.AppendTransaction(ctx, txn)
}

// capturePublisher collects published events for inspection.
type capturePublisher struct {
	mu     sync.Mutex
	events []any
}

func (c *capturePublisher) Publish(topic string, event any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturePublisher) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func newTestFacade(t *testing.T) (*ledger.Facade, *memory.MemoryLedgerStore) {
	t.Helper()
	store := memory.NewMemoryLedgerStore()
	return ledger.NewFacade(store, store, nil), store
}
