package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger-system/internal/ledger"
	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore
// and interfaces.AccountDirectory. It is safe for concurrent use and hands
// out copies, so callers cannot reach its internal state.
type MemoryLedgerStore struct {
	mu           sync.Mutex
	accounts     map[string]models.Account
	transactions []models.Transaction
	nextSeq      int64
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		accounts: make(map[string]models.Account),
	}
}

func (m *MemoryLedgerStore) CreateAccount(ctx context.Context, account models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[account.ID]; exists {
		return fmt.Errorf("account %s already exists", account.ID)
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MemoryLedgerStore) GetAccount(ctx context.Context, accountID string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, exists := m.accounts[accountID]
	if !exists {
		return models.Account{}, ledger.ErrAccountNotFound
	}
	return account, nil
}

func (m *MemoryLedgerStore) GetAccountsByOwner(ctx context.Context, ownerID string) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.Account
	for _, account := range m.accounts {
		if account.OwnerID == ownerID {
			result = append(result, account)
		}
	}
	return result, nil
}

func (m *MemoryLedgerStore) UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal, lastActivityAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, exists := m.accounts[accountID]
	if !exists {
		return ledger.ErrAccountNotFound
	}
	account.Balance = balance
	account.LastActivityAt = lastActivityAt
	m.accounts[accountID] = account
	return nil
}

func (m *MemoryLedgerStore) SetAccountActive(ctx context.Context, accountID string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, exists := m.accounts[accountID]
	if !exists {
		return ledger.ErrAccountNotFound
	}
	account.IsActive = active
	m.accounts[accountID] = account
	return nil
}

// AppendTransaction assigns the next insertion sequence and stores the entry.
// The slice is append-only; nothing ever rewrites or removes an element.
func (m *MemoryLedgerStore) AppendTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSeq++
	txn.Seq = m.nextSeq
	m.transactions = append(m.transactions, txn)
	return txn, nil
}

func (m *MemoryLedgerStore) GetTransactionsByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.Transaction
	for _, txn := range m.transactions {
		if txn.AccountID == accountID {
			result = append(result, txn)
		}
	}
	return result, nil
}

func (m *MemoryLedgerStore) GetTransactionsByAccounts(ctx context.Context, accountIDs []string) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}

	var result []models.Transaction
	for _, txn := range m.transactions {
		if _, ok := wanted[txn.AccountID]; ok {
			result = append(result, txn)
		}
	}
	return result, nil
}

// AccountExists implements interfaces.AccountDirectory.
func (m *MemoryLedgerStore) AccountExists(ctx context.Context, accountID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.accounts[accountID]
	return exists, nil
}

// IsActive implements interfaces.AccountDirectory.
func (m *MemoryLedgerStore) IsActive(ctx context.Context, accountID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, exists := m.accounts[accountID]
	if !exists {
		return false, ledger.ErrAccountNotFound
	}
	return account.IsActive, nil
}

// OwnerOf implements interfaces.AccountDirectory.
func (m *MemoryLedgerStore) OwnerOf(ctx context.Context, accountID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, exists := m.accounts[accountID]
	if !exists {
		return "", ledger.ErrAccountNotFound
	}
	return account.OwnerID, nil
}

// AccountsOf implements interfaces.AccountDirectory.
func (m *MemoryLedgerStore) AccountsOf(ctx context.Context, ownerID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for _, account := range m.accounts {
		if account.OwnerID == ownerID {
			ids = append(ids, account.ID)
		}
	}
	return ids, nil
}

// Compile-time checks: MemoryLedgerStore satisfies both ports.
var (
	_ interfaces.LedgerStore      = (*MemoryLedgerStore)(nil)
	_ interfaces.AccountDirectory = (*MemoryLedgerStore)(nil)
)
