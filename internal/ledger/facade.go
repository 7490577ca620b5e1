package ledger

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
	"github.com/sheikh-saqib/banking-ledger-system/internal/models/events"
)

// TransactionCompletedTopic is where the facade announces committed entries.
const TransactionCompletedTopic = "transaction_completed"

// defaultRecentCount matches the dashboard's recent-transactions widget.
const defaultRecentCount = 10

// Facade is the single entry point callers use. It sequences the mutator,
// coordinator and recorder so that every successful call leaves the ledger
// invariants intact and every failed call leaves financial state unchanged,
// with the one signalled exception of a compensated transfer abort.
type Facade struct {
	store       interfaces.LedgerStore
	directory   interfaces.AccountDirectory
	publisher   interfaces.EventPublisher // nil disables publishing
	mutator     *Mutator
	coordinator *Coordinator
	recorder    *Recorder
}

// NewFacade builds the whole core around one store. publisher may be nil.
func NewFacade(store interfaces.LedgerStore, directory interfaces.AccountDirectory, publisher interfaces.EventPublisher) *Facade {
	mutator := NewMutator(store)
	recorder := NewRecorder(store)
	return &Facade{
		store:       store,
		directory:   directory,
		publisher:   publisher,
		mutator:     mutator,
		coordinator: NewCoordinator(store, mutator, recorder),
		recorder:    recorder,
	}
}

// CreateAccount opens a new active account with a zero balance and a
// generated account number. An empty accountType defaults to Savings.
func (f *Facade) CreateAccount(ctx context.Context, ownerID, accountType string) (models.Account, error) {
	if accountType == "" {
		accountType = models.DefaultAccountType
	}

	now := time.Now().UTC()
	account := models.Account{
		ID:             uuid.New().String(),
		AccountNumber:  models.NewAccountNumber(),
		AccountType:    accountType,
		Balance:        decimal.Zero,
		OwnerID:        ownerID,
		CreatedAt:      now,
		LastActivityAt: now,
		IsActive:       true,
	}
	if err := f.store.CreateAccount(ctx, account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Account returns a snapshot of one account.
func (f *Facade) Account(ctx context.Context, accountID string) (models.Account, error) {
	return f.store.GetAccount(ctx, accountID)
}

// UserAccounts returns snapshots of all accounts owned by the user.
func (f *Facade) UserAccounts(ctx context.Context, ownerID string) ([]models.Account, error) {
	return f.store.GetAccountsByOwner(ctx, ownerID)
}

// DeactivateAccount stops the account from accepting mutations. Accounts are
// never deleted while transactions reference them, so this is the only
// removal the core offers.
func (f *Facade) DeactivateAccount(ctx context.Context, accountID string) error {
	return f.store.SetAccountActive(ctx, accountID, false)
}

// Deposit credits amount to the account and records a Deposit entry.
func (f *Facade) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (models.Transaction, error) {
	if !amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidAmount)
	}
	if description == "" {
		description = "Deposit"
	}
	return f.mutateAndRecord(ctx, accountID, amount, models.TransactionTypeDeposit, description)
}

// Withdraw debits amount from the account and records a Withdrawal entry.
// An overdraw surfaces ErrInsufficientFunds and changes nothing.
func (f *Facade) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (models.Transaction, error) {
	if !amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidAmount)
	}
	if description == "" {
		description = "Withdrawal"
	}
	return f.mutateAndRecord(ctx, accountID, amount.Neg(), models.TransactionTypeWithdrawal, description)
}

// mutateAndRecord applies one signed delta and appends the matching entry
// while holding the account's lock, so the balance write and its record
// commit as a unit with respect to other mutations. delta carries the sign
// the entry will be stored with.
func (f *Facade) mutateAndRecord(ctx context.Context, accountID string, delta decimal.Decimal, txnType models.TransactionType, description string) (models.Transaction, error) {
	if delta.IsZero() {
		return models.Transaction{}, ErrInvalidAmount
	}

	mu := f.mutator.locks.get(accountID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := f.mutator.applyDeltaLocked(ctx, accountID, delta); err != nil {
		return models.Transaction{}, err
	}

	txn, err := f.recorder.Append(ctx, models.Transaction{
		AccountID:   accountID,
		Amount:      delta,
		Type:        txnType,
		Description: description,
	})
	if err != nil {
		// The balance moved but no entry exists; roll the balance write back
		// before surfacing so balance and entries still agree.
		if _, compErr := f.mutator.applyDeltaLocked(ctx, accountID, delta.Neg()); compErr != nil {
			return models.Transaction{}, fmt.Errorf("%w: entry append failed (%v) and rollback failed (%v)", ErrLedgerCorruption, err, compErr)
		}
		return models.Transaction{}, err
	}

	f.publish(txn)
	return txn, nil
}

// Transfer moves amount between two accounts atomically.
func (f *Facade) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, description string) (models.Transaction, models.Transaction, error) {
	debit, credit, err := f.coordinator.Transfer(ctx, fromID, toID, amount, description)
	if err != nil {
		return debit, credit, err
	}
	f.publish(debit)
	f.publish(credit)
	return debit, credit, nil
}

// AccountTransactions lists one account's entries, newest first.
func (f *Facade) AccountTransactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	return f.recorder.ListByAccount(ctx, accountID)
}

// UserTransactions resolves the user's accounts through the directory and
// returns the union of their entries, newest first.
func (f *Facade) UserTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	accountIDs, err := f.directory.AccountsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.recorder.ListByAccounts(ctx, accountIDs)
}

// RecentTransactions returns the user's newest entries, at most count of
// them. A count of zero or less falls back to the dashboard default.
func (f *Facade) RecentTransactions(ctx context.Context, userID string, count int) ([]models.Transaction, error) {
	if count <= 0 {
		count = defaultRecentCount
	}
	txns, err := f.UserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(txns) > count {
		txns = txns[:count]
	}
	return txns, nil
}

// TotalBalance sums the balances of all the user's accounts.
func (f *Facade) TotalBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	accounts, err := f.store.GetAccountsByOwner(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance)
	}
	return total, nil
}

// publish announces a committed entry. Publishing is best effort: the entry
// is already durable, so a broker failure is logged and never unwinds it.
func (f *Facade) publish(txn models.Transaction) {
	if f.publisher == nil {
		return
	}
	event := events.TransactionCompleted{
		TransactionID: txn.ID,
		AccountID:     txn.AccountID,
		Amount:        txn.Amount,
		Type:          string(txn.Type),
		OccurredAt:    txn.OccurredAt,
	}
	if err := f.publisher.Publish(TransactionCompletedTopic, event); err != nil {
		log.Printf("publish transaction %s: %v", txn.ID, err)
	}
}
