package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/banking-ledger-system/internal/interfaces"
)

// Mutator applies a signed delta to one account's balance. It is the unit of
// serialization: every balance change in the system, including both legs of a
// transfer, goes through it while the account's lock is held, so the visible
// sequence of balances is an interleaving of whole deltas.
//
// The mutator only moves the balance. Recording the matching transaction
// entry is the caller's job, which keeps it reusable by both the simple
// operations and the transfer coordinator.
type Mutator struct {
	store interfaces.LedgerStore
	locks *accountLocks
}

func NewMutator(store interfaces.LedgerStore) *Mutator {
	return &Mutator{
		store: store,
		locks: newAccountLocks(),
	}
}

// ApplyDelta adds delta to the account's balance and returns the new balance.
// A result below zero fails with ErrInsufficientFunds and leaves the balance
// untouched. On success exactly one balance write is issued, which also
// advances the account's last-activity timestamp.
func (m *Mutator) ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	if delta.IsZero() {
		return decimal.Zero, ErrInvalidAmount
	}

	mu := m.locks.get(accountID)
	mu.Lock()
	defer mu.Unlock()

	return m.applyDeltaLocked(ctx, accountID, delta)
}

// applyDeltaLocked is the read-check-write itself. The caller must already
// hold the account's lock; the transfer coordinator calls it for both legs
// while holding both locks.
func (m *Mutator) applyDeltaLocked(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	account, err := m.store.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if !account.IsActive {
		return decimal.Zero, ErrAccountInactive
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}

	if err := m.store.UpdateBalance(ctx, accountID, newBalance, time.Now().UTC()); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}
