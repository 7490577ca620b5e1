package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
)

// Coordinator composes two balance mutations into one atomic transfer. It
// holds both account locks for the whole operation, acquired in ascending
// account-ID order, and guarantees the caller never observes a state where
// only one side changed: if the credit leg fails after the debit committed,
// the debit is compensated before the error is returned.
type Coordinator struct {
	store    interfaces.LedgerStore
	mutator  *Mutator
	recorder *Recorder
}

// NewCoordinator wires the coordinator to the same mutator the simple
// operations use, so transfers and single-account mutations contend on the
// same per-account locks.
func NewCoordinator(store interfaces.LedgerStore, mutator *Mutator, recorder *Recorder) *Coordinator {
	return &Coordinator{
		store:    store,
		mutator:  mutator,
		recorder: recorder,
	}
}

// Transfer moves amount from one account to the other and returns the debit
// and credit entries it recorded. The entries are appended only after both
// balance writes committed.
func (c *Coordinator) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, description string) (models.Transaction, models.Transaction, error) {
	var none models.Transaction

	if fromID == toID {
		return none, none, fmt.Errorf("%w: source and destination are the same account", ErrInvalidTransfer)
	}
	if !amount.IsPositive() {
		return none, none, fmt.Errorf("%w: amount must be positive", ErrInvalidTransfer)
	}

	unlock := c.mutator.locks.lockPair(fromID, toID)
	defer unlock()

	from, err := c.store.GetAccount(ctx, fromID)
	if err != nil {
		return none, none, err
	}
	to, err := c.store.GetAccount(ctx, toID)
	if err != nil {
		return none, none, err
	}
	if !from.IsActive || !to.IsActive {
		return none, none, ErrAccountInactive
	}

	// Checked up front so an underfunded transfer fails before either side
	// commits, not by debit-then-rollback.
	if from.Balance.LessThan(amount) {
		return none, none, ErrInsufficientFunds
	}

	if _, err := c.mutator.applyDeltaLocked(ctx, fromID, amount.Neg()); err != nil {
		return none, none, err
	}
	if _, err := c.mutator.applyDeltaLocked(ctx, toID, amount); err != nil {
		// Credit leg failed with the debit already committed: put the money
		// back on the source before surfacing.
		if _, compErr := c.mutator.applyDeltaLocked(ctx, fromID, amount); compErr != nil {
			return none, none, fmt.Errorf("%w: credit failed (%v) and compensation failed (%v)", ErrLedgerCorruption, err, compErr)
		}
		return none, none, fmt.Errorf("%w: %v", ErrTransferAborted, err)
	}

	now := time.Now().UTC()
	debit, err := c.recorder.Append(ctx, models.Transaction{
		AccountID:   fromID,
		Amount:      amount.Neg(),
		Type:        models.TransactionTypeTransfer,
		Description: fmt.Sprintf("Transfer to account %s: %s", toID, description),
		OccurredAt:  now,
	})
	if err != nil {
		// No entry exists yet, so reversing both balance writes restores the
		// pre-transfer state exactly.
		if revErr := c.reverseBalances(ctx, fromID, toID, amount, err); revErr != nil {
			return none, none, revErr
		}
		return none, none, fmt.Errorf("%w: %v", ErrTransferAborted, err)
	}

	credit, err := c.recorder.Append(ctx, models.Transaction{
		AccountID:   toID,
		Amount:      amount,
		Type:        models.TransactionTypeTransfer,
		Description: fmt.Sprintf("Transfer from account %s: %s", fromID, description),
		OccurredAt:  now,
	})
	if err != nil {
		// The debit entry is already durable and entries are append-only, so
		// compensation is a reversing entry on the source plus reversal of
		// both balance writes. Balances again equal the sum of entries on
		// both accounts afterwards.
		if revErr := c.reverseBalances(ctx, fromID, toID, amount, err); revErr != nil {
			return none, none, revErr
		}
		if _, compErr := c.recorder.Append(ctx, models.Transaction{
			AccountID:   fromID,
			Amount:      amount,
			Type:        models.TransactionTypeTransfer,
			Description: fmt.Sprintf("Transfer reversal, account %s: %s", toID, description),
			OccurredAt:  time.Now().UTC(),
		}); compErr != nil {
			return none, none, fmt.Errorf("%w: credit entry failed (%v) and reversal entry failed (%v)", ErrLedgerCorruption, err, compErr)
		}
		return none, none, fmt.Errorf("%w: %v", ErrTransferAborted, err)
	}

	return debit, credit, nil
}

// reverseBalances undoes both committed balance writes of a transfer. A
// failure here means the ledger can no longer be restored automatically.
func (c *Coordinator) reverseBalances(ctx context.Context, fromID, toID string, amount decimal.Decimal, cause error) error {
	if _, err := c.mutator.applyDeltaLocked(ctx, toID, amount.Neg()); err != nil {
		return fmt.Errorf("%w: append failed (%v) and credit reversal failed (%v)", ErrLedgerCorruption, cause, err)
	}
	if _, err := c.mutator.applyDeltaLocked(ctx, fromID, amount); err != nil {
		return fmt.Errorf("%w: append failed (%v) and debit reversal failed (%v)", ErrLedgerCorruption, cause, err)
	}
	return nil
}
