package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
)

// Recorder appends transaction entries and reads them back in display order:
// newest first by occurrence time, with ties between equal timestamps won by
// the most recently appended entry. The order is deterministic for a fixed
// store state.
type Recorder struct {
	store interfaces.LedgerStore
}

func NewRecorder(store interfaces.LedgerStore) *Recorder {
	return &Recorder{store: store}
}

// Append persists a new entry, assigning its ID and occurrence time when the
// caller left them unset.
func (r *Recorder) Append(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.OccurredAt.IsZero() {
		txn.OccurredAt = time.Now().UTC()
	}
	return r.store.AppendTransaction(ctx, txn)
}

func (r *Recorder) ListByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	txns, err := r.store.GetTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(txns)
	return txns, nil
}

func (r *Recorder) ListByAccounts(ctx context.Context, accountIDs []string) ([]models.Transaction, error) {
	txns, err := r.store.GetTransactionsByAccounts(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(txns)
	return txns, nil
}

// sortNewestFirst orders entries by occurrence time descending, breaking
// equal timestamps by store insertion sequence descending.
func sortNewestFirst(txns []models.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].OccurredAt.Equal(txns[j].OccurredAt) {
			return txns[i].OccurredAt.After(txns[j].OccurredAt)
		}
		return txns[i].Seq > txns[j].Seq
	})
}
