package ledger

import "errors"

// Domain errors. Callers branch on these with errors.Is; the HTTP layer maps
// them to status codes. Store implementations reuse ErrAccountNotFound and
// wrap driver failures in ErrStoreUnavailable.
var (
	// ErrInvalidAmount means the amount is zero, negative where a positive
	// value is required, or otherwise unusable.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAccountNotFound means the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive means the account exists but rejects mutations.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrInsufficientFunds means the mutation would drive the balance
	// negative. The balance is left unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTransfer means a self-transfer or a non-positive amount.
	ErrInvalidTransfer = errors.New("invalid transfer")

	// ErrTransferAborted means the credit leg failed after the debit
	// committed and a compensating credit restored the source balance.
	// The whole transfer may be retried.
	ErrTransferAborted = errors.New("transfer aborted, debit compensated")

	// ErrLedgerCorruption means a compensating write failed and the ledger
	// may be inconsistent. Not recoverable by retrying.
	ErrLedgerCorruption = errors.New("ledger corruption")

	// ErrStoreUnavailable wraps transient storage failures. The operation
	// left no partial state and may be retried as a whole.
	ErrStoreUnavailable = errors.New("ledger store unavailable")
)
