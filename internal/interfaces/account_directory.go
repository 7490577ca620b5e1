package interfaces

import "context"

// AccountDirectory answers existence, activity and ownership questions about
// accounts. The bundled stores implement it, but the ledger core does not
// assume so; an external directory service can stand in.
type AccountDirectory interface {
	AccountExists(ctx context.Context, accountID string) (bool, error)
	IsActive(ctx context.Context, accountID string) (bool, error)
	OwnerOf(ctx context.Context, accountID string) (string, error)
	AccountsOf(ctx context.Context, ownerID string) ([]string, error)
}
