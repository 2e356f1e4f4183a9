package ports

import "context"

// TxManager scopes fn to one transaction. The ctx handed to fn carries
// the transaction; repositories pick it out of the context before
// falling back to their default handle.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
