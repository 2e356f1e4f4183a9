package memory

import "context"

// TxManager serializes writers. There is no rollback: the advance path
// performs all its writes after simulation succeeds, so a transaction
// that fails early leaves the store untouched.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(ctx)
}
