package memory

import (
	"context"

	"idleverse/internal/app/ports"
)

type ChangeLogRepo struct {
	store *Store
}

func NewChangeLogRepo(store *Store) ChangeLogRepo {
	return ChangeLogRepo{store: store}
}

func (r ChangeLogRepo) Append(_ context.Context, batch ports.ChangeBatch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.changes[batch.PlayerID] = append(r.store.changes[batch.PlayerID], batch)
	return nil
}

// ListByPlayerID returns up to limit batches, newest first.
func (r ChangeLogRepo) ListByPlayerID(_ context.Context, playerID string, limit int) ([]ports.ChangeBatch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := r.store.changes[playerID]
	n := len(all)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ports.ChangeBatch, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, all[len(all)-1-i])
	}
	return out, nil
}
