package memory

import (
	"context"

	"idleverse/internal/app/ports"
)

type AdvanceExecutionRepo struct {
	store *Store
}

func NewAdvanceExecutionRepo(store *Store) AdvanceExecutionRepo {
	return AdvanceExecutionRepo{store: store}
}

func (r AdvanceExecutionRepo) GetByIdempotencyKey(_ context.Context, playerID, key string) (*ports.AdvanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.executions[execKey(playerID, key)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := rec
	return &copy, nil
}

func (r AdvanceExecutionRepo) SaveExecution(_ context.Context, execution ports.AdvanceRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	k := execKey(execution.PlayerID, execution.IdempotencyKey)
	if _, exists := r.store.executions[k]; exists {
		return ports.ErrConflict
	}
	r.store.executions[k] = execution
	return nil
}
