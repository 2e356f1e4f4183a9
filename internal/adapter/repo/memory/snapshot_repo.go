package memory

import (
	"context"

	"idleverse/internal/app/ports"
	"idleverse/internal/domain/game"
)

type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) GetByPlayerID(_ context.Context, playerID string) (game.PlayerState, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	state, ok := r.store.snapshots[playerID]
	if !ok {
		return game.PlayerState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r SnapshotRepo) SaveWithVersion(_ context.Context, state game.PlayerState, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.snapshots[state.PlayerID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.snapshots[state.PlayerID] = state
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.snapshots[state.PlayerID] = state
	return nil
}

func (r SnapshotRepo) Create(_ context.Context, state game.PlayerState) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.snapshots[state.PlayerID]; exists {
		return ports.ErrConflict
	}
	r.store.snapshots[state.PlayerID] = state
	return nil
}
