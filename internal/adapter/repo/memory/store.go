// Package memory implements the persistence ports on mutex-guarded
// maps. It backs use-case tests and local development; transactions
// serialize but do not roll back.
package memory

import (
	"sync"

	"idleverse/internal/app/ports"
	"idleverse/internal/domain/game"
)

type Store struct {
	// txMu serializes transactions; mu guards the maps so reads
	// outside a transaction stay safe.
	txMu sync.Mutex
	mu   sync.RWMutex

	snapshots  map[string]game.PlayerState
	executions map[string]ports.AdvanceRecord
	changes    map[string][]ports.ChangeBatch
}

func NewStore() *Store {
	return &Store{
		snapshots:  make(map[string]game.PlayerState),
		executions: make(map[string]ports.AdvanceRecord),
		changes:    make(map[string][]ports.ChangeBatch),
	}
}

func execKey(playerID, key string) string {
	return playerID + "::" + key
}

// SeedSnapshot installs a snapshot directly, bypassing versioning.
func (s *Store) SeedSnapshot(state game.PlayerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[state.PlayerID] = state
}
