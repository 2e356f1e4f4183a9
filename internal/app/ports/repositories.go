package ports

import (
	"context"
	"time"

	"idleverse/internal/domain/game"
	"idleverse/internal/domain/sim"
)

// AdvanceResult is what one advancement produced, kept whole so a
// retried request can be answered without re-simulating.
type AdvanceResult struct {
	State   game.PlayerState `json:"state"`
	Changes []sim.Change     `json:"changes,omitempty"`
	Reason  sim.StopReason   `json:"reason"`
	Ticks   int              `json:"ticks"`
}

type AdvanceRecord struct {
	PlayerID       string        `json:"player_id"`
	IdempotencyKey string        `json:"idempotency_key"`
	RequestedTicks int           `json:"requested_ticks"`
	Seed           uint64        `json:"seed"`
	BatchID        string        `json:"batch_id"`
	Result         AdvanceResult `json:"result"`
	AppliedAt      time.Time     `json:"applied_at"`
}

type SnapshotRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (game.PlayerState, error)
	SaveWithVersion(ctx context.Context, state game.PlayerState, expectedVersion int64) error
	Create(ctx context.Context, state game.PlayerState) error
}

type AdvanceExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, playerID, key string) (*AdvanceRecord, error)
	SaveExecution(ctx context.Context, execution AdvanceRecord) error
}

// ChangeBatch is one persisted advancement's change log. Change ticks
// are offsets from the batch's starting moment.
type ChangeBatch struct {
	BatchID   string         `json:"batch_id"`
	PlayerID  string         `json:"player_id"`
	Ticks     int            `json:"ticks"`
	Reason    sim.StopReason `json:"reason"`
	Changes   []sim.Change   `json:"changes,omitempty"`
	AppliedAt time.Time      `json:"applied_at"`
}

type ChangeLogRepository interface {
	Append(ctx context.Context, batch ChangeBatch) error
	ListByPlayerID(ctx context.Context, playerID string, limit int) ([]ChangeBatch, error)
}
