// Package advance is the write path of the simulation: it catches a
// player's snapshot up by a tick budget and persists everything that
// happened, atomically and idempotently.
package advance

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"idleverse/internal/app/ports"
	"idleverse/internal/app/view"
	"idleverse/internal/domain/sim"
	"idleverse/internal/random"
)

var ErrInvalidRequest = errors.New("invalid advance request")

type UseCase struct {
	TxManager ports.TxManager
	Snapshots ports.SnapshotRepository
	Execs     ports.AdvanceExecutionRepository
	ChangeLog ports.ChangeLogRepository
	Notifier  ports.ChangeNotifier
	Metrics   ports.AdvanceMetrics
	Engine    *sim.Engine
	// MaxTicks caps a single request's budget; zero means uncapped.
	MaxTicks int
	Now      func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if req.PlayerID == "" || req.IdempotencyKey == "" || req.Ticks <= 0 {
		return Response{}, ErrInvalidRequest
	}
	if u.MaxTicks > 0 && req.Ticks > u.MaxTicks {
		req.Ticks = u.MaxTicks
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	seed := random.Seed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	var out Response
	var published *ports.ChangeBatch
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		exec, err := u.Execs.GetByIdempotencyKey(txCtx, req.PlayerID, req.IdempotencyKey)
		if err == nil && exec != nil {
			out = Response{
				Player:  view.Derive(u.Engine.Content, exec.Result.State),
				Changes: exec.Result.Changes,
				Reason:  exec.Result.Reason,
				Ticks:   exec.Result.Ticks,
				Seed:    exec.Seed,
				BatchID: exec.BatchID,
			}
			return nil
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		state, err := u.Snapshots.GetByPlayerID(txCtx, req.PlayerID)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewPCG(seed, seed))
		result, err := u.Engine.Advance(state, req.Ticks, rng)
		if err != nil {
			return err
		}

		next := result.State
		next.Version = state.Version + 1
		next.UpdatedAt = nowFn()
		if err := u.Snapshots.SaveWithVersion(txCtx, next, state.Version); err != nil {
			return err
		}

		batch := ports.ChangeBatch{
			BatchID:   uuid.NewString(),
			PlayerID:  req.PlayerID,
			Ticks:     result.Ticks,
			Reason:    result.Reason,
			Changes:   result.Changes,
			AppliedAt: nowFn(),
		}
		execution := ports.AdvanceRecord{
			PlayerID:       req.PlayerID,
			IdempotencyKey: req.IdempotencyKey,
			RequestedTicks: req.Ticks,
			Seed:           seed,
			BatchID:        batch.BatchID,
			Result: ports.AdvanceResult{
				State:   next,
				Changes: result.Changes,
				Reason:  result.Reason,
				Ticks:   result.Ticks,
			},
			AppliedAt: nowFn(),
		}
		if err := u.Execs.SaveExecution(txCtx, execution); err != nil {
			return err
		}
		if err := u.ChangeLog.Append(txCtx, batch); err != nil {
			return err
		}

		published = &batch
		out = Response{
			Player:  view.Derive(u.Engine.Content, next),
			Changes: result.Changes,
			Reason:  result.Reason,
			Ticks:   result.Ticks,
			Seed:    seed,
			BatchID: batch.BatchID,
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordAdvance(out.Reason, out.Ticks)
	}
	// Delivery is best effort; the batch is already durable.
	if published != nil && u.Notifier != nil {
		_ = u.Notifier.PublishChanges(ctx, *published)
	}
	return out, nil
}
