// Package forecast answers what-if questions without persisting
// anything: how far a tick budget gets a player, when a goal would be
// reached, and when the next simulation event is due.
package forecast

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"idleverse/internal/app/ports"
	"idleverse/internal/app/view"
	"idleverse/internal/domain/game"
	"idleverse/internal/domain/sim"
	"idleverse/internal/random"
)

var (
	ErrInvalidRequest = errors.New("invalid forecast request")
	ErrInvalidGoal    = errors.New("invalid forecast goal")
)

type UseCase struct {
	Snapshots ports.SnapshotRepository
	Engine    *sim.Engine
	// MaxTicks caps a single forecast; zero means uncapped.
	MaxTicks int
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" || req.Ticks <= 0 {
		return Response{}, ErrInvalidRequest
	}
	if u.MaxTicks > 0 && req.Ticks > u.MaxTicks {
		req.Ticks = u.MaxTicks
	}
	seed := random.Seed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	state, err := u.Snapshots.GetByPlayerID(ctx, req.PlayerID)
	if err != nil {
		return Response{}, err
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	var result sim.Result
	if req.Goal != nil {
		pred, err := compileGoal(*req.Goal)
		if err != nil {
			return Response{}, err
		}
		result, err = u.Engine.AdvanceUntil(state, pred, rng, req.Ticks)
		if err != nil {
			return Response{}, err
		}
	} else {
		result, err = u.Engine.Advance(state, req.Ticks, rng)
		if err != nil {
			return Response{}, err
		}
	}

	return Response{
		Player:   view.Derive(u.Engine.Content, result.State),
		Changes:  result.Changes,
		Reason:   result.Reason,
		Ticks:    result.Ticks,
		Duration: sim.TickDuration * time.Duration(result.Ticks),
		Seed:     seed,
		Reached:  result.Reason == sim.StopPredicateMet,
	}, nil
}

// NextWake reports when the player state next changes on its own: the
// distance to the nearest event horizon.
func (u UseCase) NextWake(ctx context.Context, playerID string) (HorizonResponse, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return HorizonResponse{}, ErrInvalidRequest
	}
	state, err := u.Snapshots.GetByPlayerID(ctx, playerID)
	if err != nil {
		return HorizonResponse{}, err
	}
	ticks, ok := u.Engine.NextEventHorizon(state)
	return HorizonResponse{
		Active:   ok,
		Ticks:    ticks,
		Duration: sim.TickDuration * time.Duration(ticks),
	}, nil
}

func compileGoal(g Goal) (func(game.PlayerState) bool, error) {
	if g.Target <= 0 {
		return nil, ErrInvalidGoal
	}
	switch g.Kind {
	case GoalSkillLevel:
		if g.Skill == "" {
			return nil, ErrInvalidGoal
		}
		return func(s game.PlayerState) bool { return s.Level(g.Skill) >= g.Target }, nil
	case GoalItemCount:
		if g.Item == "" {
			return nil, ErrInvalidGoal
		}
		return func(s game.PlayerState) bool { return s.Inventory.Count(g.Item) >= g.Target }, nil
	case GoalCoins:
		return func(s game.PlayerState) bool { return s.Coins >= g.Target }, nil
	default:
		return nil, ErrInvalidGoal
	}
}
