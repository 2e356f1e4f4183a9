// Package status serves the read path: the current snapshot rendered as a
// player view plus the distance to the next simulation event. It never
// writes and never advances time.
package status

import (
	"context"
	"errors"
	"strings"

	"idleverse/internal/app/ports"
	"idleverse/internal/app/view"
	"idleverse/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Snapshots ports.SnapshotRepository
	Engine    *sim.Engine
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		return Response{}, ErrInvalidRequest
	}

	state, err := u.Snapshots.GetByPlayerID(ctx, playerID)
	if err != nil {
		return Response{}, err
	}

	ticks, active := u.Engine.NextEventHorizon(state)
	return Response{
		Player:        view.Derive(u.Engine.Content, state),
		HorizonTicks:  ticks,
		HorizonActive: active,
	}, nil
}
