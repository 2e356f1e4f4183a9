// Package changelog lists the change batches recorded by past advances so a
// player can see what happened while they were away.
package changelog

import (
	"context"
	"errors"
	"strings"

	"idleverse/internal/app/ports"
	"idleverse/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid changelog request")

const (
	defaultLimit = 50
	maxLimit     = 500
)

type UseCase struct {
	ChangeLog ports.ChangeLogRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		return Response{}, ErrInvalidRequest
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	batches, err := u.ChangeLog.ListByPlayerID(ctx, playerID, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Batches: batches, Totals: tally(batches)}, nil
}

// tally counts change entries per kind across the returned window.
func tally(batches []ports.ChangeBatch) map[sim.ChangeKind]int {
	totals := make(map[sim.ChangeKind]int)
	for _, b := range batches {
		for _, c := range b.Changes {
			totals[c.Kind]++
		}
	}
	return totals
}
