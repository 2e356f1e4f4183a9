package advance

import (
	"idleverse/internal/app/view"
	"idleverse/internal/domain/sim"
)

type Request struct {
	PlayerID       string
	IdempotencyKey string
	Ticks          int
	// Seed pins the simulation rng; nil draws a fresh one.
	Seed *uint64
}

type Response struct {
	Player  view.PlayerView `json:"player"`
	Changes []sim.Change    `json:"changes"`
	Reason  sim.StopReason  `json:"reason"`
	Ticks   int             `json:"ticks"`
	Seed    uint64          `json:"seed"`
	BatchID string          `json:"batch_id"`
}
