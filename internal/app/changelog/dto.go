package changelog

import (
	"idleverse/internal/app/ports"
	"idleverse/internal/domain/sim"
)

type Request struct {
	PlayerID string
	// Limit caps how many recent batches are returned. Zero means the
	// default window; values above the cap are clamped.
	Limit int
}

type Response struct {
	Batches []ports.ChangeBatch    `json:"batches"`
	Totals  map[sim.ChangeKind]int `json:"totals"`
}
