package ports

import "idleverse/internal/domain/sim"

type AdvanceMetrics interface {
	RecordAdvance(reason sim.StopReason, ticks int)
	RecordConflict()
	RecordFailure()
}
