package inmemory

import (
	"sync"

	"idleverse/internal/domain/sim"
)

type Snapshot struct {
	AdvanceTotal    uint64            `json:"advance_total"`
	AdvanceApplied  uint64            `json:"advance_applied"`
	AdvanceConflict uint64            `json:"advance_conflict"`
	AdvanceFailure  uint64            `json:"advance_failure"`
	TicksSimulated  uint64            `json:"ticks_simulated"`
	ByStopReason    map[string]uint64 `json:"by_stop_reason"`
}

type Recorder struct {
	mu       sync.Mutex
	applied  uint64
	conflict uint64
	failure  uint64
	ticks    uint64
	byReason map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byReason: map[string]uint64{},
	}
}

func (r *Recorder) RecordAdvance(reason sim.StopReason, ticks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied++
	r.byReason[string(reason)]++
	if ticks > 0 {
		r.ticks += uint64(ticks)
	}
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		AdvanceApplied:  r.applied,
		AdvanceConflict: r.conflict,
		AdvanceFailure:  r.failure,
		AdvanceTotal:    r.applied + r.conflict + r.failure,
		TicksSimulated:  r.ticks,
		ByStopReason:    make(map[string]uint64, len(r.byReason)),
	}
	for k, v := range r.byReason {
		out.ByStopReason[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
