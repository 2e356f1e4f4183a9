package sim

import (
	"errors"
	"fmt"
)

// StopReason reports why an advance invocation stopped consuming ticks.
type StopReason string

const (
	// StopMaxTicks means the tick budget ran out with work still pending.
	StopMaxTicks StopReason = "max_ticks_reached"
	// StopNoProgress means nothing in the state can consume ticks.
	StopNoProgress StopReason = "no_progress_possible"
	// StopInventoryFull means a produced item could not be stored.
	StopInventoryFull StopReason = "inventory_full"
	// StopOutOfInputs means the active action could not afford its inputs.
	StopOutOfInputs StopReason = "out_of_inputs"
	// StopDied means the player's health reached zero.
	StopDied StopReason = "died"
	// StopTaskComplete means a finite activity ran to its natural end.
	StopTaskComplete StopReason = "task_complete"
	// StopPredicateMet means an AdvanceUntil predicate was satisfied.
	StopPredicateMet StopReason = "predicate_met"
)

var (
	ErrNegativeTicks = errors.New("negative tick budget")
	ErrNilRandom     = errors.New("nil random source")
	ErrNotConfigured = errors.New("engine missing collaborator")

	// ErrUnknownContent is wrapped by UnknownContentError.
	ErrUnknownContent = errors.New("unknown content reference")
	// ErrMalformedState is wrapped by MalformedStateError.
	ErrMalformedState = errors.New("malformed player state")
)

// UnknownContentError reports a state field referencing a content id the
// registry does not define.
type UnknownContentError struct {
	Kind string
	ID   string
}

func (e *UnknownContentError) Error() string {
	return fmt.Sprintf("unknown content reference: %s %q", e.Kind, e.ID)
}

func (e *UnknownContentError) Unwrap() error { return ErrUnknownContent }

// MalformedStateError reports a state field holding a value the engine
// cannot advance from, such as a negative countdown.
type MalformedStateError struct {
	Field  string
	Reason string
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed player state: %s: %s", e.Field, e.Reason)
}

func (e *MalformedStateError) Unwrap() error { return ErrMalformedState }
