package activity

import (
	"errors"
	"fmt"

	"idleverse/internal/domain/content"
)

// Precondition failures. Requests failing a precheck mutate nothing.
var (
	ErrInvalidRequest    = errors.New("invalid activity request")
	ErrStunned           = errors.New("player is stunned")
	ErrLevelTooLow       = errors.New("skill level too low")
	ErrMissingInput      = errors.New("required items missing")
	ErrSlotMismatch      = errors.New("item cannot be equipped")
	ErrNotFood           = errors.New("item heals nothing")
	ErrInventoryFull     = errors.New("inventory full")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrPlotOccupied      = errors.New("plot already in use")
	ErrPlotNotReady      = errors.New("plot not ready for harvest")
	ErrNoRecipe          = errors.New("station has no recipe assigned")
	ErrNotStationRecipe  = errors.New("action cannot run on a station")
	ErrBadCourse         = errors.New("invalid obstacle course")
)

type LevelError struct {
	Skill content.SkillID
	Need  int
	Have  int
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("%s level %d required, have %d", e.Skill, e.Need, e.Have)
}

func (e *LevelError) Unwrap() error { return ErrLevelTooLow }

type InputError struct {
	Item content.ItemID
	Need int
	Have int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("need %d %s, have %d", e.Need, e.Item, e.Have)
}

func (e *InputError) Unwrap() error { return ErrMissingInput }

type CourseError struct {
	Reason string
}

func (e *CourseError) Error() string { return "invalid obstacle course: " + e.Reason }

func (e *CourseError) Unwrap() error { return ErrBadCourse }
