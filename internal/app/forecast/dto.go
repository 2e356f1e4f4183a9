package forecast

import (
	"time"

	"idleverse/internal/app/view"
	"idleverse/internal/domain/content"
	"idleverse/internal/domain/sim"
)

type GoalKind string

const (
	GoalSkillLevel GoalKind = "skill_level"
	GoalItemCount  GoalKind = "item_count"
	GoalCoins      GoalKind = "coins"
)

// Goal is a stopping condition for a what-if run: reach a skill level,
// hold an item count, or hold a coin total.
type Goal struct {
	Kind   GoalKind        `json:"kind"`
	Skill  content.SkillID `json:"skill,omitempty"`
	Item   content.ItemID  `json:"item,omitempty"`
	Target int             `json:"target"`
}

type Request struct {
	PlayerID string
	// Ticks bounds the run; with a goal it is the search ceiling.
	Ticks int
	Goal  *Goal
	Seed  *uint64
}

type Response struct {
	Player   view.PlayerView `json:"player"`
	Changes  []sim.Change    `json:"changes"`
	Reason   sim.StopReason  `json:"reason"`
	Ticks    int             `json:"ticks"`
	Duration time.Duration   `json:"duration_ns"`
	Seed     uint64          `json:"seed"`
	// Reached reports whether the goal was met within the ceiling.
	Reached bool `json:"reached"`
}

type HorizonResponse struct {
	// Active is false when no process can move the player forward.
	Active   bool          `json:"active"`
	Ticks    int           `json:"ticks"`
	Duration time.Duration `json:"duration_ns"`
}
