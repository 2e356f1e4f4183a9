// Package game defines the persistent world state of one player. The
// state is a value: the simulation never mutates a snapshot in place,
// every advancement produces a new one sharing unmodified sections.
package game

import (
	"time"

	"idleverse/internal/domain/content"
)

const DefaultTownPopulation = 5

type PlayerState struct {
	PlayerID        string                               `json:"player_id"`
	Inventory       Inventory                            `json:"inventory"`
	Coins           int                                  `json:"coins"`
	SkillXP         map[content.SkillID]int              `json:"skill_xp"`
	Actions         map[content.ActionID]ActionProgress  `json:"actions,omitempty"`
	Activity        *Activity                            `json:"activity,omitempty"`
	Health          int                                  `json:"health"`
	RegenRemaining  int                                  `json:"regen_remaining,omitempty"`
	StunTicks       int                                  `json:"stun_ticks,omitempty"`
	Equipment       map[content.EquipSlot]content.ItemID `json:"equipment,omitempty"`
	SelectedFood    content.ItemID                       `json:"selected_food,omitempty"`
	Style           content.AttackStyle                  `json:"style,omitempty"`
	Nodes           map[content.ActionID]NodeState       `json:"nodes,omitempty"`
	Plots           map[content.PlotID]PlotState         `json:"plots,omitempty"`
	Stations        map[content.StationID]StationState   `json:"stations,omitempty"`
	CourseObstacles []content.ObstacleID                 `json:"course_obstacles,omitempty"`
	Town            TownState                            `json:"town"`
	Version         int64                                `json:"version"`
	UpdatedAt       time.Time                            `json:"updated_at"`
}

// ActionProgress is created lazily on first use and never deleted.
// Absence means the action was never performed.
type ActionProgress struct {
	MasteryXP int `json:"mastery_xp"`
}

// NodeState tracks a depletable resource node. A node is either healthy
// (RespawnRemaining zero, LostHP regenerating) or depleted (respawn
// counting down), never both. The zero value is a full, idle node.
type NodeState struct {
	LostHP           int `json:"lost_hp,omitempty"`
	RespawnRemaining int `json:"respawn_remaining,omitempty"`
	RegenRemaining   int `json:"regen_remaining,omitempty"`
}

func (n NodeState) Depleted() bool { return n.RespawnRemaining > 0 }

func (n NodeState) Idle() bool { return n == NodeState{} }

type PlotState struct {
	Crop      content.CropID `json:"crop,omitempty"`
	Remaining int            `json:"remaining,omitempty"`
	Ready     bool           `json:"ready,omitempty"`
}

// StationState is a secondary production station. Recipe empty means
// unassigned; Remaining zero with a recipe means idle pending inputs.
type StationState struct {
	Recipe    content.ActionID `json:"recipe,omitempty"`
	Remaining int              `json:"remaining,omitempty"`
}

type TownState struct {
	SeasonIndex     int `json:"season_index"`
	SeasonRemaining int `json:"season_remaining,omitempty"`
	UpdateRemaining int `json:"update_remaining,omitempty"`
	Treasury        int `json:"treasury"`
	Population      int `json:"population"`
}

func NewPlayerState(playerID string, inventoryCapacity int) PlayerState {
	return PlayerState{
		PlayerID:  playerID,
		Inventory: Inventory{Capacity: inventoryCapacity, Items: map[content.ItemID]int{}},
		SkillXP:   map[content.SkillID]int{content.SkillHitpoints: XPForLevel(10)},
		Health:    MaxHealthForLevel(10),
		Town:      TownState{Population: DefaultTownPopulation},
		Version:   1,
	}
}

func (s PlayerState) Level(skill content.SkillID) int {
	return LevelForXP(s.SkillXP[skill])
}

func (s PlayerState) MasteryLevel(action content.ActionID) int {
	return LevelForXP(s.Actions[action].MasteryXP)
}

func (s PlayerState) MaxHealth() int {
	return MaxHealthForLevel(s.Level(content.SkillHitpoints))
}

func (s PlayerState) Stunned() bool { return s.StunTicks > 0 }

// Node returns the tracked state for a gathering action's node. The zero
// value stands in for a node never touched.
func (s PlayerState) Node(action content.ActionID) NodeState {
	return s.Nodes[action]
}
