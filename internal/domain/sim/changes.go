package sim

import "idleverse/internal/domain/content"

// ChangeKind tags one semantic entry in the change log.
type ChangeKind string

const (
	ChangeItemGained      ChangeKind = "item_gained"
	ChangeItemDropped     ChangeKind = "item_dropped"
	ChangeItemLost        ChangeKind = "item_lost"
	ChangeCoinsGained     ChangeKind = "coins_gained"
	ChangeLevelUp         ChangeKind = "level_up"
	ChangeMasteryUp       ChangeKind = "mastery_up"
	ChangeFoodEaten       ChangeKind = "food_eaten"
	ChangeMonsterDefeated ChangeKind = "monster_defeated"
	ChangeDeath           ChangeKind = "death"
	ChangeDiscovery       ChangeKind = "discovery"
)

// Change is one observable event produced while advancing. Tick is the
// offset from the start of the invocation at which the change was
// recorded. Only the fields relevant to the kind are set.
type Change struct {
	Kind    ChangeKind        `json:"kind"`
	Tick    int               `json:"tick"`
	Item    content.ItemID    `json:"item,omitempty"`
	Skill   content.SkillID   `json:"skill,omitempty"`
	Action  content.ActionID  `json:"action,omitempty"`
	Monster content.MonsterID `json:"monster,omitempty"`
	Amount  int               `json:"amount,omitempty"`
	Level   int               `json:"level,omitempty"`
}
