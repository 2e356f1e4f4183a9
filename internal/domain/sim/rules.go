package sim

import (
	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

// ActionModifiers are the percentage adjustments applied to one action
// for one player. All fields are additive percentages; zero values leave
// the base numbers untouched.
type ActionModifiers struct {
	XPPct         int
	MasteryPct    int
	DurationPct   int
	DoublingPct   int
	SuccessPct    int
	SuccessCapPct int
}

// AutoEatSettings control healing from the selected food after damage.
// ThresholdPct is the fraction of max health at or below which food is
// eaten; EfficiencyPct scales each item's heal value.
type AutoEatSettings struct {
	ThresholdPct  int
	EfficiencyPct int
}

// CombatStats are the resolved numbers one combatant attacks and
// defends with.
type CombatStats struct {
	Accuracy    int
	Evasion     int
	MinHit      int
	MaxHit      int
	AttackTicks int
	Style       content.AttackStyle
}

// ModifierResolver derives per-action modifiers and auto-eat settings
// from the player's current state. Implementations must be pure:
// identical state yields identical answers.
type ModifierResolver interface {
	ActionModifiers(s game.PlayerState, def content.ActionDef) ActionModifiers
	AutoEat(s game.PlayerState) AutoEatSettings
}

// CombatCalculator turns a player state or monster definition into the
// stats combat rolls run on. Implementations must be pure.
type CombatCalculator interface {
	PlayerStats(s game.PlayerState) CombatStats
	MonsterStats(def content.MonsterDef) CombatStats
}
