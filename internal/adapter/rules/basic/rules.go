// Package basicrules is the default modifier and combat-stat resolver.
// Skilling bonuses come from action mastery, combat numbers from skill
// levels plus equipment bonuses. Everything is integer percentages so
// identical state always resolves to identical numbers.
package basicrules

import (
	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
	"idleverse/internal/domain/sim"
)

// DefaultAttackTicks is the unarmed attack interval.
const DefaultAttackTicks = 40

type Rules struct {
	Content content.Registry
}

func New(registry content.Registry) Rules {
	return Rules{Content: registry}
}

// ActionModifiers grants mastery-driven bonuses: +2% skill and mastery
// XP per ten mastery levels, +1% drop doubling per five, and -5%
// duration per twenty down to -20%. Success chances are left to the
// per-action content formulas.
func (r Rules) ActionModifiers(s game.PlayerState, def content.ActionDef) sim.ActionModifiers {
	mastery := s.MasteryLevel(def.ID)

	duration := -5 * (mastery / 20)
	if duration < -20 {
		duration = -20
	}
	return sim.ActionModifiers{
		XPPct:       2 * (mastery / 10),
		MasteryPct:  2 * (mastery / 10),
		DurationPct: duration,
		DoublingPct: mastery / 5,
	}
}

// AutoEat eats at 25% of max health, stepping up 5 points per 25
// hitpoints levels. Food always heals its full value.
func (r Rules) AutoEat(s game.PlayerState) sim.AutoEatSettings {
	hp := s.Level(content.SkillHitpoints)
	return sim.AutoEatSettings{
		ThresholdPct:  25 + 5*(hp/25),
		EfficiencyPct: 100,
	}
}

// PlayerStats derives combat numbers from the style's skill level, the
// defence level and the summed equipment bonuses. The selected style
// governs even when the weapon declares its own.
func (r Rules) PlayerStats(s game.PlayerState) sim.CombatStats {
	style := s.Style
	if style == "" {
		style = content.StyleMelee
	}
	styleLevel := s.Level(style.Skill())
	defenceLevel := s.Level(content.SkillDefence)

	var bonus content.CombatBonus
	attackTicks := DefaultAttackTicks
	for slot, itemID := range s.Equipment {
		def, ok := r.Content.Item(itemID)
		if !ok {
			continue
		}
		bonus.Accuracy += def.Bonus.Accuracy
		bonus.Strength += def.Bonus.Strength
		bonus.Defence += def.Bonus.Defence
		if slot == content.SlotWeapon && def.AttackTicks > 0 {
			attackTicks = def.AttackTicks
		}
	}

	maxHit := 1 + (styleLevel*2+bonus.Strength)/5
	return sim.CombatStats{
		Accuracy:    10 + styleLevel*4 + bonus.Accuracy,
		Evasion:     10 + defenceLevel*4 + bonus.Defence,
		MinHit:      1,
		MaxHit:      maxHit,
		AttackTicks: attackTicks,
		Style:       style,
	}
}

// MonsterStats passes the definition through untouched.
func (r Rules) MonsterStats(def content.MonsterDef) sim.CombatStats {
	return sim.CombatStats{
		Accuracy:    def.Accuracy,
		Evasion:     def.Evasion,
		MinHit:      def.MinHit,
		MaxHit:      def.MaxHit,
		AttackTicks: def.AttackTicks,
		Style:       def.Style,
	}
}

var (
	_ sim.ModifierResolver = Rules{}
	_ sim.CombatCalculator = Rules{}
)
