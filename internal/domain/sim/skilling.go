package sim

import (
	"maps"
	"math/rand/v2"
	"slices"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

// stepSkilling advances the active skilling action by at most budget
// ticks. It consumes either a respawn block on a depleted node, part of
// the current cycle, or the remainder of the cycle plus its resolution.
func (e *Engine) stepSkilling(m *Mutator, budget int, rng *rand.Rand) (int, bool) {
	act := m.State().Activity
	def, _ := e.Content.Action(act.Action)

	// A depleted node blocks the gatherer until it respawns.
	if def.Node != nil {
		node := m.State().Node(act.Action)
		if node.Depleted() {
			step := min(node.RespawnRemaining, budget)
			m.advanceTick(step)
			node.RespawnRemaining -= step
			if node.RespawnRemaining == 0 {
				node = game.NodeState{}
			}
			m.SetNode(act.Action, node)
			return step, false
		}
	}

	a := act.Clone()
	if a.Remaining == 0 {
		mods := e.Modifiers.ActionModifiers(m.State(), def)
		a.Remaining = cycleTicks(def.Duration, mods.DurationPct)
	}
	step := min(a.Remaining, budget)
	m.advanceTick(step)
	a.Remaining -= step
	m.SetActivity(a)
	if a.Remaining > 0 {
		return step, false
	}
	return step, e.resolveSkillingCycle(m, def, rng)
}

// resolveSkillingCycle settles one completed cycle: consume inputs,
// roll the outcome, bank outputs and XP, then decide whether the next
// cycle can start. Reports true when the activity stopped.
func (e *Engine) resolveSkillingCycle(m *Mutator, def content.ActionDef, rng *rand.Rand) bool {
	// A station sharing the inventory can drain inputs mid-cycle, so
	// re-check before consuming.
	if len(def.Inputs) > 0 {
		if !m.State().Inventory.HasAll(def.Inputs) {
			m.StopActivity(StopOutOfInputs)
			return true
		}
		for _, item := range slices.Sorted(maps.Keys(def.Inputs)) {
			m.RemoveItem(item, def.Inputs[item])
		}
	}

	mods := e.Modifiers.ActionModifiers(m.State(), def)
	mastery := m.State().MasteryLevel(def.ID)

	success := true
	perfect := false
	switch def.Kind {
	case content.KindThieving:
		success = percentRoll(rng, riskSuccessChance(def.Risk, mastery, mods))
	case content.KindCooking:
		success = percentRoll(rng, cookSuccessChance(def.Cook, mastery, mods))
		if success && def.Cook.PerfectItem != "" {
			perfect = percentRoll(rng, perfectChance(def.Cook, mastery))
		}
	}

	if !success {
		if e.resolveSkillingFailure(m, def, rng) {
			return true
		}
	} else {
		rejected := false
		for _, drop := range def.Drops {
			if !drop.Guaranteed() && !percentRoll(rng, drop.Chance) {
				continue
			}
			qty := rollRange(drop.Min, drop.Max, rng)
			if mods.DoublingPct > 0 && percentRoll(rng, mods.DoublingPct) {
				qty *= 2
			}
			item := drop.Item
			if perfect && drop.Guaranteed() {
				item = def.Cook.PerfectItem
			}
			if !m.AddItem(item, qty) {
				rejected = true
			}
		}
		if def.Rare != nil && percentRoll(rng, def.Rare.Chance) {
			if !m.Discover(def.Rare.Item) {
				rejected = true
			}
		}

		m.GrantSkillXP(def.Skill, def.XP, mods.XPPct)
		m.GrantMasteryXP(def.ID, def.MasteryXP, mods.MasteryPct)

		if def.Node != nil {
			e.damageNode(m, def)
		}
		if rejected {
			m.StopActivity(StopInventoryFull)
			return true
		}
	}

	// The next cycle starts only if its inputs are already banked.
	if len(def.Inputs) > 0 && !m.State().Inventory.HasAll(def.Inputs) {
		m.StopActivity(StopOutOfInputs)
		return true
	}
	return false
}

// resolveSkillingFailure settles a failed thieve or cook. Reports true
// when the failure killed the player.
func (e *Engine) resolveSkillingFailure(m *Mutator, def content.ActionDef, rng *rand.Rand) bool {
	switch def.Kind {
	case content.KindCooking:
		if def.Cook.BurntItem != "" {
			m.AddItem(def.Cook.BurntItem, 1)
		}
		m.GrantSkillXP(def.Skill, TokenXP, 0)
	case content.KindThieving:
		dmg := rollRange(def.Risk.DamageMin, def.Risk.DamageMax, rng)
		if e.hurtPlayer(m, dmg, rng) {
			return true
		}
		m.Stun(def.Risk.StunTicks)
	}
	return false
}

// damageNode applies one completion's wear and flips the node into
// respawn once its health is gone. Starting regen resets on depletion.
func (e *Engine) damageNode(m *Mutator, def content.ActionDef) {
	node := m.State().Node(def.ID)
	node.LostHP += NodeDamagePerCompletion
	if node.LostHP >= def.Node.HP {
		node.LostHP = def.Node.HP
		node.RespawnRemaining = def.Node.RespawnTicks
		node.RegenRemaining = 0
	} else if node.RegenRemaining == 0 {
		node.RegenRemaining = def.Node.RegenTicks
	}
	m.SetNode(def.ID, node)
}

// cycleTicks scales a base duration by an additive percentage, never
// below one tick.
func cycleTicks(base, pct int) int {
	d := base * (100 + pct) / 100
	if d < 1 {
		d = 1
	}
	return d
}

func riskSuccessChance(risk *content.RiskSpec, mastery int, mods ActionModifiers) int {
	return clampPct(risk.SuccessBase+mastery*risk.SuccessPerMastery+mods.SuccessPct, 100)
}

func cookSuccessChance(cook *content.CookSpec, mastery int, mods ActionModifiers) int {
	top := cook.SuccessCap + mods.SuccessCapPct
	if top > 100 {
		top = 100
	}
	return clampPct(cook.SuccessBase+mastery*cook.SuccessPerMastery+mods.SuccessPct, top)
}

func perfectChance(cook *content.CookSpec, mastery int) int {
	return clampPct(cook.PerfectBase+mastery*cook.PerfectPerMastery, 100)
}

func clampPct(p, top int) int {
	if top < 0 {
		top = 0
	}
	if p < 0 {
		return 0
	}
	if p > top {
		return top
	}
	return p
}
