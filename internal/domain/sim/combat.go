package sim

import (
	"maps"
	"math/rand/v2"
	"slices"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

// stepCombat advances the active combat task by at most budget ticks:
// part of a spawn countdown, or the shared run-down of both attack
// timers plus whatever fires at the boundary. When both attacks land on
// the same tick the player's resolves first.
func (e *Engine) stepCombat(m *Mutator, budget int, rng *rand.Rand) (int, bool) {
	a := m.State().Activity.Clone()
	area, _ := e.Content.Area(a.Area)

	if a.Encounter == nil {
		monID := area.Monsters[0]
		mon, _ := e.Content.Monster(monID)
		a.Encounter = &game.Encounter{
			Monster:        monID,
			MonsterHP:      mon.HP,
			SpawnRemaining: area.SpawnTicks,
		}
		if a.Encounter.SpawnRemaining == 0 {
			e.engage(m, a.Encounter)
		}
		m.SetActivity(a)
	}

	enc := a.Encounter
	if enc.SpawnRemaining > 0 {
		step := min(enc.SpawnRemaining, budget)
		m.advanceTick(step)
		enc.SpawnRemaining -= step
		if enc.SpawnRemaining == 0 {
			e.engage(m, enc)
		}
		m.SetActivity(a)
		return step, false
	}

	step := min(enc.PlayerAttack, enc.MonsterAttack, budget)
	m.advanceTick(step)
	enc.PlayerAttack -= step
	enc.MonsterAttack -= step
	playerFires := enc.PlayerAttack == 0
	monsterFires := enc.MonsterAttack == 0
	if !playerFires && !monsterFires {
		m.SetActivity(a)
		return step, false
	}

	if playerFires {
		killed, stopped := e.resolvePlayerAttack(m, a, area, rng)
		if stopped {
			return step, true
		}
		if killed {
			monsterFires = false
		}
	}
	if monsterFires {
		if e.resolveMonsterAttack(m, a, rng) {
			return step, true
		}
	}
	m.SetActivity(a)
	return step, false
}

// engage arms both attack timers once a spawn countdown ends.
func (e *Engine) engage(m *Mutator, enc *game.Encounter) {
	mon, _ := e.Content.Monster(enc.Monster)
	ps := e.Combat.PlayerStats(m.State())
	ms := e.Combat.MonsterStats(mon)
	enc.PlayerAttack = atLeastOne(ps.AttackTicks)
	enc.MonsterAttack = atLeastOne(ms.AttackTicks)
}

// resolvePlayerAttack rolls the player's attack and, on a kill, awards
// loot and moves the area sequence along. killed reports the monster
// died; stopped reports the whole task ended.
func (e *Engine) resolvePlayerAttack(m *Mutator, a *game.Activity, area content.AreaDef, rng *rand.Rand) (killed, stopped bool) {
	enc := a.Encounter
	mon, _ := e.Content.Monster(enc.Monster)
	ps := e.Combat.PlayerStats(m.State())
	ms := e.Combat.MonsterStats(mon)

	dmg := rollAttack(ps, ms, rng)
	enc.PlayerAttack = atLeastOne(ps.AttackTicks)
	if dmg > 0 {
		if dmg > enc.MonsterHP {
			dmg = enc.MonsterHP
		}
		enc.MonsterHP -= dmg
		m.GrantSkillXP(ps.Style.Skill(), 4*dmg, 0)
		m.GrantSkillXP(content.SkillHitpoints, 4*dmg/3, 0)
	}
	if enc.MonsterHP > 0 {
		return false, false
	}

	m.push(Change{Kind: ChangeMonsterDefeated, Monster: enc.Monster, Amount: 1})
	m.AddCoins(rollRange(mon.CoinsMin, mon.CoinsMax, rng))
	for _, drop := range mon.Drops {
		if !drop.Guaranteed() && !percentRoll(rng, drop.Chance) {
			continue
		}
		// Loot that does not fit is dropped; combat itself keeps going.
		m.AddItem(drop.Item, rollRange(drop.Min, drop.Max, rng))
	}

	next := enc.SequenceIndex + 1
	if next >= len(area.Monsters) {
		if !area.Loop {
			m.StopActivity(StopTaskComplete)
			return true, true
		}
		next = 0
	}
	nextID := area.Monsters[next]
	nextMon, _ := e.Content.Monster(nextID)
	a.Encounter = &game.Encounter{
		Monster:        nextID,
		MonsterHP:      nextMon.HP,
		SpawnRemaining: area.SpawnTicks,
		SequenceIndex:  next,
	}
	if a.Encounter.SpawnRemaining == 0 {
		e.engage(m, a.Encounter)
	}
	return true, false
}

// resolveMonsterAttack rolls the monster's attack into the player.
// Reports true when the hit killed the player.
func (e *Engine) resolveMonsterAttack(m *Mutator, a *game.Activity, rng *rand.Rand) bool {
	enc := a.Encounter
	mon, _ := e.Content.Monster(enc.Monster)
	ps := e.Combat.PlayerStats(m.State())
	ms := e.Combat.MonsterStats(mon)

	dmg := rollAttack(ms, ps, rng)
	enc.MonsterAttack = atLeastOne(ms.AttackTicks)
	if dmg > 0 && e.hurtPlayer(m, dmg, rng) {
		return true
	}
	return false
}

// rollAttack rolls one attack of att against def: a hit roll, then a
// uniform damage roll scaled by the style triangle. Zero means a miss;
// a landed hit deals at least one point.
func rollAttack(att, def CombatStats, rng *rand.Rand) int {
	if !rollHit(att.Accuracy, def.Evasion, rng) {
		return 0
	}
	dmg := rollRange(att.MinHit, att.MaxHit, rng)
	switch att.Style.BeatsBy(def.Style) {
	case 1:
		dmg = dmg * 5 / 4
	case -1:
		dmg = dmg * 4 / 5
	}
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// rollHit draws once regardless of the odds so identical seeds walk
// identical random streams. At or below equal accuracy the chance is
// acc/(2*eva); above, 1 - eva/(2*acc). Zero evasion never evades.
func rollHit(accuracy, evasion int, rng *rand.Rand) bool {
	if accuracy <= 0 {
		rng.Float64()
		return false
	}
	var p float64
	if accuracy > evasion {
		p = 1 - float64(evasion)/(2*float64(accuracy))
	} else {
		p = float64(accuracy) / (2 * float64(evasion))
	}
	return rng.Float64() < p
}

// hurtPlayer applies damage, lets the selected food answer it, and
// settles death. Reports true when the player died; the death already
// stopped the activity.
func (e *Engine) hurtPlayer(m *Mutator, dmg int, rng *rand.Rand) bool {
	m.Damage(dmg)
	auto := e.Modifiers.AutoEat(m.State())
	threshold := m.State().MaxHealth() * auto.ThresholdPct / 100
	for m.State().Health <= threshold && m.State().Health < m.State().MaxHealth() {
		if !m.EatSelectedFood(auto.EfficiencyPct) {
			break
		}
	}
	if m.State().Health > 0 {
		return false
	}
	e.killPlayer(m, rng)
	return true
}

// killPlayer settles a death: one random equipped item is lost, health
// comes back in full, and whatever was running stops.
func (e *Engine) killPlayer(m *Mutator, rng *rand.Rand) {
	m.MarkDeath()
	slots := slices.Sorted(maps.Keys(m.State().Equipment))
	if len(slots) > 0 {
		m.LoseEquipped(slots[rng.IntN(len(slots))])
	}
	m.RestoreFullHealth()
	m.StopActivity(StopDied)
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
