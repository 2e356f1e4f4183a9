package sim

import (
	"maps"
	"math/rand/v2"
	"slices"
)

// stepPassive advances the station the player is attending. Passive
// cycles run at PassiveSlowdown times the base duration and settle with
// base outputs only; rng goes unused because passive work rolls
// nothing.
func (e *Engine) stepPassive(m *Mutator, budget int, _ *rand.Rand) (int, bool) {
	act := m.State().Activity
	st := m.State().Stations[act.Station]
	def, _ := e.Content.Action(st.Recipe)

	if st.Remaining == 0 {
		if !m.State().Inventory.HasAll(def.Inputs) {
			m.StopActivity(StopOutOfInputs)
			return 0, true
		}
		st.Remaining = def.Duration * PassiveSlowdown
	}
	step := min(st.Remaining, budget)
	m.advanceTick(step)
	st.Remaining -= step
	m.SetStation(act.Station, st)
	if st.Remaining > 0 {
		return step, false
	}

	// A background station sharing the inventory can drain the inputs
	// while this cycle runs, so re-check before consuming.
	if !m.State().Inventory.HasAll(def.Inputs) {
		m.StopActivity(StopOutOfInputs)
		return step, true
	}
	for _, item := range slices.Sorted(maps.Keys(def.Inputs)) {
		m.RemoveItem(item, def.Inputs[item])
	}
	rejected := false
	for _, drop := range def.Drops {
		if !drop.Guaranteed() {
			continue
		}
		if !m.AddItem(drop.Item, drop.Min) {
			rejected = true
		}
	}
	if rejected {
		m.StopActivity(StopInventoryFull)
		return step, true
	}
	return step, false
}
