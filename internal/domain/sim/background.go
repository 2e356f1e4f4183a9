package sim

import (
	"maps"
	"slices"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

// bgProc is one background process for the current loop iteration.
// horizon reports ticks until its next internal event and is positive
// for every proc admitted to the set; apply advances the proc by
// exactly the step the loop chose, settling any events inside it.
type bgProc struct {
	horizon func() int
	apply   func(step int)
}

// backgroundProcs builds the background set for one iteration from the
// current state. The foreground's own node or station is excluded; the
// foreground advances those itself. Sorted ids fix the order so
// identical states build identical sets.
func (e *Engine) backgroundProcs(m *Mutator) []bgProc {
	s := m.State()
	fgNode, fgStation := foregroundOwned(s)

	var procs []bgProc
	for _, id := range slices.Sorted(maps.Keys(s.Nodes)) {
		if id == fgNode {
			continue
		}
		def, ok := e.Content.Action(id)
		if !ok || def.Node == nil {
			continue
		}
		if s.Nodes[id] == (game.NodeState{}) {
			continue
		}
		procs = append(procs, e.nodeProc(m, id, def.Node))
	}
	if s.Health < s.MaxHealth() {
		procs = append(procs, e.regenProc(m))
	}
	for _, id := range slices.Sorted(maps.Keys(s.Plots)) {
		plot := s.Plots[id]
		if plot.Crop == "" || plot.Ready || plot.Remaining <= 0 {
			continue
		}
		procs = append(procs, e.plotProc(m, id))
	}
	for _, id := range slices.Sorted(maps.Keys(s.Stations)) {
		if id == fgStation {
			continue
		}
		st := s.Stations[id]
		if st.Recipe == "" {
			continue
		}
		def, ok := e.Content.Action(st.Recipe)
		if !ok {
			continue
		}
		if !stationRunnable(s, st, def) {
			continue
		}
		procs = append(procs, e.stationProc(m, id, def))
	}
	if town := e.Content.Town(); town.UpdateTicks > 0 {
		procs = append(procs, e.townProc(m, town))
	}
	return procs
}

// foregroundOwned names the node action and station the foreground is
// working, if any. Those are advanced by the foreground step, never by
// the background set.
func foregroundOwned(s game.PlayerState) (content.ActionID, content.StationID) {
	if s.Activity == nil {
		return "", ""
	}
	switch s.Activity.Kind {
	case game.ActivitySkilling:
		return s.Activity.Action, ""
	case game.ActivityPassive:
		return "", s.Activity.Station
	}
	return "", ""
}

func (e *Engine) nodeProc(m *Mutator, id content.ActionID, spec *content.NodeSpec) bgProc {
	horizon := func() int {
		node := m.State().Node(id)
		switch {
		case node.Depleted():
			return node.RespawnRemaining
		case node.LostHP > 0:
			if node.RegenRemaining > 0 {
				return node.RegenRemaining
			}
			return spec.RegenTicks
		default:
			return 0
		}
	}
	apply := func(step int) {
		node := m.State().Node(id)
		for step > 0 {
			switch {
			case node.Depleted():
				n := min(step, node.RespawnRemaining)
				node.RespawnRemaining -= n
				step -= n
				if node.RespawnRemaining == 0 {
					node = game.NodeState{}
				}
			case node.LostHP > 0:
				if node.RegenRemaining == 0 {
					node.RegenRemaining = spec.RegenTicks
				}
				n := min(step, node.RegenRemaining)
				node.RegenRemaining -= n
				step -= n
				if node.RegenRemaining == 0 {
					node.LostHP--
				}
			default:
				step = 0
			}
		}
		m.SetNode(id, node)
	}
	return bgProc{horizon: horizon, apply: apply}
}

func (e *Engine) regenProc(m *Mutator) bgProc {
	horizon := func() int {
		if m.State().Health >= m.State().MaxHealth() {
			return 0
		}
		if rem := m.State().RegenRemaining; rem > 0 {
			return rem
		}
		return RegenIntervalTicks
	}
	apply := func(step int) {
		for step > 0 {
			s := m.State()
			if s.Health >= s.MaxHealth() {
				m.SetRegenRemaining(0)
				return
			}
			rem := s.RegenRemaining
			if rem == 0 {
				rem = RegenIntervalTicks
			}
			n := min(step, rem)
			rem -= n
			step -= n
			if rem == 0 {
				m.Heal(RegenPerInterval)
			}
			m.SetRegenRemaining(rem)
		}
	}
	return bgProc{horizon: horizon, apply: apply}
}

func (e *Engine) plotProc(m *Mutator, id content.PlotID) bgProc {
	horizon := func() int {
		return m.State().Plots[id].Remaining
	}
	apply := func(step int) {
		plot := m.State().Plots[id]
		if plot.Ready || plot.Remaining <= 0 {
			return
		}
		n := min(step, plot.Remaining)
		plot.Remaining -= n
		if plot.Remaining == 0 {
			plot.Ready = true
		}
		m.SetPlot(id, plot)
	}
	return bgProc{horizon: horizon, apply: apply}
}

func (e *Engine) stationProc(m *Mutator, id content.StationID, def content.ActionDef) bgProc {
	full := def.Duration * PassiveSlowdown
	horizon := func() int {
		if rem := m.State().Stations[id].Remaining; rem > 0 {
			return rem
		}
		return full
	}
	apply := func(step int) {
		st := m.State().Stations[id]
		for step > 0 {
			if st.Remaining == 0 {
				if !stationCanStart(m.State(), def) {
					break
				}
				st.Remaining = full
			}
			n := min(step, st.Remaining)
			st.Remaining -= n
			step -= n
			// The foreground can drain the inputs mid-cycle; a cycle
			// whose inputs are gone at the boundary settles empty.
			if st.Remaining == 0 && m.State().Inventory.HasAll(def.Inputs) {
				for _, item := range slices.Sorted(maps.Keys(def.Inputs)) {
					m.RemoveItem(item, def.Inputs[item])
				}
				for _, drop := range def.Drops {
					if drop.Guaranteed() {
						m.AddItem(drop.Item, drop.Min)
					}
				}
			}
		}
		m.SetStation(id, st)
	}
	return bgProc{horizon: horizon, apply: apply}
}

// stationRunnable reports whether an unattended station would consume
// ticks: a cycle is underway, or a fresh one can afford its inputs and
// store its outputs. horizon and apply rely on the same test, so a
// station admitted to the set always makes progress.
func stationRunnable(s game.PlayerState, st game.StationState, def content.ActionDef) bool {
	if st.Remaining > 0 {
		return true
	}
	return stationCanStart(s, def)
}

func stationCanStart(s game.PlayerState, def content.ActionDef) bool {
	if !s.Inventory.HasAll(def.Inputs) {
		return false
	}
	for _, drop := range def.Drops {
		if drop.Guaranteed() && !s.Inventory.CanAdd(drop.Item) {
			return false
		}
	}
	return true
}

func (e *Engine) townProc(m *Mutator, town content.TownDef) bgProc {
	horizon := func() int {
		t := m.State().Town
		h := t.UpdateRemaining
		if h == 0 {
			h = town.UpdateTicks
		}
		if town.SeasonTicks > 0 && len(town.Seasons) > 0 {
			s := t.SeasonRemaining
			if s == 0 {
				s = town.SeasonTicks
			}
			h = min(h, s)
		}
		return h
	}
	apply := func(step int) {
		t := m.State().Town
		seasons := town.SeasonTicks > 0 && len(town.Seasons) > 0
		for step > 0 {
			if t.UpdateRemaining == 0 {
				t.UpdateRemaining = town.UpdateTicks
			}
			if seasons && t.SeasonRemaining == 0 {
				t.SeasonRemaining = town.SeasonTicks
			}
			n := min(t.UpdateRemaining, step)
			if seasons {
				n = min(n, t.SeasonRemaining)
			}
			t.UpdateRemaining -= n
			if seasons {
				t.SeasonRemaining -= n
			}
			step -= n
			// The update settles before a season flip on the same
			// tick, so income uses the season the interval ran under.
			if t.UpdateRemaining == 0 {
				t.Treasury += townProduction(town, t)
			}
			if seasons && t.SeasonRemaining == 0 {
				t.SeasonIndex = (t.SeasonIndex + 1) % len(town.Seasons)
			}
		}
		m.SetTown(t)
	}
	return bgProc{horizon: horizon, apply: apply}
}

// townProduction is one update's treasury income under the current
// season.
func townProduction(town content.TownDef, t game.TownState) int {
	pct := 100
	if len(town.Seasons) > 0 {
		pct = town.Seasons[t.SeasonIndex%len(town.Seasons)].ProductionPct
	}
	return town.BaseProduction * t.Population * pct / 100
}
