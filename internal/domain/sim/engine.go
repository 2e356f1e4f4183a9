// Package sim advances player state through simulated time.
//
// The engine is a pure function of its inputs: it never mutates the
// state it is given, performs no I/O, and reads no clocks. Time moves
// in an event-horizon loop. Each iteration finds the next tick at which
// anything resolves, jumps the whole world there in one step, settles
// the events at that boundary, and repeats until the budget runs out or
// nothing can progress. Identical inputs produce identical outputs, and
// a million idle ticks cost a handful of iterations rather than a
// million.
//
// Randomness is drawn in a fixed order so equal seeds walk equal
// streams: a skilling completion rolls success, then perfect, then each
// drop's chance, quantity and doubling, then the rare find; a combat
// resolution rolls the attacker's hit then damage, and on a kill the
// coins then each drop; a course completion rolls coins, and the next
// obstacle's duration is rolled when it starts. Background processes
// draw nothing.
package sim

import (
	"maps"
	"math/rand/v2"
	"slices"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

// Engine advances player state. All three collaborators are required.
type Engine struct {
	Content   content.Registry
	Modifiers ModifierResolver
	Combat    CombatCalculator
}

// Result is the outcome of one advance invocation. State is a fresh
// value; the input state is untouched. Ticks is how many of the budget
// were consumed, and Changes lists what happened, in order, stamped
// with tick offsets from the start of the invocation.
type Result struct {
	State   game.PlayerState
	Changes []Change
	Reason  StopReason
	Ticks   int
}

// Advance consumes up to ticks ticks of simulated time.
func (e *Engine) Advance(s game.PlayerState, ticks int, rng *rand.Rand) (Result, error) {
	return e.run(s, ticks, nil, rng)
}

// AdvanceUntil advances like Advance but stops at the first event
// boundary where pred holds. The predicate is evaluated between events,
// never inside one, and maxTicks bounds the search.
func (e *Engine) AdvanceUntil(s game.PlayerState, pred func(game.PlayerState) bool, rng *rand.Rand, maxTicks int) (Result, error) {
	return e.run(s, maxTicks, pred, rng)
}

func (e *Engine) run(s game.PlayerState, budget int, pred func(game.PlayerState) bool, rng *rand.Rand) (Result, error) {
	if e.Content == nil || e.Modifiers == nil || e.Combat == nil {
		return Result{}, ErrNotConfigured
	}
	if budget < 0 {
		return Result{}, ErrNegativeTicks
	}
	if rng == nil {
		return Result{}, ErrNilRandom
	}
	if err := e.validateState(s); err != nil {
		return Result{}, err
	}

	m := NewMutator(e.Content, s)
	fallback := StopNoProgress
	for {
		if pred != nil && pred(m.State()) {
			fallback = StopPredicateMet
			break
		}
		left := budget - m.Tick()
		if left == 0 {
			if m.Tick() > 0 {
				fallback = StopMaxTicks
			}
			break
		}

		// Stun freezes the whole world; only the stun itself elapses.
		if stun := m.State().StunTicks; stun > 0 {
			step := min(stun, left)
			m.advanceTick(step)
			m.TickStun(step)
			continue
		}

		procs := e.backgroundProcs(m)
		var step int
		if m.State().Activity != nil {
			step, _ = e.stepForeground(m, left, rng)
		} else {
			h := 0
			for _, p := range procs {
				if ph := p.horizon(); ph > 0 && (h == 0 || ph < h) {
					h = ph
				}
			}
			if h == 0 {
				break
			}
			step = min(h, left)
			m.advanceTick(step)
		}
		for _, p := range procs {
			p.apply(step)
		}
	}

	reason := m.Reason()
	if reason == "" {
		reason = fallback
	}
	return Result{State: m.State(), Changes: m.Changes(), Reason: reason, Ticks: m.Tick()}, nil
}

// stepForeground advances the active activity by at most budget ticks.
// A true second return means the activity stopped; the reason is
// already recorded on the mutator.
func (e *Engine) stepForeground(m *Mutator, budget int, rng *rand.Rand) (int, bool) {
	switch m.State().Activity.Kind {
	case game.ActivitySkilling:
		return e.stepSkilling(m, budget, rng)
	case game.ActivityCombat:
		return e.stepCombat(m, budget, rng)
	case game.ActivityCourse:
		return e.stepCourse(m, budget, rng)
	case game.ActivityPassive:
		return e.stepPassive(m, budget, rng)
	}
	return 0, false
}

// NextEventHorizon reports the ticks until the next event would
// resolve, without advancing anything. ok is false when nothing is
// pending. For a countdown not yet rolled it reports the earliest
// boundary the roll could produce.
func (e *Engine) NextEventHorizon(s game.PlayerState) (int, bool) {
	if e.Content == nil || e.Modifiers == nil || e.Combat == nil {
		return 0, false
	}
	if e.validateState(s) != nil {
		return 0, false
	}
	if s.StunTicks > 0 {
		return s.StunTicks, true
	}
	m := NewMutator(e.Content, s)
	h := 0
	merge := func(n int) {
		if n > 0 && (h == 0 || n < h) {
			h = n
		}
	}
	if s.Activity != nil {
		merge(e.foregroundHorizon(m))
	}
	for _, p := range e.backgroundProcs(m) {
		merge(p.horizon())
	}
	return h, h > 0
}

func (e *Engine) foregroundHorizon(m *Mutator) int {
	s := m.State()
	a := s.Activity
	switch a.Kind {
	case game.ActivitySkilling:
		def, _ := e.Content.Action(a.Action)
		if def.Node != nil {
			if node := s.Node(a.Action); node.Depleted() {
				return node.RespawnRemaining
			}
		}
		if a.Remaining > 0 {
			return a.Remaining
		}
		mods := e.Modifiers.ActionModifiers(s, def)
		return cycleTicks(def.Duration, mods.DurationPct)
	case game.ActivityCombat:
		if a.Encounter == nil {
			area, _ := e.Content.Area(a.Area)
			return atLeastOne(area.SpawnTicks)
		}
		if a.Encounter.SpawnRemaining > 0 {
			return a.Encounter.SpawnRemaining
		}
		return atLeastOne(min(a.Encounter.PlayerAttack, a.Encounter.MonsterAttack))
	case game.ActivityCourse:
		if a.Remaining > 0 {
			return a.Remaining
		}
		def, _ := e.Content.Obstacle(s.CourseObstacles[a.ObstacleIndex])
		return atLeastOne(def.DurationMin)
	case game.ActivityPassive:
		st := s.Stations[a.Station]
		if st.Remaining > 0 {
			return st.Remaining
		}
		def, _ := e.Content.Action(st.Recipe)
		if !s.Inventory.HasAll(def.Inputs) {
			return 0
		}
		return def.Duration * PassiveSlowdown
	}
	return 0
}

// validateState rejects states the loop cannot advance from: dangling
// content references and countdowns or totals that went negative.
// Checks run in sorted key order so the first error is deterministic.
func (e *Engine) validateState(s game.PlayerState) error {
	if s.Health < 0 {
		return &MalformedStateError{Field: "health", Reason: "negative"}
	}
	if s.StunTicks < 0 {
		return &MalformedStateError{Field: "stunTicks", Reason: "negative"}
	}
	if s.Coins < 0 {
		return &MalformedStateError{Field: "coins", Reason: "negative"}
	}
	if s.Inventory.Capacity < 0 {
		return &MalformedStateError{Field: "inventory.capacity", Reason: "negative"}
	}
	for _, item := range slices.Sorted(maps.Keys(s.Inventory.Items)) {
		if _, ok := e.Content.Item(item); !ok {
			return &UnknownContentError{Kind: "item", ID: string(item)}
		}
		if s.Inventory.Items[item] < 0 {
			return &MalformedStateError{Field: "inventory." + string(item), Reason: "negative count"}
		}
	}
	for _, skill := range slices.Sorted(maps.Keys(s.SkillXP)) {
		if _, ok := e.Content.Skill(skill); !ok {
			return &UnknownContentError{Kind: "skill", ID: string(skill)}
		}
		if s.SkillXP[skill] < 0 {
			return &MalformedStateError{Field: "skillXP." + string(skill), Reason: "negative"}
		}
	}
	for _, action := range slices.Sorted(maps.Keys(s.Actions)) {
		if _, ok := e.Content.Action(action); !ok {
			return &UnknownContentError{Kind: "action", ID: string(action)}
		}
		if s.Actions[action].MasteryXP < 0 {
			return &MalformedStateError{Field: "actions." + string(action), Reason: "negative mastery"}
		}
	}
	for _, slot := range slices.Sorted(maps.Keys(s.Equipment)) {
		if _, ok := e.Content.Item(s.Equipment[slot]); !ok {
			return &UnknownContentError{Kind: "item", ID: string(s.Equipment[slot])}
		}
	}
	if s.SelectedFood != "" {
		if _, ok := e.Content.Item(s.SelectedFood); !ok {
			return &UnknownContentError{Kind: "item", ID: string(s.SelectedFood)}
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.Nodes)) {
		def, ok := e.Content.Action(id)
		if !ok || def.Node == nil {
			return &UnknownContentError{Kind: "node action", ID: string(id)}
		}
		node := s.Nodes[id]
		if node.LostHP < 0 || node.RespawnRemaining < 0 || node.RegenRemaining < 0 {
			return &MalformedStateError{Field: "nodes." + string(id), Reason: "negative countdown"}
		}
		if node.LostHP > def.Node.HP {
			return &MalformedStateError{Field: "nodes." + string(id), Reason: "lost health exceeds node health"}
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.Plots)) {
		if _, ok := e.Content.Plot(id); !ok {
			return &UnknownContentError{Kind: "plot", ID: string(id)}
		}
		plot := s.Plots[id]
		if plot.Crop != "" {
			if _, ok := e.Content.Crop(plot.Crop); !ok {
				return &UnknownContentError{Kind: "crop", ID: string(plot.Crop)}
			}
		}
		if plot.Remaining < 0 {
			return &MalformedStateError{Field: "plots." + string(id), Reason: "negative countdown"}
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.Stations)) {
		if _, ok := e.Content.Station(id); !ok {
			return &UnknownContentError{Kind: "station", ID: string(id)}
		}
		st := s.Stations[id]
		if st.Recipe != "" {
			if _, ok := e.Content.Action(st.Recipe); !ok {
				return &UnknownContentError{Kind: "action", ID: string(st.Recipe)}
			}
		}
		if st.Remaining < 0 {
			return &MalformedStateError{Field: "stations." + string(id), Reason: "negative countdown"}
		}
	}
	if s.Town.SeasonRemaining < 0 || s.Town.UpdateRemaining < 0 || s.Town.SeasonIndex < 0 {
		return &MalformedStateError{Field: "town", Reason: "negative counter"}
	}
	return e.validateActivity(s)
}

func (e *Engine) validateActivity(s game.PlayerState) error {
	a := s.Activity
	if a == nil {
		return nil
	}
	switch a.Kind {
	case game.ActivitySkilling:
		if _, ok := e.Content.Action(a.Action); !ok {
			return &UnknownContentError{Kind: "action", ID: string(a.Action)}
		}
		if a.Remaining < 0 {
			return &MalformedStateError{Field: "activity.remaining", Reason: "negative"}
		}
	case game.ActivityCombat:
		area, ok := e.Content.Area(a.Area)
		if !ok {
			return &UnknownContentError{Kind: "area", ID: string(a.Area)}
		}
		if enc := a.Encounter; enc != nil {
			if _, ok := e.Content.Monster(enc.Monster); !ok {
				return &UnknownContentError{Kind: "monster", ID: string(enc.Monster)}
			}
			if enc.SequenceIndex < 0 || enc.SequenceIndex >= len(area.Monsters) {
				return &MalformedStateError{Field: "activity.encounter", Reason: "sequence index out of range"}
			}
			if enc.SpawnRemaining < 0 || enc.PlayerAttack < 0 || enc.MonsterAttack < 0 {
				return &MalformedStateError{Field: "activity.encounter", Reason: "negative countdown"}
			}
			if enc.MonsterHP < 1 {
				return &MalformedStateError{Field: "activity.encounter", Reason: "monster already defeated"}
			}
		}
	case game.ActivityCourse:
		if len(s.CourseObstacles) == 0 {
			return &MalformedStateError{Field: "courseObstacles", Reason: "empty course"}
		}
		for _, id := range s.CourseObstacles {
			if _, ok := e.Content.Obstacle(id); !ok {
				return &UnknownContentError{Kind: "obstacle", ID: string(id)}
			}
		}
		if a.ObstacleIndex < 0 || a.ObstacleIndex >= len(s.CourseObstacles) {
			return &MalformedStateError{Field: "activity.obstacleIndex", Reason: "out of range"}
		}
		if a.Remaining < 0 {
			return &MalformedStateError{Field: "activity.remaining", Reason: "negative"}
		}
	case game.ActivityPassive:
		if _, ok := e.Content.Station(a.Station); !ok {
			return &UnknownContentError{Kind: "station", ID: string(a.Station)}
		}
		st := s.Stations[a.Station]
		if st.Recipe == "" {
			return &MalformedStateError{Field: "activity.station", Reason: "no recipe assigned"}
		}
		if _, ok := e.Content.Action(st.Recipe); !ok {
			return &UnknownContentError{Kind: "action", ID: string(st.Recipe)}
		}
	default:
		return &MalformedStateError{Field: "activity.kind", Reason: "unknown kind " + string(a.Kind)}
	}
	return nil
}

// rollRange draws uniformly from [lo, hi]. Equal bounds draw nothing,
// so content with fixed quantities stays stream-neutral.
func rollRange(lo, hi int, rng *rand.Rand) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// percentRoll draws once and reports success with probability pct/100.
// It draws even for 0 or 100 so the stream shape depends only on
// content structure, not on the numbers in it.
func percentRoll(rng *rand.Rand, pct int) bool {
	return rng.IntN(100) < pct
}
