package sim

import (
	"maps"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

// Mutator applies state changes copy-on-write and records the change
// log entries they produce. The state handed to NewMutator is never
// mutated; each map section is cloned the first time an operation
// touches it. Entries are stamped with the current tick offset.
type Mutator struct {
	reg     content.Registry
	state   game.PlayerState
	changes []Change
	reason  StopReason
	tick    int

	clonedItems     bool
	clonedSkillXP   bool
	clonedActions   bool
	clonedEquipment bool
	clonedNodes     bool
	clonedPlots     bool
	clonedStations  bool
}

func NewMutator(reg content.Registry, state game.PlayerState) *Mutator {
	return &Mutator{reg: reg, state: state}
}

// State returns the working copy. Shared maps must be treated as
// read-only; mutate through operations only.
func (m *Mutator) State() game.PlayerState { return m.state }

func (m *Mutator) Changes() []Change { return m.changes }

// Reason returns the first stop reason recorded, if any.
func (m *Mutator) Reason() StopReason { return m.reason }

// Tick returns how many ticks have been consumed so far.
func (m *Mutator) Tick() int { return m.tick }

func (m *Mutator) advanceTick(n int) { m.tick += n }

func (m *Mutator) push(ch Change) {
	ch.Tick = m.tick
	m.changes = append(m.changes, ch)
}

// stop records reason unless one is already set. The first stop wins.
func (m *Mutator) stop(reason StopReason) {
	if m.reason == "" {
		m.reason = reason
	}
}

// AddItem stores qty of item, reporting item_gained. A stack that does
// not fit is reported as item_dropped and false is returned.
func (m *Mutator) AddItem(item content.ItemID, qty int) bool {
	if qty <= 0 {
		return true
	}
	m.ensureItems()
	if !m.state.Inventory.Add(item, qty) {
		m.push(Change{Kind: ChangeItemDropped, Item: item, Amount: qty})
		return false
	}
	m.push(Change{Kind: ChangeItemGained, Item: item, Amount: qty})
	return true
}

// Discover stores one rare find, reporting both the gain and a
// discovery entry. A find that does not fit is only reported dropped.
func (m *Mutator) Discover(item content.ItemID) bool {
	if !m.AddItem(item, 1) {
		return false
	}
	m.push(Change{Kind: ChangeDiscovery, Item: item, Amount: 1})
	return true
}

// RemoveItem consumes qty of item without a change entry.
func (m *Mutator) RemoveItem(item content.ItemID, qty int) bool {
	if qty <= 0 {
		return true
	}
	m.ensureItems()
	return m.state.Inventory.Remove(item, qty)
}

func (m *Mutator) AddCoins(n int) {
	if n <= 0 {
		return
	}
	m.state.Coins += n
	m.push(Change{Kind: ChangeCoinsGained, Amount: n})
}

func (m *Mutator) SpendCoins(n int) bool {
	if n <= 0 {
		return true
	}
	if m.state.Coins < n {
		return false
	}
	m.state.Coins -= n
	return true
}

// GrantSkillXP awards base XP scaled by pct, clamped to [1, 10*base],
// and reports every level crossed.
func (m *Mutator) GrantSkillXP(skill content.SkillID, base, pct int) {
	xp := scaleXP(base, pct)
	if xp == 0 {
		return
	}
	m.ensureSkillXP()
	before := game.LevelForXP(m.state.SkillXP[skill])
	m.state.SkillXP[skill] += xp
	after := game.LevelForXP(m.state.SkillXP[skill])
	for lvl := before + 1; lvl <= after; lvl++ {
		m.push(Change{Kind: ChangeLevelUp, Skill: skill, Level: lvl})
	}
}

// GrantMasteryXP mirrors GrantSkillXP for per-action mastery.
func (m *Mutator) GrantMasteryXP(action content.ActionID, base, pct int) {
	xp := scaleXP(base, pct)
	if xp == 0 {
		return
	}
	m.ensureActions()
	prog := m.state.Actions[action]
	before := game.LevelForXP(prog.MasteryXP)
	prog.MasteryXP += xp
	m.state.Actions[action] = prog
	after := game.LevelForXP(prog.MasteryXP)
	for lvl := before + 1; lvl <= after; lvl++ {
		m.push(Change{Kind: ChangeMasteryUp, Action: action, Level: lvl})
	}
}

func (m *Mutator) Damage(n int) {
	if n <= 0 {
		return
	}
	m.state.Health -= n
	if m.state.Health < 0 {
		m.state.Health = 0
	}
}

func (m *Mutator) Heal(n int) {
	if n <= 0 {
		return
	}
	m.state.Health += n
	if full := m.state.MaxHealth(); m.state.Health > full {
		m.state.Health = full
	}
}

func (m *Mutator) RestoreFullHealth() {
	m.state.Health = m.state.MaxHealth()
	m.state.RegenRemaining = 0
}

// EatSelectedFood consumes one unit of the selected food and heals by
// its scaled heal value. Returns false when no food is available or it
// would heal nothing.
func (m *Mutator) EatSelectedFood(efficiencyPct int) bool {
	item := m.state.SelectedFood
	if item == "" || m.state.Inventory.Count(item) == 0 {
		return false
	}
	def, ok := m.reg.Item(item)
	if !ok {
		return false
	}
	heal := def.Heal * efficiencyPct / 100
	if heal <= 0 {
		return false
	}
	m.ensureItems()
	m.state.Inventory.Remove(item, 1)
	m.Heal(heal)
	m.push(Change{Kind: ChangeFoodEaten, Item: item, Amount: heal})
	return true
}

func (m *Mutator) Stun(ticks int) {
	if ticks <= 0 {
		return
	}
	m.state.StunTicks += ticks
}

func (m *Mutator) TickStun(n int) {
	m.state.StunTicks -= n
	if m.state.StunTicks < 0 {
		m.state.StunTicks = 0
	}
}

func (m *Mutator) SetRegenRemaining(n int) { m.state.RegenRemaining = n }

func (m *Mutator) SetActivity(a *game.Activity) { m.state.Activity = a }

// StopActivity clears the foreground activity and records reason.
func (m *Mutator) StopActivity(reason StopReason) {
	m.state.Activity = nil
	m.stop(reason)
}

// MarkDeath records a death entry. Callers pair it with the penalty,
// heal and stop that death implies.
func (m *Mutator) MarkDeath() { m.push(Change{Kind: ChangeDeath}) }

// LoseEquipped removes the item in slot permanently, reporting it lost.
func (m *Mutator) LoseEquipped(slot content.EquipSlot) {
	item, ok := m.state.Equipment[slot]
	if !ok {
		return
	}
	m.ensureEquipment()
	delete(m.state.Equipment, slot)
	m.push(Change{Kind: ChangeItemLost, Item: item, Amount: 1})
}

// SetEquipped places item in slot, or clears the slot when item is
// empty. No change entry; swaps are orchestrated by callers.
func (m *Mutator) SetEquipped(slot content.EquipSlot, item content.ItemID) {
	m.ensureEquipment()
	if item == "" {
		delete(m.state.Equipment, slot)
		return
	}
	m.state.Equipment[slot] = item
}

func (m *Mutator) SetSelectedFood(item content.ItemID) { m.state.SelectedFood = item }

func (m *Mutator) SetStyle(style content.AttackStyle) { m.state.Style = style }

func (m *Mutator) SetCourseObstacles(obstacles []content.ObstacleID) {
	m.state.CourseObstacles = obstacles
}

// SetNode stores node state for action; the zero state clears the entry.
func (m *Mutator) SetNode(action content.ActionID, node game.NodeState) {
	m.ensureNodes()
	if node == (game.NodeState{}) {
		delete(m.state.Nodes, action)
		return
	}
	m.state.Nodes[action] = node
}

// SetPlot stores plot state; the zero state clears the entry.
func (m *Mutator) SetPlot(id content.PlotID, plot game.PlotState) {
	m.ensurePlots()
	if plot == (game.PlotState{}) {
		delete(m.state.Plots, id)
		return
	}
	m.state.Plots[id] = plot
}

// SetStation stores station state; the zero state clears the entry.
func (m *Mutator) SetStation(id content.StationID, st game.StationState) {
	m.ensureStations()
	if st == (game.StationState{}) {
		delete(m.state.Stations, id)
		return
	}
	m.state.Stations[id] = st
}

func (m *Mutator) SetTown(t game.TownState) { m.state.Town = t }

// scaleXP applies an additive percentage and clamps the result to at
// least one point and at most ten times the base.
func scaleXP(base, pct int) int {
	if base <= 0 {
		return 0
	}
	xp := base * (100 + pct) / 100
	if xp < 1 {
		xp = 1
	}
	if top := base * XPClampMultiple; xp > top {
		xp = top
	}
	return xp
}

func (m *Mutator) ensureItems() {
	if m.clonedItems {
		return
	}
	m.state.Inventory.Items = cloneMap(m.state.Inventory.Items)
	m.clonedItems = true
}

func (m *Mutator) ensureSkillXP() {
	if m.clonedSkillXP {
		return
	}
	m.state.SkillXP = cloneMap(m.state.SkillXP)
	m.clonedSkillXP = true
}

func (m *Mutator) ensureActions() {
	if m.clonedActions {
		return
	}
	m.state.Actions = cloneMap(m.state.Actions)
	m.clonedActions = true
}

func (m *Mutator) ensureEquipment() {
	if m.clonedEquipment {
		return
	}
	m.state.Equipment = cloneMap(m.state.Equipment)
	m.clonedEquipment = true
}

func (m *Mutator) ensureNodes() {
	if m.clonedNodes {
		return
	}
	m.state.Nodes = cloneMap(m.state.Nodes)
	m.clonedNodes = true
}

func (m *Mutator) ensurePlots() {
	if m.clonedPlots {
		return
	}
	m.state.Plots = cloneMap(m.state.Plots)
	m.clonedPlots = true
}

func (m *Mutator) ensureStations() {
	if m.clonedStations {
		return
	}
	m.state.Stations = cloneMap(m.state.Stations)
	m.clonedStations = true
}

// cloneMap copies src into a fresh map, never returning nil.
func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	maps.Copy(dst, src)
	return dst
}
