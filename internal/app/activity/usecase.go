// Package activity holds the player-intent operations: starting and
// stopping foreground activities and managing loadout, farming and
// station assignments. Every operation prechecks against the loaded
// snapshot and persists through optimistic versioning; a failed
// precheck leaves the snapshot untouched.
package activity

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"idleverse/internal/app/ports"
	"idleverse/internal/app/view"
	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
	"idleverse/internal/domain/sim"
)

type UseCase struct {
	TxManager ports.TxManager
	Snapshots ports.SnapshotRepository
	Content   content.Registry
	Now       func() time.Time
}

type Response struct {
	Player view.PlayerView `json:"player"`
}

// mutate runs one precheck-and-apply function against the player's
// snapshot inside a transaction. The mutator's working copy is only
// persisted when fn succeeds, so a precheck failing mid-operation
// cannot leave partial writes behind.
func (u UseCase) mutate(ctx context.Context, playerID string, fn func(m *sim.Mutator) error) (Response, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	var next game.PlayerState
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.Snapshots.GetByPlayerID(txCtx, playerID)
		if err != nil {
			return err
		}
		m := sim.NewMutator(u.Content, state)
		if err := fn(m); err != nil {
			return err
		}
		next = m.State()
		next.Version = state.Version + 1
		next.UpdatedAt = nowFn()
		return u.Snapshots.SaveWithVersion(txCtx, next, state.Version)
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Player: view.Derive(u.Content, next)}, nil
}

// StartSkilling begins a gathering, crafting, thieving or cooking
// action, replacing whatever activity was running.
func (u UseCase) StartSkilling(ctx context.Context, playerID string, action content.ActionID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if s.Stunned() {
			return ErrStunned
		}
		def, ok := u.Content.Action(action)
		if !ok {
			return &sim.UnknownContentError{Kind: "action", ID: string(action)}
		}
		if have := s.Level(def.Skill); have < def.UnlockLevel {
			return &LevelError{Skill: def.Skill, Need: def.UnlockLevel, Have: have}
		}
		if err := requireInputs(s, def.Inputs); err != nil {
			return err
		}
		m.SetActivity(game.NewSkillingActivity(action))
		return nil
	})
}

// StartCombat sends the player into an area. The area's unlock level is
// checked against the skill of the player's current attack style.
func (u UseCase) StartCombat(ctx context.Context, playerID string, area content.AreaID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if s.Stunned() {
			return ErrStunned
		}
		def, ok := u.Content.Area(area)
		if !ok {
			return &sim.UnknownContentError{Kind: "area", ID: string(area)}
		}
		style := s.Style
		if style == "" {
			style = content.StyleMelee
		}
		if have := s.Level(style.Skill()); have < def.UnlockLevel {
			return &LevelError{Skill: style.Skill(), Need: def.UnlockLevel, Have: have}
		}
		m.SetActivity(game.NewCombatActivity(area))
		return nil
	})
}

// StartCourse runs the obstacle course. A non-empty obstacles argument
// replaces the built course first, paying the build cost of every
// obstacle not already part of it; an empty argument reruns the course
// as built.
func (u UseCase) StartCourse(ctx context.Context, playerID string, obstacles []content.ObstacleID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if s.Stunned() {
			return ErrStunned
		}
		if len(obstacles) == 0 {
			obstacles = s.CourseObstacles
		}
		if len(obstacles) == 0 {
			return &CourseError{Reason: "no obstacles built"}
		}
		built := make(map[content.ObstacleID]bool, len(s.CourseObstacles))
		for _, id := range s.CourseObstacles {
			built[id] = true
		}
		cost := 0
		lastSlot := -1
		for _, id := range obstacles {
			def, ok := u.Content.Obstacle(id)
			if !ok {
				return &sim.UnknownContentError{Kind: "obstacle", ID: string(id)}
			}
			if def.Slot <= lastSlot {
				return &CourseError{Reason: "obstacle slots out of order"}
			}
			lastSlot = def.Slot
			if have := s.Level(def.Skill); have < def.UnlockLevel {
				return &LevelError{Skill: def.Skill, Need: def.UnlockLevel, Have: have}
			}
			if !built[id] {
				cost += def.CostCoins
			}
		}
		if !m.SpendCoins(cost) {
			return ErrInsufficientCoins
		}
		m.SetCourseObstacles(obstacles)
		m.SetActivity(game.NewCourseActivity())
		return nil
	})
}

// StartPassive attends a production station, running its assigned
// recipe at full speed in the foreground.
func (u UseCase) StartPassive(ctx context.Context, playerID string, station content.StationID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if s.Stunned() {
			return ErrStunned
		}
		if _, ok := u.Content.Station(station); !ok {
			return &sim.UnknownContentError{Kind: "station", ID: string(station)}
		}
		st := s.Stations[station]
		if st.Recipe == "" {
			return ErrNoRecipe
		}
		def, ok := u.Content.Action(st.Recipe)
		if !ok {
			return &sim.UnknownContentError{Kind: "action", ID: string(st.Recipe)}
		}
		if err := requireInputs(s, def.Inputs); err != nil {
			return err
		}
		m.SetActivity(game.NewPassiveActivity(station))
		return nil
	})
}

// Stop clears the foreground activity. Always allowed, stunned or not.
func (u UseCase) Stop(ctx context.Context, playerID string) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		m.SetActivity(nil)
		return nil
	})
}

// AssignStationRecipe binds an action to a station, resetting any cycle
// in flight. An empty action unassigns the station.
func (u UseCase) AssignStationRecipe(ctx context.Context, playerID string, station content.StationID, action content.ActionID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if _, ok := u.Content.Station(station); !ok {
			return &sim.UnknownContentError{Kind: "station", ID: string(station)}
		}
		if action == "" {
			m.SetStation(station, game.StationState{})
			return nil
		}
		def, ok := u.Content.Action(action)
		if !ok {
			return &sim.UnknownContentError{Kind: "action", ID: string(action)}
		}
		// A recipe without inputs would produce from nothing forever.
		if len(def.Inputs) == 0 {
			return ErrNotStationRecipe
		}
		if have := s.Level(def.Skill); have < def.UnlockLevel {
			return &LevelError{Skill: def.Skill, Need: def.UnlockLevel, Have: have}
		}
		m.SetStation(station, game.StationState{Recipe: action})
		return nil
	})
}

// PlantCrop sows a seed from the inventory into an empty plot.
func (u UseCase) PlantCrop(ctx context.Context, playerID string, plot content.PlotID, crop content.CropID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if s.Stunned() {
			return ErrStunned
		}
		plotDef, ok := u.Content.Plot(plot)
		if !ok {
			return &sim.UnknownContentError{Kind: "plot", ID: string(plot)}
		}
		cropDef, ok := u.Content.Crop(crop)
		if !ok {
			return &sim.UnknownContentError{Kind: "crop", ID: string(crop)}
		}
		if s.Plots[plot] != (game.PlotState{}) {
			return ErrPlotOccupied
		}
		need := max(cropDef.UnlockLevel, plotDef.UnlockLevel)
		if have := s.Level(cropDef.Skill); have < need {
			return &LevelError{Skill: cropDef.Skill, Need: need, Have: have}
		}
		if have := s.Inventory.Count(cropDef.Seed); have < 1 {
			return &InputError{Item: cropDef.Seed, Need: 1, Have: have}
		}
		m.RemoveItem(cropDef.Seed, 1)
		m.SetPlot(plot, game.PlotState{Crop: crop, Remaining: cropDef.GrowTicks})
		return nil
	})
}

// HarvestPlot takes the produce of a ripe plot and frees it.
func (u UseCase) HarvestPlot(ctx context.Context, playerID string, plot content.PlotID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if s.Stunned() {
			return ErrStunned
		}
		p := s.Plots[plot]
		if !p.Ready {
			return ErrPlotNotReady
		}
		cropDef, ok := u.Content.Crop(p.Crop)
		if !ok {
			return &sim.UnknownContentError{Kind: "crop", ID: string(p.Crop)}
		}
		if !s.Inventory.CanAdd(cropDef.Produce) {
			return ErrInventoryFull
		}
		m.AddItem(cropDef.Produce, cropDef.Quantity)
		m.GrantSkillXP(cropDef.Skill, cropDef.XP, 0)
		m.SetPlot(plot, game.PlotState{})
		return nil
	})
}

// EquipItem moves an item from the inventory into its slot, returning
// whatever occupied the slot to the inventory.
func (u UseCase) EquipItem(ctx context.Context, playerID string, item content.ItemID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if s.Stunned() {
			return ErrStunned
		}
		def, ok := u.Content.Item(item)
		if !ok {
			return &sim.UnknownContentError{Kind: "item", ID: string(item)}
		}
		if def.Slot == "" {
			return ErrSlotMismatch
		}
		if have := s.Inventory.Count(item); have < 1 {
			return &InputError{Item: item, Need: 1, Have: have}
		}
		old := s.Equipment[def.Slot]
		m.RemoveItem(item, 1)
		if old != "" && old != item {
			if !m.AddItem(old, 1) {
				return ErrInventoryFull
			}
		}
		m.SetEquipped(def.Slot, item)
		return nil
	})
}

// UnequipItem clears a slot back into the inventory.
func (u UseCase) UnequipItem(ctx context.Context, playerID string, slot content.EquipSlot) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		s := m.State()
		if s.Stunned() {
			return ErrStunned
		}
		old, ok := s.Equipment[slot]
		if !ok {
			return ErrInvalidRequest
		}
		if !m.AddItem(old, 1) {
			return ErrInventoryFull
		}
		m.SetEquipped(slot, "")
		return nil
	})
}

// SelectFood picks the auto-eat food. Empty clears the selection.
func (u UseCase) SelectFood(ctx context.Context, playerID string, item content.ItemID) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		if item == "" {
			m.SetSelectedFood("")
			return nil
		}
		def, ok := u.Content.Item(item)
		if !ok {
			return &sim.UnknownContentError{Kind: "item", ID: string(item)}
		}
		if def.Heal <= 0 {
			return ErrNotFood
		}
		m.SetSelectedFood(item)
		return nil
	})
}

// SetStyle switches the attack style used in combat.
func (u UseCase) SetStyle(ctx context.Context, playerID string, style content.AttackStyle) (Response, error) {
	return u.mutate(ctx, playerID, func(m *sim.Mutator) error {
		switch style {
		case content.StyleMelee, content.StyleRanged, content.StyleMagic:
		default:
			return ErrInvalidRequest
		}
		m.SetStyle(style)
		return nil
	})
}

func requireInputs(s game.PlayerState, inputs map[content.ItemID]int) error {
	for _, item := range slices.Sorted(maps.Keys(inputs)) {
		need := inputs[item]
		if have := s.Inventory.Count(item); have < need {
			return &InputError{Item: item, Need: need, Have: have}
		}
	}
	return nil
}
