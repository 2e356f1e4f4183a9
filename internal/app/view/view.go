// Package view derives the API-facing projection of a player snapshot:
// levels from experience, names from content, map sections flattened to
// sorted slices.
package view

import (
	"maps"
	"slices"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

type SkillView struct {
	ID    content.SkillID `json:"id"`
	Name  string          `json:"name"`
	Level int             `json:"level"`
	XP    int             `json:"xp"`
}

type StackView struct {
	Item     content.ItemID `json:"item"`
	Name     string         `json:"name"`
	Quantity int            `json:"quantity"`
}

type EquipmentView struct {
	Slot content.EquipSlot `json:"slot"`
	Item content.ItemID    `json:"item"`
	Name string            `json:"name"`
}

type EncounterView struct {
	Monster        content.MonsterID `json:"monster"`
	Name           string            `json:"name"`
	MonsterHP      int               `json:"monster_hp"`
	SpawnRemaining int               `json:"spawn_remaining,omitempty"`
}

type ActivityView struct {
	Kind      string         `json:"kind"`
	Label     string         `json:"label"`
	Remaining int            `json:"remaining"`
	Encounter *EncounterView `json:"encounter,omitempty"`
}

type NodeView struct {
	Action           content.ActionID `json:"action"`
	LostHP           int              `json:"lost_hp"`
	RespawnRemaining int              `json:"respawn_remaining,omitempty"`
}

type PlotView struct {
	Plot      content.PlotID `json:"plot"`
	Crop      content.CropID `json:"crop,omitempty"`
	Name      string         `json:"name,omitempty"`
	Remaining int            `json:"remaining,omitempty"`
	Ready     bool           `json:"ready,omitempty"`
}

type StationView struct {
	Station   content.StationID `json:"station"`
	Name      string            `json:"name"`
	Recipe    content.ActionID  `json:"recipe,omitempty"`
	Remaining int               `json:"remaining,omitempty"`
}

type ObstacleView struct {
	Obstacle content.ObstacleID `json:"obstacle"`
	Name     string             `json:"name"`
	Slot     int                `json:"slot"`
}

type TownView struct {
	Season          string `json:"season"`
	SeasonRemaining int    `json:"season_remaining"`
	Treasury        int    `json:"treasury"`
	Population      int    `json:"population"`
}

type PlayerView struct {
	PlayerID          string              `json:"player_id"`
	Health            int                 `json:"health"`
	MaxHealth         int                 `json:"max_health"`
	Coins             int                 `json:"coins"`
	StunTicks         int                 `json:"stun_ticks,omitempty"`
	Skills            []SkillView         `json:"skills"`
	Inventory         []StackView         `json:"inventory"`
	InventoryCapacity int                 `json:"inventory_capacity"`
	InventoryUsed     int                 `json:"inventory_used"`
	Equipment         []EquipmentView     `json:"equipment,omitempty"`
	SelectedFood      content.ItemID      `json:"selected_food,omitempty"`
	Style             content.AttackStyle `json:"style,omitempty"`
	Activity          *ActivityView       `json:"activity,omitempty"`
	Nodes             []NodeView          `json:"nodes,omitempty"`
	Plots             []PlotView          `json:"plots,omitempty"`
	Stations          []StationView       `json:"stations,omitempty"`
	Course            []ObstacleView      `json:"course,omitempty"`
	Town              TownView            `json:"town"`
	Version           int64               `json:"version"`
}

func Derive(reg content.Registry, s game.PlayerState) PlayerView {
	v := PlayerView{
		PlayerID:          s.PlayerID,
		Health:            s.Health,
		MaxHealth:         s.MaxHealth(),
		Coins:             s.Coins,
		StunTicks:         s.StunTicks,
		InventoryCapacity: s.Inventory.Capacity,
		InventoryUsed:     s.Inventory.Stacks(),
		SelectedFood:      s.SelectedFood,
		Style:             s.Style,
		Activity:          deriveActivity(reg, s),
		Town:              deriveTown(reg, s.Town),
		Version:           s.Version,
	}
	for _, def := range reg.Skills() {
		v.Skills = append(v.Skills, SkillView{
			ID:    def.ID,
			Name:  def.Name,
			Level: s.Level(def.ID),
			XP:    s.SkillXP[def.ID],
		})
	}
	for _, item := range slices.Sorted(maps.Keys(s.Inventory.Items)) {
		v.Inventory = append(v.Inventory, StackView{
			Item:     item,
			Name:     itemName(reg, item),
			Quantity: s.Inventory.Items[item],
		})
	}
	if v.Inventory == nil {
		v.Inventory = []StackView{}
	}
	for _, slot := range slices.Sorted(maps.Keys(s.Equipment)) {
		item := s.Equipment[slot]
		v.Equipment = append(v.Equipment, EquipmentView{Slot: slot, Item: item, Name: itemName(reg, item)})
	}
	for _, action := range slices.Sorted(maps.Keys(s.Nodes)) {
		n := s.Nodes[action]
		v.Nodes = append(v.Nodes, NodeView{
			Action:           action,
			LostHP:           n.LostHP,
			RespawnRemaining: n.RespawnRemaining,
		})
	}
	for _, id := range slices.Sorted(maps.Keys(s.Plots)) {
		p := s.Plots[id]
		pv := PlotView{Plot: id, Crop: p.Crop, Remaining: p.Remaining, Ready: p.Ready}
		if def, ok := reg.Crop(p.Crop); ok {
			pv.Name = def.Name
		}
		v.Plots = append(v.Plots, pv)
	}
	for _, id := range slices.Sorted(maps.Keys(s.Stations)) {
		st := s.Stations[id]
		sv := StationView{Station: id, Recipe: st.Recipe, Remaining: st.Remaining}
		if def, ok := reg.Station(id); ok {
			sv.Name = def.Name
		}
		v.Stations = append(v.Stations, sv)
	}
	for _, id := range s.CourseObstacles {
		ov := ObstacleView{Obstacle: id}
		if def, ok := reg.Obstacle(id); ok {
			ov.Name = def.Name
			ov.Slot = def.Slot
		}
		v.Course = append(v.Course, ov)
	}
	return v
}

func deriveActivity(reg content.Registry, s game.PlayerState) *ActivityView {
	a := s.Activity
	if a == nil {
		return nil
	}
	av := &ActivityView{Kind: string(a.Kind), Remaining: a.Remaining}
	switch a.Kind {
	case game.ActivitySkilling:
		if def, ok := reg.Action(a.Action); ok {
			av.Label = def.Name
		}
	case game.ActivityCombat:
		if def, ok := reg.Area(a.Area); ok {
			av.Label = def.Name
		}
		if enc := a.Encounter; enc != nil {
			ev := &EncounterView{
				Monster:        enc.Monster,
				MonsterHP:      enc.MonsterHP,
				SpawnRemaining: enc.SpawnRemaining,
			}
			if def, ok := reg.Monster(enc.Monster); ok {
				ev.Name = def.Name
			}
			av.Encounter = ev
		}
	case game.ActivityCourse:
		if a.ObstacleIndex >= 0 && a.ObstacleIndex < len(s.CourseObstacles) {
			if def, ok := reg.Obstacle(s.CourseObstacles[a.ObstacleIndex]); ok {
				av.Label = def.Name
			}
		}
	case game.ActivityPassive:
		if def, ok := reg.Station(a.Station); ok {
			av.Label = def.Name
		}
	}
	return av
}

func deriveTown(reg content.Registry, t game.TownState) TownView {
	tv := TownView{
		SeasonRemaining: t.SeasonRemaining,
		Treasury:        t.Treasury,
		Population:      t.Population,
	}
	town := reg.Town()
	if len(town.Seasons) > 0 {
		tv.Season = town.Seasons[t.SeasonIndex%len(town.Seasons)].Name
	}
	return tv
}

func itemName(reg content.Registry, item content.ItemID) string {
	if def, ok := reg.Item(item); ok {
		return def.Name
	}
	return string(item)
}
