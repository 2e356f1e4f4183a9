package content

import (
	"fmt"
	"slices"
)

// Registry is the lookup surface the simulation depends on.
type Registry interface {
	Skill(SkillID) (SkillDef, bool)
	Item(ItemID) (ItemDef, bool)
	Action(ActionID) (ActionDef, bool)
	Monster(MonsterID) (MonsterDef, bool)
	Area(AreaID) (AreaDef, bool)
	Obstacle(ObstacleID) (ObstacleDef, bool)
	Crop(CropID) (CropDef, bool)
	Plot(PlotID) (PlotDef, bool)
	Station(StationID) (StationDef, bool)
	Skills() []SkillDef
	Town() TownDef
}

// Pack is one loadable slice of content. Packs merge by id; a later pack
// redefining an id is a load error.
type Pack struct {
	Skills    []SkillDef    `yaml:"skills,omitempty"`
	Items     []ItemDef     `yaml:"items,omitempty"`
	Actions   []ActionDef   `yaml:"actions,omitempty"`
	Monsters  []MonsterDef  `yaml:"monsters,omitempty"`
	Areas     []AreaDef     `yaml:"areas,omitempty"`
	Obstacles []ObstacleDef `yaml:"obstacles,omitempty"`
	Crops     []CropDef     `yaml:"crops,omitempty"`
	Plots     []PlotDef     `yaml:"plots,omitempty"`
	Stations  []StationDef  `yaml:"stations,omitempty"`
	Town      *TownDef      `yaml:"town,omitempty"`
}

// Static is the in-memory Registry implementation.
type Static struct {
	skills    map[SkillID]SkillDef
	items     map[ItemID]ItemDef
	actions   map[ActionID]ActionDef
	monsters  map[MonsterID]MonsterDef
	areas     map[AreaID]AreaDef
	obstacles map[ObstacleID]ObstacleDef
	crops     map[CropID]CropDef
	plots     map[PlotID]PlotDef
	stations  map[StationID]StationDef
	town      TownDef
}

// NewStatic merges the given packs into one registry, validating every
// definition and every cross reference. The returned registry is
// immutable.
func NewStatic(packs ...Pack) (*Static, error) {
	s := &Static{
		skills:    map[SkillID]SkillDef{},
		items:     map[ItemID]ItemDef{},
		actions:   map[ActionID]ActionDef{},
		monsters:  map[MonsterID]MonsterDef{},
		areas:     map[AreaID]AreaDef{},
		obstacles: map[ObstacleID]ObstacleDef{},
		crops:     map[CropID]CropDef{},
		plots:     map[PlotID]PlotDef{},
		stations:  map[StationID]StationDef{},
	}
	for _, p := range packs {
		if err := s.merge(p); err != nil {
			return nil, err
		}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Static) merge(p Pack) error {
	for _, d := range p.Skills {
		if _, dup := s.skills[d.ID]; dup {
			return fmt.Errorf("duplicate skill %q", d.ID)
		}
		s.skills[d.ID] = d
	}
	for _, d := range p.Items {
		if _, dup := s.items[d.ID]; dup {
			return fmt.Errorf("duplicate item %q", d.ID)
		}
		s.items[d.ID] = d
	}
	for _, d := range p.Actions {
		if _, dup := s.actions[d.ID]; dup {
			return fmt.Errorf("duplicate action %q", d.ID)
		}
		s.actions[d.ID] = d
	}
	for _, d := range p.Monsters {
		if _, dup := s.monsters[d.ID]; dup {
			return fmt.Errorf("duplicate monster %q", d.ID)
		}
		s.monsters[d.ID] = d
	}
	for _, d := range p.Areas {
		if _, dup := s.areas[d.ID]; dup {
			return fmt.Errorf("duplicate area %q", d.ID)
		}
		s.areas[d.ID] = d
	}
	for _, d := range p.Obstacles {
		if _, dup := s.obstacles[d.ID]; dup {
			return fmt.Errorf("duplicate obstacle %q", d.ID)
		}
		s.obstacles[d.ID] = d
	}
	for _, d := range p.Crops {
		if _, dup := s.crops[d.ID]; dup {
			return fmt.Errorf("duplicate crop %q", d.ID)
		}
		s.crops[d.ID] = d
	}
	for _, d := range p.Plots {
		if _, dup := s.plots[d.ID]; dup {
			return fmt.Errorf("duplicate plot %q", d.ID)
		}
		s.plots[d.ID] = d
	}
	for _, d := range p.Stations {
		if _, dup := s.stations[d.ID]; dup {
			return fmt.Errorf("duplicate station %q", d.ID)
		}
		s.stations[d.ID] = d
	}
	if p.Town != nil {
		if s.town.UpdateTicks != 0 {
			return fmt.Errorf("town defined twice")
		}
		s.town = *p.Town
	}
	return nil
}

func (s *Static) Skill(id SkillID) (SkillDef, bool)          { d, ok := s.skills[id]; return d, ok }
func (s *Static) Item(id ItemID) (ItemDef, bool)             { d, ok := s.items[id]; return d, ok }
func (s *Static) Action(id ActionID) (ActionDef, bool)       { d, ok := s.actions[id]; return d, ok }
func (s *Static) Monster(id MonsterID) (MonsterDef, bool)    { d, ok := s.monsters[id]; return d, ok }
func (s *Static) Area(id AreaID) (AreaDef, bool)             { d, ok := s.areas[id]; return d, ok }
func (s *Static) Obstacle(id ObstacleID) (ObstacleDef, bool) { d, ok := s.obstacles[id]; return d, ok }
func (s *Static) Crop(id CropID) (CropDef, bool)             { d, ok := s.crops[id]; return d, ok }
func (s *Static) Plot(id PlotID) (PlotDef, bool)             { d, ok := s.plots[id]; return d, ok }
func (s *Static) Station(id StationID) (StationDef, bool)    { d, ok := s.stations[id]; return d, ok }
func (s *Static) Town() TownDef                              { return s.town }

// Skills returns every skill definition sorted by id.
func (s *Static) Skills() []SkillDef {
	out := make([]SkillDef, 0, len(s.skills))
	for _, d := range s.skills {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b SkillDef) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}
