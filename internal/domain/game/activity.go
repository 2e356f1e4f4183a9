package game

import "idleverse/internal/domain/content"

type ActivityKind string

const (
	ActivitySkilling ActivityKind = "skilling"
	ActivityCombat   ActivityKind = "combat"
	ActivityCourse   ActivityKind = "course"
	ActivityPassive  ActivityKind = "passive"
)

// Activity is the single foreground occupation, a tagged variant on Kind.
// Countdowns start at zero: the simulation rolls or derives the first
// duration on its first step, so starting an activity needs no randomness
// and no modifier resolution.
type Activity struct {
	Kind ActivityKind `json:"kind"`

	// Skilling: the action being performed and ticks left in the cycle.
	Action    content.ActionID `json:"action,omitempty"`
	Remaining int              `json:"remaining,omitempty"`

	// Combat: the area and the in-progress encounter.
	Area      content.AreaID `json:"area,omitempty"`
	Encounter *Encounter     `json:"encounter,omitempty"`

	// Course: index of the current obstacle. Remaining is shared with
	// skilling.
	ObstacleIndex int `json:"obstacle_index,omitempty"`

	// Passive: the station being supervised.
	Station content.StationID `json:"station,omitempty"`
}

// Encounter is combat's nested timer state. SpawnRemaining positive
// means the spawning phase; afterwards the two attack countdowns run
// independently, each resetting to its owner's attack interval on firing.
type Encounter struct {
	Monster        content.MonsterID `json:"monster"`
	MonsterHP      int               `json:"monster_hp"`
	SpawnRemaining int               `json:"spawn_remaining,omitempty"`
	PlayerAttack   int               `json:"player_attack,omitempty"`
	MonsterAttack  int               `json:"monster_attack,omitempty"`
	SequenceIndex  int               `json:"sequence_index"`
}

func NewSkillingActivity(action content.ActionID) *Activity {
	return &Activity{Kind: ActivitySkilling, Action: action}
}

func NewCombatActivity(area content.AreaID) *Activity {
	return &Activity{Kind: ActivityCombat, Area: area}
}

func NewCourseActivity() *Activity {
	return &Activity{Kind: ActivityCourse}
}

func NewPassiveActivity(station content.StationID) *Activity {
	return &Activity{Kind: ActivityPassive, Station: station}
}

func (a *Activity) Clone() *Activity {
	if a == nil {
		return nil
	}
	out := *a
	if a.Encounter != nil {
		enc := *a.Encounter
		out.Encounter = &enc
	}
	return &out
}
