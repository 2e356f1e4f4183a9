// Package content holds the read-only game definitions the simulation
// consumes: skills, items, actions, monsters, combat areas, obstacles,
// crops, production stations and the town. Definitions are addressed by
// opaque string ids and validated once at registry construction.
package content

type (
	SkillID    string
	ItemID     string
	ActionID   string
	MonsterID  string
	AreaID     string
	ObstacleID string
	CropID     string
	PlotID     string
	StationID  string
)

// Skills the engine itself needs to resolve. A registry must define
// SkillHitpoints; the combat style skills are required only when the pack
// contains monsters.
const (
	SkillHitpoints SkillID = "hitpoints"
	SkillAttack    SkillID = "attack"
	SkillRanged    SkillID = "ranged"
	SkillMagic     SkillID = "magic"
	SkillDefence   SkillID = "defence"
)

type ActionKind string

const (
	KindGathering ActionKind = "gathering"
	KindCrafting  ActionKind = "crafting"
	KindThieving  ActionKind = "thieving"
	KindCooking   ActionKind = "cooking"
)

type EquipSlot string

const (
	SlotWeapon EquipSlot = "weapon"
	SlotBody   EquipSlot = "body"
	SlotShield EquipSlot = "shield"
)

type AttackStyle string

const (
	StyleMelee  AttackStyle = "melee"
	StyleRanged AttackStyle = "ranged"
	StyleMagic  AttackStyle = "magic"
)

// Skill returns the skill trained by attacking in this style.
func (s AttackStyle) Skill() SkillID {
	switch s {
	case StyleRanged:
		return SkillRanged
	case StyleMagic:
		return SkillMagic
	default:
		return SkillAttack
	}
}

// BeatsBy reports the style-triangle relation: melee beats ranged beats
// magic beats melee. Returns +1 when s has the advantage over other, -1
// when it is at a disadvantage, 0 otherwise.
func (s AttackStyle) BeatsBy(other AttackStyle) int {
	if s == other || s == "" || other == "" {
		return 0
	}
	beats := map[AttackStyle]AttackStyle{
		StyleMelee:  StyleRanged,
		StyleRanged: StyleMagic,
		StyleMagic:  StyleMelee,
	}
	if beats[s] == other {
		return 1
	}
	return -1
}

type SkillDef struct {
	ID   SkillID `yaml:"id"`
	Name string  `yaml:"name"`
}

type CombatBonus struct {
	Accuracy int `yaml:"accuracy,omitempty"`
	Strength int `yaml:"strength,omitempty"`
	Defence  int `yaml:"defence,omitempty"`
}

type ItemDef struct {
	ID        ItemID      `yaml:"id"`
	Name      string      `yaml:"name"`
	SellValue int         `yaml:"sell_value,omitempty"`
	Heal      int         `yaml:"heal,omitempty"`
	Slot      EquipSlot   `yaml:"slot,omitempty"`
	Bonus     CombatBonus `yaml:"bonus,omitempty"`
	Style     AttackStyle `yaml:"style,omitempty"`
	// AttackTicks is the attack interval granted by a weapon.
	AttackTicks int `yaml:"attack_ticks,omitempty"`
}

// Drop is one output roll: quantity uniform in [Min, Max], gated by an
// independent percent chance. Chance 0 means guaranteed.
type Drop struct {
	Item   ItemID `yaml:"item"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Chance int    `yaml:"chance,omitempty"`
}

// Guaranteed reports whether the drop fires on every completion.
func (d Drop) Guaranteed() bool { return d.Chance <= 0 || d.Chance >= 100 }

// RareDrop is a low-probability single-item find, reported as a discovery.
type RareDrop struct {
	Item   ItemID `yaml:"item"`
	Chance int    `yaml:"chance"`
}

// NodeSpec makes a gathering action deplete: HP completions empty the
// node, RespawnTicks restore it, and an idle node heals one lost HP every
// RegenTicks.
type NodeSpec struct {
	HP           int `yaml:"hp"`
	RespawnTicks int `yaml:"respawn_ticks"`
	RegenTicks   int `yaml:"regen_ticks"`
}

// RiskSpec makes an action roll success per completion. Failure damages
// the player and stuns on survival. Success chance in percent points is
// SuccessBase + mastery level * SuccessPerMastery, capped at 100.
type RiskSpec struct {
	SuccessBase       int `yaml:"success_base"`
	SuccessPerMastery int `yaml:"success_per_mastery"`
	DamageMin         int `yaml:"damage_min"`
	DamageMax         int `yaml:"damage_max"`
	StunTicks         int `yaml:"stun_ticks"`
}

// CookSpec makes an action roll a mastery-scaled success chance; failures
// consume inputs and optionally produce the burnt item. Successes may
// upgrade to the perfect item.
type CookSpec struct {
	SuccessBase       int    `yaml:"success_base"`
	SuccessPerMastery int    `yaml:"success_per_mastery"`
	SuccessCap        int    `yaml:"success_cap"`
	PerfectBase       int    `yaml:"perfect_base,omitempty"`
	PerfectPerMastery int    `yaml:"perfect_per_mastery,omitempty"`
	PerfectItem       ItemID `yaml:"perfect_item,omitempty"`
	BurntItem         ItemID `yaml:"burnt_item,omitempty"`
}

type ActionDef struct {
	ID          ActionID       `yaml:"id"`
	Name        string         `yaml:"name"`
	Skill       SkillID        `yaml:"skill"`
	Kind        ActionKind     `yaml:"kind"`
	UnlockLevel int            `yaml:"unlock_level,omitempty"`
	Duration    int            `yaml:"duration"`
	XP          int            `yaml:"xp"`
	MasteryXP   int            `yaml:"mastery_xp"`
	Inputs      map[ItemID]int `yaml:"inputs,omitempty"`
	Drops       []Drop         `yaml:"drops,omitempty"`
	Rare        *RareDrop      `yaml:"rare,omitempty"`
	Node        *NodeSpec      `yaml:"node,omitempty"`
	Risk        *RiskSpec      `yaml:"risk,omitempty"`
	Cook        *CookSpec      `yaml:"cook,omitempty"`
}

type MonsterDef struct {
	ID          MonsterID   `yaml:"id"`
	Name        string      `yaml:"name"`
	HP          int         `yaml:"hp"`
	AttackTicks int         `yaml:"attack_ticks"`
	Accuracy    int         `yaml:"accuracy"`
	Evasion     int         `yaml:"evasion"`
	MinHit      int         `yaml:"min_hit"`
	MaxHit      int         `yaml:"max_hit"`
	Style       AttackStyle `yaml:"style"`
	CoinsMin    int         `yaml:"coins_min,omitempty"`
	CoinsMax    int         `yaml:"coins_max,omitempty"`
	Drops       []Drop      `yaml:"drops,omitempty"`
}

// AreaDef is an ordered monster sequence. SpawnTicks is the countdown
// before each encounter begins. A looping area restarts its sequence
// after the last monster; otherwise completing the sequence ends the
// activity.
type AreaDef struct {
	ID          AreaID      `yaml:"id"`
	Name        string      `yaml:"name"`
	Monsters    []MonsterID `yaml:"monsters"`
	Loop        bool        `yaml:"loop,omitempty"`
	SpawnTicks  int         `yaml:"spawn_ticks"`
	UnlockLevel int         `yaml:"unlock_level,omitempty"`
}

type ObstacleDef struct {
	ID          ObstacleID `yaml:"id"`
	Name        string     `yaml:"name"`
	Slot        int        `yaml:"slot"`
	Skill       SkillID    `yaml:"skill"`
	UnlockLevel int        `yaml:"unlock_level,omitempty"`
	DurationMin int        `yaml:"duration_min"`
	DurationMax int        `yaml:"duration_max"`
	XP          int        `yaml:"xp"`
	CoinsMin    int        `yaml:"coins_min,omitempty"`
	CoinsMax    int        `yaml:"coins_max,omitempty"`
	CostCoins   int        `yaml:"cost_coins,omitempty"`
}

type CropDef struct {
	ID          CropID  `yaml:"id"`
	Name        string  `yaml:"name"`
	Skill       SkillID `yaml:"skill"`
	Seed        ItemID  `yaml:"seed"`
	GrowTicks   int     `yaml:"grow_ticks"`
	UnlockLevel int     `yaml:"unlock_level,omitempty"`
	Produce     ItemID  `yaml:"produce"`
	Quantity    int     `yaml:"quantity"`
	XP          int     `yaml:"xp"`
}

type PlotDef struct {
	ID          PlotID `yaml:"id"`
	UnlockLevel int    `yaml:"unlock_level,omitempty"`
}

type StationDef struct {
	ID   StationID `yaml:"id"`
	Name string    `yaml:"name"`
}

type SeasonDef struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	ProductionPct int    `yaml:"production_pct"`
}

// TownDef drives the town economy: every UpdateTicks the treasury grows
// by BaseProduction scaled by population and the current season's
// production percent; every SeasonTicks the season rotates.
type TownDef struct {
	UpdateTicks    int         `yaml:"update_ticks"`
	SeasonTicks    int         `yaml:"season_ticks"`
	BaseProduction int         `yaml:"base_production"`
	Seasons        []SeasonDef `yaml:"seasons"`
}
