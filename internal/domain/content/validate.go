package content

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

func (d Drop) validate(owner string) error {
	el := errors.NewErrorList()
	if d.Item == "" {
		el.Add(fmt.Errorf("%s: drop missing item", owner))
	}
	if d.Min < 1 || d.Max < d.Min {
		el.Add(fmt.Errorf("%s: drop %q quantity range [%d,%d] invalid", owner, d.Item, d.Min, d.Max))
	}
	if d.Chance < 0 || d.Chance > 100 {
		el.Add(fmt.Errorf("%s: drop %q chance %d out of range", owner, d.Item, d.Chance))
	}
	return el.Err()
}

func (d ItemDef) Validate() error {
	el := errors.NewErrorList()
	if d.ID == "" {
		el.Add(fmt.Errorf("item missing id"))
	}
	if d.Heal < 0 {
		el.Add(fmt.Errorf("item %q: negative heal", d.ID))
	}
	if d.SellValue < 0 {
		el.Add(fmt.Errorf("item %q: negative sell value", d.ID))
	}
	switch d.Slot {
	case "", SlotWeapon, SlotBody, SlotShield:
	default:
		el.Add(fmt.Errorf("item %q: unknown slot %q", d.ID, d.Slot))
	}
	if d.Style != "" && d.Slot != SlotWeapon {
		el.Add(fmt.Errorf("item %q: style set on non-weapon", d.ID))
	}
	if d.AttackTicks < 0 || (d.AttackTicks > 0 && d.Slot != SlotWeapon) {
		el.Add(fmt.Errorf("item %q: attack_ticks only valid on weapons", d.ID))
	}
	return el.Err()
}

func (d ActionDef) Validate() error {
	el := errors.NewErrorList()
	if d.ID == "" {
		el.Add(fmt.Errorf("action missing id"))
	}
	if d.Skill == "" {
		el.Add(fmt.Errorf("action %q: missing skill", d.ID))
	}
	switch d.Kind {
	case KindGathering, KindCrafting, KindThieving, KindCooking:
	default:
		el.Add(fmt.Errorf("action %q: unknown kind %q", d.ID, d.Kind))
	}
	if d.Duration < 1 {
		el.Add(fmt.Errorf("action %q: duration must be at least one tick", d.ID))
	}
	if d.XP < 0 || d.MasteryXP < 0 {
		el.Add(fmt.Errorf("action %q: negative xp", d.ID))
	}
	for item, qty := range d.Inputs {
		if item == "" || qty < 1 {
			el.Add(fmt.Errorf("action %q: invalid input %q x%d", d.ID, item, qty))
		}
	}
	for _, drop := range d.Drops {
		el.Add(drop.validate(fmt.Sprintf("action %q", d.ID)))
	}
	if d.Rare != nil {
		if d.Rare.Item == "" || d.Rare.Chance < 1 || d.Rare.Chance > 100 {
			el.Add(fmt.Errorf("action %q: invalid rare drop", d.ID))
		}
	}
	if d.Node != nil {
		if d.Kind != KindGathering {
			el.Add(fmt.Errorf("action %q: node spec on non-gathering action", d.ID))
		}
		if d.Node.HP < 1 || d.Node.RespawnTicks < 1 || d.Node.RegenTicks < 1 {
			el.Add(fmt.Errorf("action %q: node spec fields must be positive", d.ID))
		}
	}
	if d.Kind == KindThieving && d.Risk == nil {
		el.Add(fmt.Errorf("action %q: thieving requires a risk spec", d.ID))
	}
	if d.Risk != nil {
		r := d.Risk
		if r.SuccessBase < 0 || r.SuccessBase > 100 || r.SuccessPerMastery < 0 {
			el.Add(fmt.Errorf("action %q: invalid risk success chance", d.ID))
		}
		if r.DamageMin < 0 || r.DamageMax < r.DamageMin {
			el.Add(fmt.Errorf("action %q: invalid risk damage range", d.ID))
		}
		if r.StunTicks < 0 {
			el.Add(fmt.Errorf("action %q: negative stun", d.ID))
		}
	}
	if d.Kind == KindCooking && d.Cook == nil {
		el.Add(fmt.Errorf("action %q: cooking requires a cook spec", d.ID))
	}
	if d.Cook != nil {
		c := d.Cook
		if c.SuccessBase < 0 || c.SuccessPerMastery < 0 || c.SuccessCap < 1 || c.SuccessCap > 100 {
			el.Add(fmt.Errorf("action %q: invalid cook success chance", d.ID))
		}
		if c.PerfectBase < 0 || c.PerfectPerMastery < 0 {
			el.Add(fmt.Errorf("action %q: invalid perfect chance", d.ID))
		}
		if (c.PerfectBase > 0 || c.PerfectPerMastery > 0) && c.PerfectItem == "" {
			el.Add(fmt.Errorf("action %q: perfect chance without perfect item", d.ID))
		}
	}
	return el.Err()
}

func (d MonsterDef) Validate() error {
	el := errors.NewErrorList()
	if d.ID == "" {
		el.Add(fmt.Errorf("monster missing id"))
	}
	if d.HP < 1 {
		el.Add(fmt.Errorf("monster %q: hp must be positive", d.ID))
	}
	if d.AttackTicks < 1 {
		el.Add(fmt.Errorf("monster %q: attack_ticks must be positive", d.ID))
	}
	if d.Accuracy < 0 || d.Evasion < 0 {
		el.Add(fmt.Errorf("monster %q: negative combat stats", d.ID))
	}
	if d.MinHit < 0 || d.MaxHit < d.MinHit {
		el.Add(fmt.Errorf("monster %q: invalid hit range", d.ID))
	}
	switch d.Style {
	case StyleMelee, StyleRanged, StyleMagic:
	default:
		el.Add(fmt.Errorf("monster %q: unknown style %q", d.ID, d.Style))
	}
	if d.CoinsMin < 0 || d.CoinsMax < d.CoinsMin {
		el.Add(fmt.Errorf("monster %q: invalid coin range", d.ID))
	}
	for _, drop := range d.Drops {
		el.Add(drop.validate(fmt.Sprintf("monster %q", d.ID)))
	}
	return el.Err()
}

func (d AreaDef) Validate() error {
	el := errors.NewErrorList()
	if d.ID == "" {
		el.Add(fmt.Errorf("area missing id"))
	}
	if len(d.Monsters) == 0 {
		el.Add(fmt.Errorf("area %q: empty monster sequence", d.ID))
	}
	if d.SpawnTicks < 1 {
		el.Add(fmt.Errorf("area %q: spawn_ticks must be positive", d.ID))
	}
	return el.Err()
}

func (d ObstacleDef) Validate() error {
	el := errors.NewErrorList()
	if d.ID == "" {
		el.Add(fmt.Errorf("obstacle missing id"))
	}
	if d.Skill == "" {
		el.Add(fmt.Errorf("obstacle %q: missing skill", d.ID))
	}
	if d.Slot < 0 {
		el.Add(fmt.Errorf("obstacle %q: negative slot", d.ID))
	}
	if d.DurationMin < 1 || d.DurationMax < d.DurationMin {
		el.Add(fmt.Errorf("obstacle %q: invalid duration range", d.ID))
	}
	if d.CoinsMin < 0 || d.CoinsMax < d.CoinsMin {
		el.Add(fmt.Errorf("obstacle %q: invalid coin range", d.ID))
	}
	if d.CostCoins < 0 {
		el.Add(fmt.Errorf("obstacle %q: negative build cost", d.ID))
	}
	return el.Err()
}

func (d CropDef) Validate() error {
	el := errors.NewErrorList()
	if d.ID == "" {
		el.Add(fmt.Errorf("crop missing id"))
	}
	if d.Skill == "" || d.Seed == "" || d.Produce == "" {
		el.Add(fmt.Errorf("crop %q: skill, seed and produce are required", d.ID))
	}
	if d.GrowTicks < 1 {
		el.Add(fmt.Errorf("crop %q: grow_ticks must be positive", d.ID))
	}
	if d.Quantity < 1 {
		el.Add(fmt.Errorf("crop %q: quantity must be positive", d.ID))
	}
	if d.XP < 0 {
		el.Add(fmt.Errorf("crop %q: negative xp", d.ID))
	}
	return el.Err()
}

func (d TownDef) Validate() error {
	el := errors.NewErrorList()
	if d.UpdateTicks < 1 || d.SeasonTicks < 1 {
		el.Add(fmt.Errorf("town: update_ticks and season_ticks must be positive"))
	}
	if d.BaseProduction < 0 {
		el.Add(fmt.Errorf("town: negative base production"))
	}
	if len(d.Seasons) == 0 {
		el.Add(fmt.Errorf("town: at least one season required"))
	}
	for _, season := range d.Seasons {
		if season.ID == "" {
			el.Add(fmt.Errorf("town: season missing id"))
		}
		if season.ProductionPct < 0 {
			el.Add(fmt.Errorf("town: season %q negative production", season.ID))
		}
	}
	return el.Err()
}

// validate checks every definition and every cross reference between
// definitions. A registry that passes never produces a dangling lookup at
// simulation time.
func (s *Static) validate() error {
	el := errors.NewErrorList()

	if _, ok := s.skills[SkillHitpoints]; !ok {
		el.Add(fmt.Errorf("skill %q must be defined", SkillHitpoints))
	}

	for _, d := range s.items {
		el.Add(d.Validate())
	}
	for _, d := range s.actions {
		el.Add(d.Validate())
		if _, ok := s.skills[d.Skill]; !ok && d.Skill != "" {
			el.Add(fmt.Errorf("action %q: unknown skill %q", d.ID, d.Skill))
		}
		for item := range d.Inputs {
			el.Add(s.requireItem(item, fmt.Sprintf("action %q input", d.ID)))
		}
		for _, drop := range d.Drops {
			el.Add(s.requireItem(drop.Item, fmt.Sprintf("action %q drop", d.ID)))
		}
		if d.Rare != nil {
			el.Add(s.requireItem(d.Rare.Item, fmt.Sprintf("action %q rare drop", d.ID)))
		}
		if d.Cook != nil {
			if d.Cook.PerfectItem != "" {
				el.Add(s.requireItem(d.Cook.PerfectItem, fmt.Sprintf("action %q perfect item", d.ID)))
			}
			if d.Cook.BurntItem != "" {
				el.Add(s.requireItem(d.Cook.BurntItem, fmt.Sprintf("action %q burnt item", d.ID)))
			}
		}
	}
	for _, d := range s.monsters {
		el.Add(d.Validate())
		for _, drop := range d.Drops {
			el.Add(s.requireItem(drop.Item, fmt.Sprintf("monster %q drop", d.ID)))
		}
		if _, ok := s.skills[d.Style.Skill()]; !ok {
			el.Add(fmt.Errorf("monster %q: style skill %q not defined", d.ID, d.Style.Skill()))
		}
	}
	for _, d := range s.areas {
		el.Add(d.Validate())
		for _, m := range d.Monsters {
			if _, ok := s.monsters[m]; !ok {
				el.Add(fmt.Errorf("area %q: unknown monster %q", d.ID, m))
			}
		}
	}
	for _, d := range s.obstacles {
		el.Add(d.Validate())
		if _, ok := s.skills[d.Skill]; !ok && d.Skill != "" {
			el.Add(fmt.Errorf("obstacle %q: unknown skill %q", d.ID, d.Skill))
		}
	}
	for _, d := range s.crops {
		el.Add(d.Validate())
		if _, ok := s.skills[d.Skill]; !ok && d.Skill != "" {
			el.Add(fmt.Errorf("crop %q: unknown skill %q", d.ID, d.Skill))
		}
		el.Add(s.requireItem(d.Seed, fmt.Sprintf("crop %q seed", d.ID)))
		el.Add(s.requireItem(d.Produce, fmt.Sprintf("crop %q produce", d.ID)))
	}
	for _, d := range s.stations {
		if d.ID == "" {
			el.Add(fmt.Errorf("station missing id"))
		}
	}
	if s.town.UpdateTicks != 0 {
		el.Add(s.town.Validate())
	}

	return el.Err()
}

func (s *Static) requireItem(id ItemID, owner string) error {
	if id == "" {
		return nil
	}
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%s: unknown item %q", owner, id)
	}
	return nil
}
