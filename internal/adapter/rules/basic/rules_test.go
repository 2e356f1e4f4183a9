package basicrules

import (
	"testing"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
	"idleverse/internal/domain/sim"
)

func testRegistry(t *testing.T) content.Registry {
	t.Helper()
	reg, err := content.NewStatic(content.Pack{
		Skills: []content.SkillDef{
			{ID: content.SkillHitpoints, Name: "Hitpoints"},
			{ID: content.SkillAttack, Name: "Attack"},
			{ID: content.SkillRanged, Name: "Ranged"},
			{ID: content.SkillDefence, Name: "Defence"},
			{ID: "foraging", Name: "Foraging"},
		},
		Items: []content.ItemDef{
			{ID: "bronze_sword", Name: "Bronze Sword", Slot: content.SlotWeapon, Style: content.StyleMelee, AttackTicks: 35, Bonus: content.CombatBonus{Accuracy: 10, Strength: 8}},
			{ID: "leather_body", Name: "Leather Body", Slot: content.SlotBody, Bonus: content.CombatBonus{Defence: 6}},
		},
		Actions: []content.ActionDef{
			{ID: "gather_berries", Name: "Gather Berries", Skill: "foraging", Kind: content.KindGathering, Duration: 50, XP: 10, MasteryXP: 5},
		},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func TestActionModifiers_ScaleWithMastery(t *testing.T) {
	rules := New(testRegistry(t))
	def := content.ActionDef{ID: "gather_berries"}

	fresh := game.NewPlayerState("p1", 20)
	if mods := rules.ActionModifiers(fresh, def); mods != (sim.ActionModifiers{}) {
		t.Fatalf("fresh player should have zero modifiers: %+v", mods)
	}

	state := game.NewPlayerState("p1", 20)
	state.Actions = map[content.ActionID]game.ActionProgress{
		"gather_berries": {MasteryXP: game.XPForLevel(40)},
	}
	mods := rules.ActionModifiers(state, def)
	if mods.XPPct != 8 || mods.MasteryPct != 8 {
		t.Fatalf("xp pct at mastery 40 = %d/%d, want 8/8", mods.XPPct, mods.MasteryPct)
	}
	if mods.DurationPct != -10 {
		t.Fatalf("duration pct at mastery 40 = %d, want -10", mods.DurationPct)
	}
	if mods.DoublingPct != 8 {
		t.Fatalf("doubling pct at mastery 40 = %d, want 8", mods.DoublingPct)
	}

	state.Actions["gather_berries"] = game.ActionProgress{MasteryXP: game.XPForLevel(99)}
	if mods := rules.ActionModifiers(state, def); mods.DurationPct != -20 {
		t.Fatalf("duration pct should floor at -20, got %d", mods.DurationPct)
	}
}

func TestAutoEat_StepsWithHitpoints(t *testing.T) {
	rules := New(testRegistry(t))

	state := game.NewPlayerState("p1", 20)
	settings := rules.AutoEat(state)
	if settings.ThresholdPct != 25 || settings.EfficiencyPct != 100 {
		t.Fatalf("settings at hp 10 = %+v", settings)
	}

	state.SkillXP[content.SkillHitpoints] = game.XPForLevel(80)
	if settings := rules.AutoEat(state); settings.ThresholdPct != 40 {
		t.Fatalf("threshold at hp 80 = %d, want 40", settings.ThresholdPct)
	}
}

func TestPlayerStats_UnarmedDefaults(t *testing.T) {
	rules := New(testRegistry(t))
	state := game.NewPlayerState("p1", 20)

	stats := rules.PlayerStats(state)
	if stats.Style != content.StyleMelee {
		t.Fatalf("default style = %s, want melee", stats.Style)
	}
	if stats.AttackTicks != DefaultAttackTicks {
		t.Fatalf("unarmed attack ticks = %d, want %d", stats.AttackTicks, DefaultAttackTicks)
	}
	// Attack and defence both level 1.
	if stats.Accuracy != 14 || stats.Evasion != 14 {
		t.Fatalf("accuracy/evasion = %d/%d, want 14/14", stats.Accuracy, stats.Evasion)
	}
	if stats.MinHit != 1 || stats.MaxHit != 1 {
		t.Fatalf("hit range = [%d,%d], want [1,1]", stats.MinHit, stats.MaxHit)
	}
}

func TestPlayerStats_EquipmentAndLevels(t *testing.T) {
	rules := New(testRegistry(t))
	state := game.NewPlayerState("p1", 20)
	state.SkillXP[content.SkillAttack] = game.XPForLevel(30)
	state.SkillXP[content.SkillDefence] = game.XPForLevel(10)
	state.Equipment = map[content.EquipSlot]content.ItemID{
		content.SlotWeapon: "bronze_sword",
		content.SlotBody:   "leather_body",
	}

	stats := rules.PlayerStats(state)
	if stats.AttackTicks != 35 {
		t.Fatalf("attack ticks = %d, want weapon's 35", stats.AttackTicks)
	}
	if stats.Accuracy != 10+30*4+10 {
		t.Fatalf("accuracy = %d, want %d", stats.Accuracy, 10+30*4+10)
	}
	if stats.Evasion != 10+10*4+6 {
		t.Fatalf("evasion = %d, want %d", stats.Evasion, 10+10*4+6)
	}
	if stats.MaxHit != 1+(30*2+8)/5 {
		t.Fatalf("max hit = %d, want %d", stats.MaxHit, 1+(30*2+8)/5)
	}
}

func TestPlayerStats_StyleGovernsSkill(t *testing.T) {
	rules := New(testRegistry(t))
	state := game.NewPlayerState("p1", 20)
	state.Style = content.StyleRanged
	state.SkillXP[content.SkillRanged] = game.XPForLevel(20)
	state.SkillXP[content.SkillAttack] = game.XPForLevel(60)

	stats := rules.PlayerStats(state)
	if stats.Style != content.StyleRanged {
		t.Fatalf("style = %s, want ranged", stats.Style)
	}
	if stats.Accuracy != 10+20*4 {
		t.Fatalf("accuracy should use the ranged level: got %d want %d", stats.Accuracy, 10+20*4)
	}
}

func TestMonsterStats_Passthrough(t *testing.T) {
	rules := New(testRegistry(t))
	def := content.MonsterDef{
		ID: "rat", HP: 10, AttackTicks: 45, Accuracy: 50, Evasion: 20,
		MinHit: 1, MaxHit: 3, Style: content.StyleMelee,
	}
	stats := rules.MonsterStats(def)
	if stats.Accuracy != 50 || stats.Evasion != 20 || stats.MinHit != 1 || stats.MaxHit != 3 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.AttackTicks != 45 || stats.Style != content.StyleMelee {
		t.Fatalf("ticks/style = %d/%s", stats.AttackTicks, stats.Style)
	}
}
