package sim

import (
	"math/rand/v2"
	"testing"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

// testRNG returns a deterministic source; equal seeds walk equal
// streams.
func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

type stubModifiers struct {
	mods ActionModifiers
	eat  AutoEatSettings
}

func (s stubModifiers) ActionModifiers(game.PlayerState, content.ActionDef) ActionModifiers {
	return s.mods
}

func (s stubModifiers) AutoEat(game.PlayerState) AutoEatSettings { return s.eat }

type stubCombat struct {
	player CombatStats
}

func (s stubCombat) PlayerStats(game.PlayerState) CombatStats { return s.player }

func (s stubCombat) MonsterStats(def content.MonsterDef) CombatStats {
	return CombatStats{
		Accuracy:    def.Accuracy,
		Evasion:     def.Evasion,
		MinHit:      def.MinHit,
		MaxHit:      def.MaxHit,
		AttackTicks: def.AttackTicks,
		Style:       def.Style,
	}
}

// defaultPlayerStats land every hit, are never evaded, and deal a fixed
// two points, keeping combat arithmetic exact in tests.
func defaultPlayerStats() CombatStats {
	return CombatStats{Accuracy: 100, MinHit: 2, MaxHit: 2, AttackTicks: 40, Style: content.StyleMelee}
}

func testEngine(t *testing.T, packs ...content.Pack) *Engine {
	t.Helper()
	reg, err := content.NewStatic(packs...)
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return &Engine{
		Content:   reg,
		Modifiers: stubModifiers{eat: AutoEatSettings{EfficiencyPct: 100}},
		Combat:    stubCombat{player: defaultPlayerStats()},
	}
}

func baseState() game.PlayerState {
	return game.NewPlayerState("p1", 20)
}

func countKind(changes []Change, kind ChangeKind) int {
	n := 0
	for _, ch := range changes {
		if ch.Kind == kind {
			n++
		}
	}
	return n
}

func basePack() content.Pack {
	return content.Pack{
		Skills: []content.SkillDef{
			{ID: content.SkillHitpoints, Name: "Hitpoints"},
			{ID: content.SkillAttack, Name: "Attack"},
			{ID: "foraging", Name: "Foraging"},
			{ID: "woodcutting", Name: "Woodcutting"},
			{ID: "smithing", Name: "Smithing"},
			{ID: "thieving", Name: "Thieving"},
			{ID: "cooking", Name: "Cooking"},
			{ID: "agility", Name: "Agility"},
			{ID: "farming", Name: "Farming"},
		},
		Items: []content.ItemDef{
			{ID: "berry", Name: "Berry", SellValue: 1},
			{ID: "log", Name: "Log", SellValue: 5},
			{ID: "bird_nest", Name: "Bird Nest", SellValue: 50},
			{ID: "ore", Name: "Ore", SellValue: 3},
			{ID: "bar", Name: "Bar", SellValue: 12},
			{ID: "trinket", Name: "Trinket", SellValue: 8},
			{ID: "hide", Name: "Hide", SellValue: 4},
			{ID: "raw_fish", Name: "Raw Fish", SellValue: 2},
			{ID: "cooked_fish", Name: "Cooked Fish", SellValue: 6, Heal: 20},
			{ID: "perfect_fish", Name: "Perfect Fish", SellValue: 10, Heal: 30},
			{ID: "burnt_fish", Name: "Burnt Fish"},
			{ID: "seed_potato", Name: "Seed Potato", SellValue: 1},
			{ID: "potato", Name: "Potato", SellValue: 2, Heal: 5},
			{ID: "sword", Name: "Sword", SellValue: 100, Slot: content.SlotWeapon, Style: content.StyleMelee, AttackTicks: 40, Bonus: content.CombatBonus{Accuracy: 10, Strength: 5}},
			{ID: "shield", Name: "Shield", SellValue: 80, Slot: content.SlotShield, Bonus: content.CombatBonus{Defence: 8}},
		},
		Actions: []content.ActionDef{
			{
				ID: "gather_berries", Name: "Gather Berries", Skill: "foraging", Kind: content.KindGathering,
				Duration: 50, XP: 10, MasteryXP: 5,
				Drops: []content.Drop{{Item: "berry", Min: 1, Max: 1}},
			},
			{
				ID: "cut_tree", Name: "Cut Tree", Skill: "woodcutting", Kind: content.KindGathering,
				Duration: 50, XP: 10, MasteryXP: 5,
				Drops: []content.Drop{{Item: "log", Min: 1, Max: 1}},
				Rare:  &content.RareDrop{Item: "bird_nest", Chance: 10},
				Node:  &content.NodeSpec{HP: 3, RespawnTicks: 100, RegenTicks: 200},
			},
			{
				ID: "smelt_bar", Name: "Smelt Bar", Skill: "smithing", Kind: content.KindCrafting,
				Duration: 60, XP: 8, MasteryXP: 4,
				Inputs: map[content.ItemID]int{"ore": 1},
				Drops:  []content.Drop{{Item: "bar", Min: 1, Max: 1}},
			},
			{
				ID: "pickpocket", Name: "Pickpocket", Skill: "thieving", Kind: content.KindThieving,
				Duration: 30, XP: 6, MasteryXP: 3,
				Drops: []content.Drop{{Item: "trinket", Min: 1, Max: 1}},
				Risk:  &content.RiskSpec{SuccessBase: 0, SuccessPerMastery: 0, DamageMin: 5, DamageMax: 5, StunTicks: 60},
			},
			{
				ID: "burgle", Name: "Burgle", Skill: "thieving", Kind: content.KindThieving,
				Duration: 30, XP: 20, MasteryXP: 10,
				Drops: []content.Drop{{Item: "trinket", Min: 2, Max: 2}},
				Risk:  &content.RiskSpec{SuccessBase: 0, SuccessPerMastery: 0, DamageMin: 200, DamageMax: 200},
			},
			{
				ID: "cook_fish", Name: "Cook Fish", Skill: "cooking", Kind: content.KindCooking,
				Duration: 40, XP: 12, MasteryXP: 6,
				Inputs: map[content.ItemID]int{"raw_fish": 1},
				Drops:  []content.Drop{{Item: "cooked_fish", Min: 1, Max: 1}},
				Cook:   &content.CookSpec{SuccessBase: 100, SuccessCap: 100, BurntItem: "burnt_fish"},
			},
			{
				ID: "scorch_fish", Name: "Scorch Fish", Skill: "cooking", Kind: content.KindCooking,
				Duration: 40, XP: 12, MasteryXP: 6,
				Inputs: map[content.ItemID]int{"raw_fish": 1},
				Drops:  []content.Drop{{Item: "cooked_fish", Min: 1, Max: 1}},
				Cook:   &content.CookSpec{SuccessBase: 0, SuccessCap: 100, BurntItem: "burnt_fish"},
			},
			{
				ID: "chef_special", Name: "Chef Special", Skill: "cooking", Kind: content.KindCooking,
				Duration: 40, XP: 12, MasteryXP: 6,
				Inputs: map[content.ItemID]int{"raw_fish": 1},
				Drops:  []content.Drop{{Item: "cooked_fish", Min: 1, Max: 1}},
				Cook:   &content.CookSpec{SuccessBase: 100, SuccessCap: 100, PerfectBase: 100, PerfectItem: "perfect_fish", BurntItem: "burnt_fish"},
			},
		},
		Monsters: []content.MonsterDef{
			{ID: "rat", Name: "Rat", HP: 10, AttackTicks: 40, Accuracy: 50, Evasion: 0, MinHit: 2, MaxHit: 4, Style: content.StyleMelee, CoinsMin: 5, CoinsMax: 10, Drops: []content.Drop{{Item: "hide", Min: 1, Max: 1}}},
			{ID: "brute", Name: "Brute", HP: 50, AttackTicks: 40, Accuracy: 1000, Evasion: 0, MinHit: 95, MaxHit: 95, Style: content.StyleMelee},
			{ID: "crusher", Name: "Crusher", HP: 50, AttackTicks: 40, Accuracy: 1000, Evasion: 0, MinHit: 200, MaxHit: 200, Style: content.StyleMelee},
		},
		Areas: []content.AreaDef{
			{ID: "rat_den", Name: "Rat Den", Monsters: []content.MonsterID{"rat"}, Loop: true, SpawnTicks: 30},
			{ID: "rat_pair", Name: "Rat Pair", Monsters: []content.MonsterID{"rat", "rat"}, Loop: false, SpawnTicks: 30},
			{ID: "brute_den", Name: "Brute Den", Monsters: []content.MonsterID{"brute"}, Loop: true, SpawnTicks: 30},
			{ID: "crusher_den", Name: "Crusher Den", Monsters: []content.MonsterID{"crusher"}, Loop: true, SpawnTicks: 30},
		},
		Obstacles: []content.ObstacleDef{
			{ID: "wall", Name: "Wall", Slot: 0, Skill: "agility", DurationMin: 20, DurationMax: 20, XP: 5, CoinsMin: 1, CoinsMax: 1},
			{ID: "rope", Name: "Rope", Slot: 1, Skill: "agility", DurationMin: 30, DurationMax: 30, XP: 7},
		},
		Crops: []content.CropDef{
			{ID: "potato_crop", Name: "Potato", Skill: "farming", Seed: "seed_potato", GrowTicks: 200, Produce: "potato", Quantity: 3, XP: 9},
		},
		Plots:    []content.PlotDef{{ID: "plot_a"}},
		Stations: []content.StationDef{{ID: "stove", Name: "Stove"}},
	}
}

func townPack() content.Pack {
	return content.Pack{
		Town: &content.TownDef{
			UpdateTicks:    100,
			SeasonTicks:    300,
			BaseProduction: 2,
			Seasons: []content.SeasonDef{
				{ID: "spring", Name: "Spring", ProductionPct: 100},
				{ID: "winter", Name: "Winter", ProductionPct: 50},
			},
		},
	}
}
