// Command forecast runs the simulation offline: load a content
// directory, advance a player by a tick budget and print what happened.
// Useful for balancing content packs without a running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"maps"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"idleverse/internal/adapter/content/yamldir"
	basicrules "idleverse/internal/adapter/rules/basic"
	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
	"idleverse/internal/domain/sim"
	"idleverse/internal/random"
)

func main() {
	var (
		contentDir string
		statePath  string
		player     string
		capacity   int
		ticks      int
		seed       uint64
	)
	flag.StringVar(&contentDir, "content", "./content", "content directory")
	flag.StringVar(&statePath, "state", "", "player state fixture (JSON); empty starts a fresh player")
	flag.StringVar(&player, "player", "forecast", "player id for a fresh state")
	flag.IntVar(&capacity, "capacity", 24, "inventory capacity for a fresh state")
	flag.IntVar(&ticks, "ticks", 36000, "tick budget (10 ticks per second)")
	flag.Uint64Var(&seed, "seed", 0, "rng seed; 0 draws a fresh one")
	flag.Parse()

	registry, err := yamldir.Load(contentDir)
	if err != nil {
		log.Fatalf("load content: %v", err)
	}

	state, err := loadState(statePath, player, capacity)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if seed == 0 {
		seed = random.Seed()
	}
	rules := basicrules.New(registry)
	engine := &sim.Engine{Content: registry, Modifiers: rules, Combat: rules}

	start := time.Now()
	result, err := engine.Advance(state, ticks, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		log.Fatalf("advance: %v", err)
	}

	fmt.Printf("advanced %d/%d ticks in %s (seed %d, stop: %s)\n",
		result.Ticks, ticks, time.Since(start).Round(time.Millisecond), seed, result.Reason)
	printSummary(result.Changes)
	fmt.Printf("final: health %d/%d, coins %d, %d/%d inventory stacks\n",
		result.State.Health, result.State.MaxHealth(), result.State.Coins,
		result.State.Inventory.Stacks(), result.State.Inventory.Capacity)
}

func loadState(path, player string, capacity int) (game.PlayerState, error) {
	if path == "" {
		return game.NewPlayerState(player, capacity), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return game.PlayerState{}, fmt.Errorf("read state fixture: %w", err)
	}
	var state game.PlayerState
	if err := json.Unmarshal(raw, &state); err != nil {
		return game.PlayerState{}, fmt.Errorf("parse state fixture: %w", err)
	}
	return state, nil
}

func printSummary(changes []sim.Change) {
	if len(changes) == 0 {
		fmt.Println("no changes")
		return
	}

	byKind := map[sim.ChangeKind]int{}
	items := map[content.ItemID]int{}
	levels := map[content.SkillID]int{}
	for _, c := range changes {
		byKind[c.Kind]++
		switch c.Kind {
		case sim.ChangeItemGained:
			items[c.Item] += c.Amount
		case sim.ChangeLevelUp:
			if c.Level > levels[c.Skill] {
				levels[c.Skill] = c.Level
			}
		}
	}

	fmt.Println("changes:")
	for _, kind := range slices.Sorted(maps.Keys(byKind)) {
		fmt.Printf("  %-20s %7d\n", kind, byKind[kind])
	}
	if len(items) > 0 {
		fmt.Println("items gained:")
		for _, item := range slices.Sorted(maps.Keys(items)) {
			fmt.Printf("  %-20s %7d\n", item, items[item])
		}
	}
	if len(levels) > 0 {
		fmt.Println("levels reached:")
		for _, skill := range slices.Sorted(maps.Keys(levels)) {
			fmt.Printf("  %-20s %7d\n", skill, levels[skill])
		}
	}
}
