package main

import (
	"context"
	"testing"

	nopnotify "idleverse/internal/adapter/notify/nop"
	memrepo "idleverse/internal/adapter/repo/memory"
	"idleverse/internal/config"
	"idleverse/internal/domain/game"
)

func TestMustBuildRepos_MemoryWithoutDSN(t *testing.T) {
	snapshots, execs, changeLog, txManager := mustBuildRepos(config.Config{})
	if snapshots == nil || execs == nil || changeLog == nil || txManager == nil {
		t.Fatal("expected in-memory repositories")
	}
}

func TestSeedDemoPlayer_SeedsMissingPlayer(t *testing.T) {
	store := memrepo.NewStore()
	snapshots := memrepo.NewSnapshotRepo(store)

	seedDemoPlayer(config.Config{DemoPlayerID: "demo", InventoryCapacity: 10}, snapshots)

	state, err := snapshots.GetByPlayerID(context.Background(), "demo")
	if err != nil {
		t.Fatalf("expected seeded player: %v", err)
	}
	if state.Inventory.Capacity != 10 {
		t.Fatalf("unexpected capacity %d", state.Inventory.Capacity)
	}
}

func TestSeedDemoPlayer_LeavesExistingAlone(t *testing.T) {
	store := memrepo.NewStore()
	snapshots := memrepo.NewSnapshotRepo(store)
	existing := game.NewPlayerState("demo", 10)
	existing.Coins = 500
	store.SeedSnapshot(existing)

	seedDemoPlayer(config.Config{DemoPlayerID: "demo", InventoryCapacity: 10}, snapshots)

	state, err := snapshots.GetByPlayerID(context.Background(), "demo")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if state.Coins != 500 {
		t.Fatalf("seed clobbered existing snapshot, coins=%d", state.Coins)
	}
}

func TestSeedDemoPlayer_DisabledWhenEmpty(t *testing.T) {
	store := memrepo.NewStore()
	snapshots := memrepo.NewSnapshotRepo(store)

	seedDemoPlayer(config.Config{InventoryCapacity: 10}, snapshots)

	if _, err := snapshots.GetByPlayerID(context.Background(), "demo"); err == nil {
		t.Fatal("expected no player seeded")
	}
}

func TestMustBuildNotifier_NopWithoutURL(t *testing.T) {
	n := mustBuildNotifier(config.Config{})
	if _, ok := n.(nopnotify.Notifier); !ok {
		t.Fatalf("expected nop notifier, got %T", n)
	}
}
