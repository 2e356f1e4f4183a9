package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if cfg.ContentDir != "./content" {
		t.Fatalf("unexpected content dir %q", cfg.ContentDir)
	}
	if cfg.DatabaseDSN != "" || cfg.NATSURL != "" {
		t.Fatalf("expected empty DSN and NATS URL by default")
	}
	if cfg.InventoryCapacity != 24 {
		t.Fatalf("unexpected inventory capacity %d", cfg.InventoryCapacity)
	}
	if cfg.MaxAdvanceTicks != 864000 {
		t.Fatalf("unexpected advance cap %d", cfg.MaxAdvanceTicks)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("IDLEVERSE_LISTEN_ADDR", ":9090")
	t.Setenv("IDLEVERSE_DB_DSN", "postgres://localhost/idleverse")
	t.Setenv("IDLEVERSE_NATS_URL", "nats://localhost:4222")
	t.Setenv("IDLEVERSE_INVENTORY_CAPACITY", "12")
	t.Setenv("IDLEVERSE_MAX_ADVANCE_TICKS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDSN != "postgres://localhost/idleverse" {
		t.Fatalf("unexpected dsn %q", cfg.DatabaseDSN)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Fatalf("unexpected nats url %q", cfg.NATSURL)
	}
	if cfg.InventoryCapacity != 12 {
		t.Fatalf("unexpected inventory capacity %d", cfg.InventoryCapacity)
	}
	if cfg.MaxAdvanceTicks != 0 {
		t.Fatalf("unexpected advance cap %d", cfg.MaxAdvanceTicks)
	}
}

func TestLoad_RejectsNonPositiveCapacity(t *testing.T) {
	t.Setenv("IDLEVERSE_INVENTORY_CAPACITY", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero capacity")
	}
}
