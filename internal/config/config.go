// Package config reads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string `env:"IDLEVERSE_LISTEN_ADDR" envDefault:":8080"`
	// DatabaseDSN selects postgres persistence; empty runs on in-memory
	// repositories.
	DatabaseDSN string `env:"IDLEVERSE_DB_DSN"`
	// ContentDir is the directory of YAML content-pack files.
	ContentDir string `env:"IDLEVERSE_CONTENT_DIR" envDefault:"./content"`
	// NATSURL enables change-batch publishing; empty disables it.
	NATSURL string `env:"IDLEVERSE_NATS_URL"`
	// InventoryCapacity is the stack capacity given to new players.
	InventoryCapacity int `env:"IDLEVERSE_INVENTORY_CAPACITY" envDefault:"24"`
	// MaxAdvanceTicks caps the tick budget of a single advance request.
	// Zero removes the cap.
	MaxAdvanceTicks int `env:"IDLEVERSE_MAX_ADVANCE_TICKS" envDefault:"864000"`
	// DemoPlayerID is seeded into an empty store so a fresh server is
	// immediately playable. Empty skips seeding.
	DemoPlayerID string `env:"IDLEVERSE_DEMO_PLAYER" envDefault:"demo-player"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.InventoryCapacity <= 0 {
		return Config{}, fmt.Errorf("inventory capacity must be positive, got %d", cfg.InventoryCapacity)
	}
	if cfg.MaxAdvanceTicks < 0 {
		return Config{}, fmt.Errorf("max advance ticks must not be negative, got %d", cfg.MaxAdvanceTicks)
	}
	return cfg, nil
}
