package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Environment overrides applied by ApplyEnv
const (
	EnvPreset        = "ROADRUNNER_PRESET"
	EnvSeed          = "ROADRUNNER_SEED"
	EnvTickRate      = "ROADRUNNER_TICK_RATE"
	EnvControl       = "ROADRUNNER_CONTROL"
	EnvLanes         = "ROADRUNNER_LANES"
	EnvCollisionMode = "ROADRUNNER_COLLISION_MODE"
)

// Load reads a TOML config file over the defaults
// A missing file yields defaults without error
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err := Decode(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads path into cfg; fields absent from the file keep their current values
func Decode(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return nil
}

// DecodeString parses an in-memory TOML document into cfg
func DecodeString(data string, cfg *Config) error {
	if _, err := toml.Decode(data, cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Save writes cfg as TOML, creating parent directories
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from ROADRUNNER_* environment variables
// Malformed values are ignored, matching the file loader's keep-default behavior
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPreset); v != "" {
		if err := c.ApplyPreset(v); err == nil {
			c.Preset = v
		}
	}

	if v := os.Getenv(EnvSeed); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Loop.Seed = seed
		}
	}

	if v := os.Getenv(EnvTickRate); v != "" {
		if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
			c.Loop.TickRate = rate
		}
	}

	if v := os.Getenv(EnvControl); v == ControlLane || v == ControlDrag {
		c.Player.Control = v
	}

	if v := os.Getenv(EnvLanes); v != "" {
		if lanes, err := strconv.Atoi(v); err == nil && (lanes == 2 || lanes == 3) {
			c.Obstacles.Lanes = lanes
		}
	}

	if v := os.Getenv(EnvCollisionMode); v == CollisionLane || v == CollisionContinuous {
		c.Collision.Mode = v
	}
}
