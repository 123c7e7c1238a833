package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure reported by Load.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Scene   SceneConfig   `toml:"scene" yaml:"scene"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Demo    DemoConfig    `toml:"demo" yaml:"demo"`
}

type SceneConfig struct {
	Name              string        `toml:"name" yaml:"name"`
	DefaultEntityName string        `toml:"default_entity_name" yaml:"default_entity_name"`
	EntityCapacity    int           `toml:"entity_capacity" yaml:"entity_capacity"` // initial size of the id index and tree arena
	PoolCapacity      int           `toml:"pool_capacity" yaml:"pool_capacity"`     // initial size of each lazily created pool
	TickRate          time.Duration `toml:"tick_rate" yaml:"tick_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type DemoConfig struct {
	Ticks int `toml:"ticks" yaml:"ticks"` // 0 = run until interrupted
}

// Load reads a config file. Files ending in .yaml or .yml are parsed as YAML,
// everything else as TOML. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the driver cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Scene.TickRate <= 0:
		return fmt.Errorf("%w: scene.tick_rate must be positive, got %s", ErrInvalid, c.Scene.TickRate)
	case c.Scene.EntityCapacity < 0:
		return fmt.Errorf("%w: scene.entity_capacity must not be negative, got %d", ErrInvalid, c.Scene.EntityCapacity)
	case c.Scene.PoolCapacity < 0:
		return fmt.Errorf("%w: scene.pool_capacity must not be negative, got %d", ErrInvalid, c.Scene.PoolCapacity)
	case c.Demo.Ticks < 0:
		return fmt.Errorf("%w: demo.ticks must not be negative, got %d", ErrInvalid, c.Demo.Ticks)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Scene: SceneConfig{
			Name:              "main",
			DefaultEntityName: "Unnamed",
			EntityCapacity:    1024,
			PoolCapacity:      256,
			TickRate:          16 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Demo: DemoConfig{
			Ticks: 0,
		},
	}
}
