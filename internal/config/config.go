// Package config loads map generator settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/biome-map/internal/world"
)

// Config is the generator's file and environment configuration.
type Config struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Seed     int64         `yaml:"seed"` // 0 picks a random seed per run
	LogLevel string        `yaml:"log_level"`
	Database string        `yaml:"database"` // Run ledger path; empty disables it
	Preview  PreviewConfig `yaml:"preview"`
}

// PreviewConfig controls the optional PNG preview.
type PreviewConfig struct {
	Path     string  `yaml:"path"` // PNG output; empty disables it
	TileSize int     `yaml:"tile_size"`
	Shading  float64 `yaml:"shading"` // Brightness jitter, 0..1
}

// Default returns a configuration that generates a map without any files.
func Default() Config {
	gen := world.DefaultGenConfig()
	return Config{
		Width:    gen.Width,
		Height:   gen.Height,
		Seed:     gen.Seed,
		LogLevel: "info",
		Preview: PreviewConfig{
			TileSize: 4,
			Shading:  0.08,
		},
	}
}

// Load reads a YAML file over Default and validates the result. Keys missing
// from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks dimensions, log level and shading, and fills in defaults
// for an empty log level or tile size.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("map dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Preview.TileSize <= 0 {
		c.Preview.TileSize = 4
	}
	if c.Preview.Shading < 0 || c.Preview.Shading > 1 {
		return fmt.Errorf("preview.shading must be within [0, 1], got %g", c.Preview.Shading)
	}
	return nil
}

// GenConfig returns the world generation parameters.
func (c *Config) GenConfig() world.GenConfig {
	return world.GenConfig{
		Width:  c.Width,
		Height: c.Height,
		Seed:   c.Seed,
	}
}

// ParseLevel maps a log_level string onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level %q is not one of debug, info, warn, error", s)
}

// WriteDefault writes the default configuration to the provided path.
func WriteDefault(path string) error {
	cfg := Default()

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}
