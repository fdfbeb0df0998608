// Package config loads the TOML configuration of the navigation tools and
// watches it for changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned for configuration files that parse but carry invalid values.
var ErrInvalidConfig = errors.New("invalid config")

// MaxTickRate is the highest accepted engine.tick_rate in ticks per second.
const MaxTickRate = 1000

// Config holds the server, frame loop, navigation and logging settings.
type Config struct {
	Server     ServerConfig          `toml:"server"`
	Engine     EngineConfig          `toml:"engine"`
	Navigation navigation.Descriptor `toml:"navigation"`
	Log        LogConfig             `toml:"log"`
}

// ServerConfig configures the websocket bridge.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	StaticDir string `toml:"static_dir"`
}

// EngineConfig configures the frame loop.
type EngineConfig struct {
	TickRate  float64 `toml:"tick_rate"`
	Profiling bool    `toml:"profiling"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Addr      string
	StaticDir string
	Mode      string
	LogLevel  string
	TickRate  float64
	Profiling bool
}

var validLevels = []string{"debug", "info", "warn", "warning", "error"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:     ServerConfig{Addr: ":8047"},
		Engine:     EngineConfig{TickRate: 60},
		Navigation: navigation.Descriptor{Mode: "examine"},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads a TOML config file. Fields not set in the file keep their defaults.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports values no component can use.
func (c Config) Validate() error {
	if c.Engine.TickRate < 0 {
		return fmt.Errorf("%w: engine.tick_rate must not be negative, got %v", ErrInvalidConfig, c.Engine.TickRate)
	}
	if c.Engine.TickRate > MaxTickRate {
		return fmt.Errorf("%w: engine.tick_rate must be at most %v, got %v", ErrInvalidConfig, MaxTickRate, c.Engine.TickRate)
	}
	if c.Navigation.Speed < 0 {
		return fmt.Errorf("%w: navigation.speed must not be negative, got %v", ErrInvalidConfig, c.Navigation.Speed)
	}
	if c.Log.Level != "" && !contains(validLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// Resolve applies CLI flags over the file settings and fills remaining empty
// fields with defaults. Flags take priority when non-zero.
func (c *Config) Resolve(flags Flags) {
	def := Default()

	c.Server.Addr = common.Coalesce(flags.Addr, c.Server.Addr, def.Server.Addr)
	c.Server.StaticDir = common.Coalesce(flags.StaticDir, c.Server.StaticDir)
	c.Navigation.Mode = common.Coalesce(flags.Mode, c.Navigation.Mode, def.Navigation.Mode)
	c.Log.Level = common.Coalesce(flags.LogLevel, c.Log.Level, def.Log.Level)
	c.Engine.TickRate = common.Coalesce(flags.TickRate, c.Engine.TickRate, def.Engine.TickRate)
	if flags.Profiling {
		c.Engine.Profiling = true
	}
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
