// Package config loads nono settings from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given. It may be absent.
const DefaultFile = "nono.yaml"

// Config is the full settings tree.
type Config struct {
	Logging Logging `yaml:"logging" toml:"logging"`
	Store   Store   `yaml:"store" toml:"store"`
	Harness Harness `yaml:"harness" toml:"harness"`
	Robot   Robot   `yaml:"robot" toml:"robot"`
}

// Logging selects the slog handler.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" toml:"level"`
	// Format is text or json.
	Format string `yaml:"format" toml:"format"`
}

// Store locates the trace database.
type Store struct {
	// Path is the SQLite file. Empty means in-memory.
	Path string `yaml:"path" toml:"path"`
}

// Harness configures scenario runs.
type Harness struct {
	// GoldenDir holds golden trace files. Empty means beside each scenario.
	GoldenDir string `yaml:"golden_dir" toml:"golden_dir"`
	// Session is used when a scenario names none.
	Session string `yaml:"session" toml:"session"`
}

// Robot holds defaults for scenario steps that leave them out.
type Robot struct {
	WriteDelayMS int `yaml:"write_delay_ms" toml:"write_delay_ms"`
	PanSteps     int `yaml:"pan_steps" toml:"pan_steps"`
}

// Default returns the settings used when no file is found.
func Default() Config {
	return Config{
		Logging: Logging{Level: "info", Format: "text"},
		Harness: Harness{Session: "test-session-default"},
		Robot:   Robot{PanSteps: 1},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .toml is TOML, anything else YAML. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path. An empty path tries DefaultFile and falls back
// to Default when it does not exist.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(DefaultFile)
}

// Validate checks enumerated and ranged settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if c.Robot.WriteDelayMS < 0 {
		return fmt.Errorf("robot.write_delay_ms: must be non-negative, got %d", c.Robot.WriteDelayMS)
	}
	if c.Robot.PanSteps < 1 {
		return fmt.Errorf("robot.pan_steps: must be at least 1, got %d", c.Robot.PanSteps)
	}
	return nil
}
