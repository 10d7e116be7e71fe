package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "nono.yaml", `
logging:
  level: debug
  format: json
store:
  path: /tmp/trace.db
robot:
  write_delay_ms: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/trace.db", cfg.Store.Path)
	assert.Equal(t, 5, cfg.Robot.WriteDelayMS)
	assert.Equal(t, 1, cfg.Robot.PanSteps, "unset keys keep their defaults")
	assert.Equal(t, "test-session-default", cfg.Harness.Session)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "nono.toml", `
[harness]
golden_dir = "testdata/golden"
session = "ci"

[robot]
pan_steps = 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testdata/golden", cfg.Harness.GoldenDir)
	assert.Equal(t, "ci", cfg.Harness.Session)
	assert.Equal(t, 4, cfg.Robot.PanSteps)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"typo.yaml", "loging:\n  level: debug\n"},
		{"typo.toml", "[robot]\npan_step = 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.name, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"level", "logging:\n  level: loud\n"},
		{"format", "logging:\n  format: xml\n"},
		{"delay", "robot:\n  write_delay_ms: -1\n"},
		{"steps", "robot:\n  pan_steps: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("logging:\n  level: warn\n"), 0o644))
	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}
