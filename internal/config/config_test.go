package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textrope/internal/logging"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel())
	assert.Equal(t, 32, cfg.Snapshots.Limit)
	assert.Equal(t, Duration(200*time.Millisecond), cfg.Watch.Debounce)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ropectl.toml")
	content := `
[logging]
level = "debug"

[input]
normalize = "nfc"
rebalance = true

[snapshots]
limit = 4

[watch]
debounce = "1s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "nfc", cfg.Input.Normalize)
	assert.True(t, cfg.Input.Rebalance)
	assert.Equal(t, 4, cfg.Snapshots.Limit)
	assert.Equal(t, Duration(time.Second), cfg.Watch.Debounce)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ropectl.toml")
	require.NoError(t, os.WriteFile(path, []byte("[snapshots]\nlimit = 1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Snapshots.Limit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[logging\nlevel = 1"},
		{"unknown key", "[logging]\ncolour = \"red\"\n"},
		{"bad duration", "[watch]\ndebounce = \"soon\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Parse("test.toml", []byte(tt.data), &cfg)
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "test.toml", perr.Path)
			assert.Contains(t, perr.Error(), "test.toml")
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, envMap(map[string]string{
		"ROPECTL_LOG_LEVEL":      "warn",
		"ROPECTL_NORMALIZE":      "nfd",
		"ROPECTL_REBALANCE":      "true",
		"ROPECTL_SNAPSHOT_LIMIT": "0",
		"ROPECTL_WATCH_DEBOUNCE": "50ms",
	}))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "nfd", cfg.Input.Normalize)
	assert.True(t, cfg.Input.Rebalance)
	assert.Equal(t, 0, cfg.Snapshots.Limit)
	assert.Equal(t, Duration(50*time.Millisecond), cfg.Watch.Debounce)
}

func TestApplyEnv_Invalid(t *testing.T) {
	for _, key := range []string{"ROPECTL_REBALANCE", "ROPECTL_SNAPSHOT_LIMIT", "ROPECTL_WATCH_DEBOUNCE"} {
		cfg := Default()
		err := ApplyEnv(&cfg, envMap(map[string]string{key: "garbage"}))
		assert.Error(t, err, key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"normalize", func(c *Config) { c.Input.Normalize = "nfkc" }},
		{"limit", func(c *Config) { c.Snapshots.Limit = -1 }},
		{"debounce", func(c *Config) { c.Watch.Debounce = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidValue)
		})
	}
}
