package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textrope/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "ROPECTL_"

// Config holds all ropectl settings.
type Config struct {
	Logging   LoggingConfig  `toml:"logging"`
	Input     InputConfig    `toml:"input"`
	Snapshots SnapshotConfig `toml:"snapshots"`
	Watch     WatchConfig    `toml:"watch"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// InputConfig controls how input is turned into a text.
type InputConfig struct {
	// Normalize is the Unicode normalization form applied while reading:
	// "none", "nfc" or "nfd".
	Normalize string `toml:"normalize"`
	// Rebalance rebuilds the tree after edit scripts run.
	Rebalance bool `toml:"rebalance"`
}

// SnapshotConfig controls script snapshots.
type SnapshotConfig struct {
	// Limit is the number of snapshots kept; 0 means unlimited.
	Limit int `toml:"limit"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is how long file events are coalesced before a reload.
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Input:     InputConfig{Normalize: "none"},
		Snapshots: SnapshotConfig{Limit: 32},
		Watch:     WatchConfig{Debounce: Duration(200 * time.Millisecond)},
	}
}

// Load returns the defaults overlaid with the TOML file at path, if any.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Parse(path, data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg. Unknown keys are rejected. The source
// name is used in error messages only.
func Parse(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// ApplyEnv overrides cfg with ROPECTL_* variables found through lookup,
// typically os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookup(EnvPrefix + "NORMALIZE"); ok {
		cfg.Input.Normalize = v
	}
	if v, ok := lookup(EnvPrefix + "REBALANCE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sREBALANCE: %w", EnvPrefix, err)
		}
		cfg.Input.Rebalance = b
	}
	if v, ok := lookup(EnvPrefix + "SNAPSHOT_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSNAPSHOT_LIMIT: %w", EnvPrefix, err)
		}
		cfg.Snapshots.Limit = n
	}
	if v, ok := lookup(EnvPrefix + "WATCH_DEBOUNCE"); ok {
		if err := cfg.Watch.Debounce.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sWATCH_DEBOUNCE: %w", EnvPrefix, err)
		}
	}
	return nil
}

// LoadWithEnv loads the file at path and applies the process environment.
func LoadWithEnv(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks that every setting is within its domain.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidValue, err)
	}
	switch strings.ToLower(c.Input.Normalize) {
	case "", "none", "nfc", "nfd":
	default:
		return fmt.Errorf("%w: input.normalize %q (must be none, nfc, or nfd)", ErrInvalidValue, c.Input.Normalize)
	}
	if c.Snapshots.Limit < 0 {
		return fmt.Errorf("%w: snapshots.limit %d is negative", ErrInvalidValue, c.Snapshots.Limit)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce is negative", ErrInvalidValue)
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}
