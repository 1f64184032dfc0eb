// Package config loads settings for the buddyctl demo CLI from a TOML
// file. Nothing in the buddy package depends on this — the core takes
// its arena size as a plain argument, per spec.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the handful of settings buddyctl accepts from a file
// instead of flags.
type Config struct {
	// ArenaSizeBytes is the default arena size for commands that don't
	// override it with --size. Zero means "let the allocator pick its
	// own default".
	ArenaSizeBytes uint64 `toml:"arena_size_bytes"`
	// Verbose enables debug-level structured logging on the pool.
	Verbose bool `toml:"verbose"`
	// Seed seeds the stress command's pseudo-random operation sequence.
	Seed int64 `toml:"seed"`
}

// Default returns the configuration buddyctl uses when no file is given.
func Default() Config {
	return Config{ArenaSizeBytes: 0, Verbose: false, Seed: 1}
}

// Load reads and decodes a TOML config file at path, starting from
// Default() so any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: load %s", path)
	}
	return cfg, nil
}
