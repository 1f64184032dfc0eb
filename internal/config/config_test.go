package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, uint64(0), cfg.ArenaSizeBytes)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, int64(1), cfg.Seed)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buddyctl.toml")
	contents := "arena_size_bytes = 1048576\nverbose = true\nseed = 42\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1048576), cfg.ArenaSizeBytes)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadPartialFileKeepsOtherDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(path, []byte("verbose = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, uint64(0), cfg.ArenaSizeBytes)
	assert.Equal(t, int64(1), cfg.Seed)
}
