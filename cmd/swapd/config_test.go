package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigPrecedence(t *testing.T) {
	home := t.TempDir()

	cfg, err := LoadConfig(newViper(home))
	require.NoError(t, err)
	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, filepath.Join(home, "data"), cfg.DBDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.SyncWrites)

	file := "log_level: debug\nsync_writes: false\ndb_dir: /var/lib/swapd\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, configFileName), []byte(file), 0o600))
	cfg, err = LoadConfig(newViper(home))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.SyncWrites)
	assert.Equal(t, "/var/lib/swapd", cfg.DBDir)

	t.Setenv("SWAPD_LOG_LEVEL", "error")
	cfg, err = LoadConfig(newViper(home))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.False(t, cfg.SyncWrites)
}

func TestWriteConfig(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested")
	v := newViper(home)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	cfg.LogLevel = "debug"
	require.NoError(t, WriteConfig(v, cfg))

	cfg, err = LoadConfig(newViper(home))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, "data"), cfg.DBDir)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := newLogger(os.Stderr, "loud")
	assert.Error(t, err)
}
