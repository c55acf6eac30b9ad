package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_explicit_file(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: https://api.example.com\n"), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.URL)
}

func TestLoadConfig_invalid_explicit_file(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0644))

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadConfig_missing_explicit_file(t *testing.T) {
	t.Parallel()

	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_no_path(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
}
