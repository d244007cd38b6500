package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsModeToStrict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "berg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roots:\n  - src\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"src"}, cfg.Roots)
	assert.Equal(t, "strict", cfg.Mode)
}

func TestLoadConfigRejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "berg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: chaotic\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "berg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nope: true\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
