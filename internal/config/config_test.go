package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinedex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data_dir: /srv/movies\nlog_level: debug\npage_size_max: 50\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/movies", cfg.DataDir)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 50, cfg.PageSizeMax)
	// Untouched keys keep their defaults.
	assert.Equal(t, ":8000", cfg.Listen)
	assert.Equal(t, 20, cfg.PageSizeDefault)
}

func TestLoad_RejectsBadBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinedex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size_max: 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPageBounds(t *testing.T) {
	b := Default().PageBounds()
	assert.Equal(t, 1, b.Min)
	assert.Equal(t, 100, b.Max)
	assert.Equal(t, 20, b.Default)
}
