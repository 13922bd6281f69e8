package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fboard", "config.yml")
	loader := LoadFrom(path)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, path, loader.GetConfigPath())
	assert.True(t, loader.Created())

	_, err = os.Stat(path)
	assert.NoError(t, err)

	again := LoadFrom(path)
	_, err = again.Load()
	require.NoError(t, err)
	assert.False(t, again.Created())
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "storage:\n  root_path: /tmp/board\n  load_concurrency: 0\nwatch:\n  debounce_ms: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/board", cfg.Storage.RootPath)
	assert.Equal(t, "Arquivados", cfg.Storage.ArchivedStage)
	assert.Equal(t, 4, cfg.Storage.LoadConcurrency)
	assert.True(t, cfg.Storage.CreateEmptyComments)
	assert.Equal(t, 50, cfg.Watch.DebounceMS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"q", "ctrl+c"}, cfg.Keybindings.Quit)
}

func TestLoader_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0644))

	_, err := LoadFrom(path).Load()
	assert.Error(t, err)
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	loader := LoadFrom(path)
	cfg := Default()
	cfg.Storage.RootPath = "/data/board"
	cfg.Storage.ArchivedStage = "archive"

	require.NoError(t, loader.Save(cfg))
	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
