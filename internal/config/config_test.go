package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, "pseudo", cfg.Defaults.Backend)
	assert.Equal(t, 3000.0, cfg.Defaults.Radius)
	assert.Equal(t, 10000, cfg.Defaults.Points)
	assert.Equal(t, 50, cfg.Defaults.GridResolution)
	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.Equal(t, "attractor", cfg.Defaults.AnomalyType)
	assert.Equal(t, "standard", cfg.Defaults.Mode)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 7878, cfg.Server.Port)
	assert.Equal(t, 100, cfg.History.MaxEntries)
	assert.NotEmpty(t, cfg.History.Path, "history path falls back to the data dir")
}

func TestLoadFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[defaults]
backend = "anu"
radius = 5000.0

[server]
port = 9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "anu", cfg.Defaults.Backend)
	assert.Equal(t, 5000.0, cfg.Defaults.Radius)
	assert.Equal(t, 9000, cfg.Server.Port)

	// Unset keys keep their defaults
	assert.Equal(t, 10000, cfg.Defaults.Points)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("DRIFT_DEFAULTS_BACKEND", "anu")
	t.Setenv("DRIFT_SERVER_PORT", "8123")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, "anu", cfg.Defaults.Backend)
	assert.Equal(t, 8123, cfg.Server.Port)
}

func TestSetAndGet(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	require.NoError(t, cfg.Set("defaults.radius", "4500"))
	assert.Equal(t, 4500.0, cfg.Defaults.Radius)

	value, ok := cfg.Get("defaults.radius")
	require.True(t, ok)
	assert.Equal(t, "4500", value)

	require.NoError(t, cfg.Set("location.default_here", "true"))
	assert.True(t, cfg.Location.DefaultHere)
}

func TestSet_RejectsBadValues(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Error(t, cfg.Set("defaults.radius", "wide"))
	assert.Error(t, cfg.Set("server.port", "many"))
	assert.Error(t, cfg.Set("location.default_here", "maybe"))
	assert.Error(t, cfg.Set("no.such.key", "1"))

	_, ok := cfg.Get("no.such.key")
	assert.False(t, ok)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("defaults.points", "2500"))
	require.NoError(t, cfg.Save())

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 2500, reloaded.Defaults.Points)
}

func TestFormatURL(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	url, err := cfg.FormatURL("", 40.7128, -74.006)
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps/@40.7128,-74.006,15z", url)

	url, err = cfg.FormatURL("openstreetmap", 40.7128, -74.006)
	require.NoError(t, err)
	assert.Equal(t, "https://www.openstreetmap.org/#map=18/40.7128/-74.006", url)

	_, err = cfg.FormatURL("mapquest", 0, 0)
	assert.Error(t, err)
}

func TestServerAddr(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7878", cfg.ServerAddr())
}
