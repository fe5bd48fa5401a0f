package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func tempConfigPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	return filepath.Join(dir, "config.toml")
}

func TestGenerateCommand_Seeded(t *testing.T) {
	cfg := tempConfigPath(t)

	out, err := runCLI(t, cfg, "generate",
		"--lat", "40.7128", "--lng", "-74.0060",
		"--radius", "1000", "--points", "2000", "--seed", "42")
	require.NoError(t, err)

	assert.Contains(t, out, "Generation ")
	assert.Contains(t, out, "attractor")
	assert.Contains(t, out, "Backend: pseudo")
}

func TestGenerateCommand_URLFormat(t *testing.T) {
	cfg := tempConfigPath(t)

	out, err := runCLI(t, cfg, "generate",
		"--lat", "40.7128", "--lng", "-74.0060",
		"--radius", "1000", "--points", "1000", "--seed", "42",
		"--format", "url")
	require.NoError(t, err)
	assert.Contains(t, out, "https://www.google.com/maps/@")
}

func TestGenerateCommand_RequiresCenter(t *testing.T) {
	cfg := tempConfigPath(t)

	_, err := runCLI(t, cfg, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no center given")
}

func TestGenerateCommand_SaveAndHistory(t *testing.T) {
	cfg := tempConfigPath(t)

	_, err := runCLI(t, cfg, "generate",
		"--lat", "40.7128", "--lng", "-74.0060",
		"--radius", "1000", "--points", "500", "--seed", "1", "--save")
	require.NoError(t, err)

	out, err := runCLI(t, cfg, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "40.7128")

	out, err = runCLI(t, cfg, "history", "clear", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")

	out, err = runCLI(t, cfg, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved generations.")
}

func TestConfigCommands(t *testing.T) {
	cfg := tempConfigPath(t)

	out, err := runCLI(t, cfg, "config", "set", "defaults.radius", "4500")
	require.NoError(t, err)
	assert.Contains(t, out, "defaults.radius = 4500")

	out, err = runCLI(t, cfg, "config", "get", "defaults.radius")
	require.NoError(t, err)
	assert.Contains(t, out, "4500")

	out, err = runCLI(t, cfg, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "defaults.backend = pseudo")

	_, err = runCLI(t, cfg, "config", "get", "no.such.key")
	assert.Error(t, err)
}

func TestStatusCommand(t *testing.T) {
	cfg := tempConfigPath(t)

	out, err := runCLI(t, cfg, "status", "--backend", "pseudo")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend: pseudo")
	assert.Contains(t, out, "Status:  available")
	assert.Contains(t, out, "overall:")
}
