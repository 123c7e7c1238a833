package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTOMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, "scene.toml", `
[scene]
default_entity_name = "Entity"
tick_rate = "20ms"

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Entity", cfg.Scene.DefaultEntityName)
	assert.Equal(t, 20*time.Millisecond, cfg.Scene.TickRate)
	assert.Equal(t, 256, cfg.Scene.PoolCapacity)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "scene.yaml", `
scene:
  name: arena
  pool_capacity: 64
  tick_rate: 50ms
demo:
  ticks: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "arena", cfg.Scene.Name)
	assert.Equal(t, 64, cfg.Scene.PoolCapacity)
	assert.Equal(t, 50*time.Millisecond, cfg.Scene.TickRate)
	assert.Equal(t, 3, cfg.Demo.Ticks)
	assert.Equal(t, "Unnamed", cfg.Scene.DefaultEntityName)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", "[scene\n"))
	assert.Error(t, err)
}

func TestLoadRejectsBadTickRate(t *testing.T) {
	for _, rate := range []string{"0s", "-5ms"} {
		_, err := Load(writeFile(t, "scene.toml", "[scene]\ntick_rate = \""+rate+"\"\n"))
		require.ErrorIs(t, err, ErrInvalid, rate)
		assert.Contains(t, err.Error(), "tick_rate")
	}

	_, err := Load(writeFile(t, "scene.yaml", "scene:\n  tick_rate: 0s\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadRejectsNegativeCounts(t *testing.T) {
	_, err := Load(writeFile(t, "scene.toml", "[scene]\npool_capacity = -1\n"))
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "pool_capacity")

	_, err = Load(writeFile(t, "scene.toml", "[scene]\nentity_capacity = -8\n"))
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "entity_capacity")

	_, err = Load(writeFile(t, "scene.yaml", "demo:\n  ticks: -1\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	assert.NoError(t, Defaults().Validate())
}
