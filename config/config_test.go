package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akmonengine/sweep/ai"
	"github.com/akmonengine/sweep/collision"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 20, cfg.Enemy.Health)
	assert.Equal(t, 5, cfg.Enemy.MeleeDamage)
	assert.Equal(t, collision.Epsilon, cfg.World.Epsilon)
	assert.Equal(t, 3, cfg.World.ResolveIterations)
}

func TestParse(t *testing.T) {
	input := `
world:
  gravity: 0.1
  workers: 4
  air_friction: [0.9, 0.9, 0.9]
navigation:
  diagonal: false
enemy:
  behaviours: [WALK]
  response: push_stick
log:
  level: debug
`
	cfg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.World.Gravity)
	assert.Equal(t, 4, cfg.World.Workers)
	assert.Equal(t, mgl64.Vec3{0.9, 0.9, 0.9}, cfg.World.AirFriction)
	assert.False(t, cfg.Navigation.Diagonal)
	assert.Equal(t, []ai.Behaviour{ai.Walk}, cfg.Enemy.Behaviours)
	assert.Equal(t, collision.ResponsePushStick, cfg.Enemy.Response)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched keys keep their defaults
	defaults := Default()
	assert.Equal(t, defaults.World.GroundFriction, cfg.World.GroundFriction)
	assert.Equal(t, defaults.Navigation.CellSize, cfg.Navigation.CellSize)
	assert.Equal(t, defaults.Log.Encoding, cfg.Log.Encoding)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool
	}{
		{"unknown key", "world:\n  gravitty: 1\n", false},
		{"unknown behaviour", "enemy:\n  behaviours: [fly]\n", false},
		{"unknown response", "enemy:\n  response: teleport\n", false},
		{"short vector", "world:\n  air_friction: [1, 1]\n", false},
		{"not yaml", "world: [", false},
		{"negative gravity", "world:\n  gravity: -1\n", true},
		{"no workers", "world:\n  workers: 0\n", true},
		{"friction above one", "world:\n  ground_friction: [0.5, 2, 0.5]\n", true},
		{"zero cell size", "navigation:\n  cell_size: 0\n", true},
		{"dead enemy", "enemy:\n  health: 0\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalid))
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.World.Workers = 0
	cfg.Navigation.ArriveRadius = 0
	cfg.Enemy.Reach = -1

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "world.workers")
	assert.Contains(t, err.Error(), "navigation.arrive_radius")
	assert.Contains(t, err.Error(), "enemy.reach")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enemy:\n  health: 40\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Enemy.Health)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
