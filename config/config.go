// Package config loads the YAML configuration of a world and its agents.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/sweep/ai"
	"github.com/akmonengine/sweep/collision"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of a configuration file
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Navigation NavigationConfig `yaml:"navigation"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Log        LogConfig        `yaml:"log"`
}

// WorldConfig tunes the simulation. Speeds and accelerations are per tick.
type WorldConfig struct {
	Gravity float64 `yaml:"gravity"`
	Workers int     `yaml:"workers"`
	// ResolveIterations bounds how many terrain contacts are resolved per tick
	ResolveIterations int     `yaml:"resolve_iterations"`
	Epsilon           float64 `yaml:"epsilon"`
	// AirControl scales impulses applied while airborne
	AirControl     float64    `yaml:"air_control"`
	AirFriction    mgl64.Vec3 `yaml:"air_friction"`
	GroundFriction mgl64.Vec3 `yaml:"ground_friction"`
}

// NavigationConfig sets up the navigation grid and agent path following
type NavigationConfig struct {
	CellSize      float64 `yaml:"cell_size"`
	Diagonal      bool    `yaml:"diagonal"`
	Climb         int     `yaml:"climb"`
	MaxExpansions int     `yaml:"max_expansions"`
	// Workers bounds concurrent path searches
	Workers        int     `yaml:"workers"`
	ArriveRadius   float64 `yaml:"arrive_radius"`
	RepathInterval int     `yaml:"repath_interval"`
}

// EnemyConfig describes the agents spawned with NewEnemy
type EnemyConfig struct {
	Width          float64            `yaml:"width"`
	Height         float64            `yaml:"height"`
	Health         int                `yaml:"health"`
	MeleeDamage    int                `yaml:"melee_damage"`
	MoveSpeed      float64            `yaml:"move_speed"`
	Reach          float64            `yaml:"reach"`
	AttackCooldown int                `yaml:"attack_cooldown"`
	Knockback      float64            `yaml:"knockback"`
	Behaviours     []ai.Behaviour     `yaml:"behaviours"`
	Response       collision.Response `yaml:"response"`
}

// LogConfig selects the logger level and encoding
type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		World: WorldConfig{
			Gravity:           0.98 / 20,
			Workers:           1,
			ResolveIterations: 3,
			Epsilon:           collision.Epsilon,
			AirControl:        0.125,
			AirFriction:       mgl64.Vec3{0.91, 0.98, 0.91},
			GroundFriction:    mgl64.Vec3{0.5, 1, 0.5},
		},
		Navigation: NavigationConfig{
			CellSize:       1,
			Diagonal:       true,
			Climb:          1,
			MaxExpansions:  4096,
			Workers:        4,
			ArriveRadius:   0.5,
			RepathInterval: 20,
		},
		Enemy: EnemyConfig{
			Width:          0.6,
			Height:         1.8,
			Health:         20,
			MeleeDamage:    5,
			MoveSpeed:      0.075,
			Reach:          1.5,
			AttackCooldown: 20,
			Knockback:      0.5,
			Behaviours:     []ai.Behaviour{ai.Attack, ai.Walk},
			Response:       collision.ResponseSlide,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load reads and validates the configuration file at path. Keys missing from
// the file keep their Default value.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. Errors wrap ErrInvalid.
func (c Config) Validate() error {
	var errs []error

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.World.Gravity >= 0, "world.gravity must not be negative, got %v", c.World.Gravity)
	check(c.World.Workers >= 1, "world.workers must be at least 1, got %d", c.World.Workers)
	check(c.World.ResolveIterations >= 1, "world.resolve_iterations must be at least 1, got %d", c.World.ResolveIterations)
	check(c.World.Epsilon >= 0, "world.epsilon must not be negative, got %v", c.World.Epsilon)
	check(c.World.AirControl >= 0 && c.World.AirControl <= 1, "world.air_control must be in [0, 1], got %v", c.World.AirControl)
	for i := range 3 {
		check(c.World.AirFriction[i] >= 0 && c.World.AirFriction[i] <= 1, "world.air_friction[%d] must be in [0, 1], got %v", i, c.World.AirFriction[i])
		check(c.World.GroundFriction[i] >= 0 && c.World.GroundFriction[i] <= 1, "world.ground_friction[%d] must be in [0, 1], got %v", i, c.World.GroundFriction[i])
	}

	check(c.Navigation.CellSize > 0, "navigation.cell_size must be positive, got %v", c.Navigation.CellSize)
	check(c.Navigation.Climb >= 0, "navigation.climb must not be negative, got %d", c.Navigation.Climb)
	check(c.Navigation.MaxExpansions >= 1, "navigation.max_expansions must be at least 1, got %d", c.Navigation.MaxExpansions)
	check(c.Navigation.Workers >= 1, "navigation.workers must be at least 1, got %d", c.Navigation.Workers)
	check(c.Navigation.ArriveRadius > 0, "navigation.arrive_radius must be positive, got %v", c.Navigation.ArriveRadius)
	check(c.Navigation.RepathInterval >= 0, "navigation.repath_interval must not be negative, got %d", c.Navigation.RepathInterval)

	check(c.Enemy.Width > 0 && c.Enemy.Height > 0, "enemy size must be positive, got %vx%v", c.Enemy.Width, c.Enemy.Height)
	check(c.Enemy.Health > 0, "enemy.health must be positive, got %d", c.Enemy.Health)
	check(c.Enemy.MeleeDamage >= 0, "enemy.melee_damage must not be negative, got %d", c.Enemy.MeleeDamage)
	check(c.Enemy.MoveSpeed >= 0, "enemy.move_speed must not be negative, got %v", c.Enemy.MoveSpeed)
	check(c.Enemy.Reach >= 0, "enemy.reach must not be negative, got %v", c.Enemy.Reach)
	check(c.Enemy.AttackCooldown >= 0, "enemy.attack_cooldown must not be negative, got %d", c.Enemy.AttackCooldown)

	return errors.Join(errs...)
}
