// Command arena runs a small scene headless: a player walks a square around a
// walled arena while enemies chase it, and the world events are logged.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/sweep"
	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/config"
	"github.com/akmonengine/sweep/log"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	ticks := flag.Int("ticks", 600, "number of ticks to simulate")
	enemies := flag.Int("enemies", 3, "number of enemies")
	flag.Parse()

	if err := run(*configPath, *ticks, *enemies); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, ticks, enemyCount int) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	logger, err := log.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer logger.Sync()

	world := sweep.NewWorld(cfg, logger.Named("world"))
	buildArena(world)

	player := sweep.NewEntity(mgl64.Vec3{0, 1, 0}, actor.NewBox(0.6, 1.8, 0.6), sweep.BodyTypeDynamic)
	player.Health, player.MaxHealth = 40, 40
	world.AddEntity(player)

	for i := range enemyCount {
		x := float64(i*4 - 4)
		enemy := sweep.NewEnemy(mgl64.Vec3{x, 1, 12}, cfg.Enemy, cfg.Navigation)
		enemy.Navigator().Patrol = []mgl64.Vec3{{x, 0, 12}, {x, 0, 6}}
		enemy.SetTarget(player)
		world.AddEntity(enemy)
	}

	// Reaching the exit pad ends the run early
	exit := sweep.NewEntity(mgl64.Vec3{-12, 0.5, -12}, actor.NewBox(2, 1, 2), sweep.BodyTypeStatic)
	exit.IsTrigger = true
	world.AddEntity(exit)

	reachedExit := false
	subscribe(world, logger, exit, &reachedExit)

	route := []mgl64.Vec3{{8, 0, 0}, {8, 0, -8}, {-8, 0, -8}, {-12, 0, -12}}
	waypoint := 0

	for tick := range ticks {
		if waypoint < len(route) {
			target := route[waypoint]
			flat := target.Sub(player.Position())
			flat[1] = 0
			if flat.Len() < 0.5 {
				waypoint++
			} else {
				player.LookAt(target)
				player.WalkTowards(target)
			}
		}

		world.Step()

		if !player.Alive() {
			logger.Info("player died", zap.Int("tick", tick))
			return nil
		}
		if reachedExit {
			logger.Info("player escaped", zap.Int("tick", tick), zap.Int("health", player.Health))
			return nil
		}
	}

	position := player.Position()
	logger.Info("simulation finished",
		zap.Int("ticks", ticks),
		zap.Int("health", player.Health),
		zap.Float64s("position", position[:]),
	)
	return nil
}

func buildArena(world *sweep.World) {
	world.AddTerrain(sweep.NewTerrain(
		actor.AABB{Min: mgl64.Vec3{-16, -1, -16}, Max: mgl64.Vec3{16, 0, 16}},
		// Outer walls
		actor.AABB{Min: mgl64.Vec3{-16, 0, -16}, Max: mgl64.Vec3{16, 3, -15}},
		actor.AABB{Min: mgl64.Vec3{-16, 0, 15}, Max: mgl64.Vec3{16, 3, 16}},
		actor.AABB{Min: mgl64.Vec3{-16, 0, -15}, Max: mgl64.Vec3{-15, 3, 15}},
		actor.AABB{Min: mgl64.Vec3{15, 0, -15}, Max: mgl64.Vec3{16, 3, 15}},
	))

	// A long wall between the enemies and the player, and a low step
	world.AddTerrain(sweep.NewTerrain(actor.AABB{Min: mgl64.Vec3{-12, 0, 3}, Max: mgl64.Vec3{10, 3, 4}}))
	world.AddTerrain(sweep.NewTerrain(actor.AABB{Min: mgl64.Vec3{4, 0, -6}, Max: mgl64.Vec3{7, 1, -3}}))
}

func subscribe(world *sweep.World, logger *zap.Logger, exit *sweep.Entity, reachedExit *bool) {
	world.Events.Subscribe(sweep.TRIGGER_ENTER, func(event sweep.Event) {
		e := event.(sweep.TriggerEnterEvent)
		if e.EntityA == exit {
			*reachedExit = true
		}
		logger.Debug("trigger entered", zap.Stringer("trigger", e.EntityA.ID), zap.Stringer("entity", e.EntityB.ID))
	})
	world.Events.Subscribe(sweep.COLLISION_ENTER, func(event sweep.Event) {
		e := event.(sweep.CollisionEnterEvent)
		logger.Debug("collision",
			zap.Stringer("a", e.EntityA.ID),
			zap.Stringer("b", e.EntityB.ID),
			zap.Int("health_a", e.EntityA.Health),
			zap.Int("health_b", e.EntityB.Health),
		)
	})
	world.Events.Subscribe(sweep.ON_LAND, func(event sweep.Event) {
		e := event.(sweep.LandEvent)
		position := e.Entity.Position()
		logger.Debug("landed", zap.Stringer("entity", e.Entity.ID), zap.Float64s("position", position[:]))
	})
}
