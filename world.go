// Package sweep moves box-shaped entities through box terrain one tick at a
// time, resolving contacts with swept AABB tests, and steers AI agents along
// paths planned on a navigation grid built from the terrain.
package sweep

import (
	"github.com/akmonengine/sweep/ai"
	"github.com/akmonengine/sweep/collision"
	"github.com/akmonengine/sweep/config"
	"github.com/akmonengine/sweep/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DEFAULT_WORKERS = 1

// DEFAULT_NAV_BUCKETS is the number of hash buckets of the navigation grid
const DEFAULT_NAV_BUCKETS = 4096

var _ ai.Agent = (*Entity)(nil)
var _ ai.Planner = (*NavGrid)(nil)

type World struct {
	Entities []*Entity
	Terrains []*Terrain

	// Gravity is subtracted from every dynamic entity's vertical motion each tick
	Gravity           float64
	ResolveIterations int
	AirControl        float64
	AirFriction       mgl64.Vec3
	GroundFriction    mgl64.Vec3
	Detector          collision.Detector
	Workers           int
	PlanWorkers       int

	NavGrid *NavGrid
	Events  Events

	byID     map[uuid.UUID]*Entity
	navDirty bool
	logger   *zap.Logger
}

// NewWorld creates an empty world. A nil logger disables logging.
func NewWorld(cfg config.Config, logger *zap.Logger) *World {
	logger = log.OrNop(logger)

	navGrid := NewNavGrid(cfg.Navigation, DEFAULT_NAV_BUCKETS, logger.Named("navgrid"))
	navGrid.SetClearance(cfg.Enemy.Height)

	return &World{
		Gravity:           cfg.World.Gravity,
		ResolveIterations: cfg.World.ResolveIterations,
		AirControl:        cfg.World.AirControl,
		AirFriction:       cfg.World.AirFriction,
		GroundFriction:    cfg.World.GroundFriction,
		Detector:          collision.Detector{Epsilon: cfg.World.Epsilon},
		Workers:           cfg.World.Workers,
		PlanWorkers:       cfg.Navigation.Workers,
		NavGrid:           navGrid,
		Events:            NewEvents(),
		byID:              make(map[uuid.UUID]*Entity),
		logger:            logger,
	}
}

// AddEntity adds an entity to the world
func (w *World) AddEntity(entity *Entity) {
	w.Entities = append(w.Entities, entity)
	w.byID[entity.ID] = entity
	w.logger.Debug("entity added", zap.Stringer("id", entity.ID), zap.Int("entities", len(w.Entities)))
}

// RemoveEntity removes an entity from the world. Entities targeting it lose
// their target.
func (w *World) RemoveEntity(entity *Entity) {
	k := -1
	for i, e := range w.Entities {
		if e == entity {
			k = i
			break
		}
	}

	if k == -1 {
		return
	}
	w.Entities = append(w.Entities[:k], w.Entities[k+1:]...)
	delete(w.byID, entity.ID)

	for _, e := range w.Entities {
		if e.target == entity {
			e.target = nil
		}
	}
	w.Events.forget(entity)

	w.logger.Debug("entity removed", zap.Stringer("id", entity.ID), zap.Int("entities", len(w.Entities)))
}

// Entity looks an entity up by ID
func (w *World) Entity(id uuid.UUID) (*Entity, bool) {
	e, ok := w.byID[id]
	return e, ok
}

// AddTerrain adds static geometry. The navigation grid is rebuilt on the next Step.
func (w *World) AddTerrain(terrain *Terrain) {
	w.Terrains = append(w.Terrains, terrain)
	w.navDirty = true
	w.logger.Debug("terrain added", zap.Stringer("id", terrain.ID), zap.Int("boxes", len(terrain.Boxes)))
}

// RemoveTerrain removes static geometry
func (w *World) RemoveTerrain(terrain *Terrain) {
	for i, t := range w.Terrains {
		if t == terrain {
			w.Terrains = append(w.Terrains[:i], w.Terrains[i+1:]...)
			w.navDirty = true
			w.logger.Debug("terrain removed", zap.Stringer("id", terrain.ID))
			return
		}
	}
}

// Step advances the simulation by one tick
func (w *World) Step() {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	w.PlanWorkers = max(DEFAULT_WORKERS, w.PlanWorkers)

	// Phase 1: AI decides this tick's impulses and goals
	w.think()
	w.removeDead()

	// Phase 2: Path planning for the goals that changed
	w.plan()

	// Phase 3: Gravity and impulses
	w.integrate()

	// Phase 4: Terrain contacts, each entity only touches its own vectors
	w.resolveTerrain()

	// Phase 5: Entity contacts, push responses write other entities
	contacts := resolveEntities(w.Entities, w.Detector)
	w.Events.recordContacts(contacts)

	// Phase 6: Commit positions and decay motion
	w.update()

	w.Events.recordOverlaps(detectOverlaps(w.Entities, w.Workers))
	w.Events.processGroundEvents(w.Entities)
	w.Events.flush()
}

// think runs the behaviours sequentially: an attack changes its victim
func (w *World) think() {
	for _, e := range w.Entities {
		if e.Alive() {
			e.think()
		}
	}
}

// removeDead drops the entities killed since the last tick
func (w *World) removeDead() {
	var dead []*Entity
	for _, e := range w.Entities {
		if !e.Alive() {
			dead = append(dead, e)
		}
	}
	for _, e := range dead {
		w.RemoveEntity(e)
		w.logger.Debug("entity died", zap.Stringer("id", e.ID))
	}
}

func (w *World) plan() {
	if w.navDirty {
		if w.NavGrid.Rebuild(w.Terrains) {
			w.logger.Info("navigation grid rebuilt", zap.Int("terrains", len(w.Terrains)))
		}
		w.navDirty = false
	}

	var g errgroup.Group
	g.SetLimit(w.PlanWorkers)

	for _, e := range w.Entities {
		nav := e.navigator
		if nav == nil || !nav.NeedsPlan() {
			continue
		}

		g.Go(func() error {
			nav.Replan(w.NavGrid, e.Position())
			if nav.Unreachable() {
				goal, _ := nav.Goal()
				w.logger.Debug("goal unreachable",
					zap.Stringer("id", e.ID),
					zap.Float64s("goal", goal[:]),
				)
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (w *World) integrate() {
	task(w.Workers, w.Entities, func(e *Entity) {
		if e.isMoving() {
			e.applyForces(w.Gravity, w.AirControl)
		}
	})
}

func (w *World) resolveTerrain() {
	task(w.Workers, w.Entities, func(e *Entity) {
		if e.isMoving() {
			e.move = resolveTerrain(e, w.Terrains, w.Detector, w.ResolveIterations)
		}
	})
}

func (w *World) update() {
	task(w.Workers, w.Entities, func(e *Entity) {
		if e.isMoving() {
			e.update(w.AirFriction, w.GroundFriction)
		}
	})
}
