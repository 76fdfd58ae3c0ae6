package sweep

import (
	"sync"

	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/collision"
	"github.com/go-gl/mathgl/mgl64"
)

// minMove is the squared displacement below which an entity stops resolving
const minMove = 1e-9

// Pair is two entities in contact during a tick
type Pair struct {
	EntityA *Entity
	EntityB *Entity
}

// resolveTerrain sweeps the entity's motion against the terrain and returns
// the displacement it can actually travel this tick.
//
// The entity box is reduced to its center by inflating each terrain box by the
// entity half extents. Up to iterations contacts are resolved, nearest first;
// each resolution clamps the displacement so the next sweep starts from a
// shorter move. The ground flag is set when any resolved face points up.
func resolveTerrain(e *Entity, terrains []*Terrain, detector collision.Detector, iterations int) mgl64.Vec3 {
	if e.Motion.LenSqr() < minMove {
		e.OnGround = false
		return mgl64.Vec3{}
	}

	box := e.AABB()
	center := box.Center()
	inflate := box.HalfExtents()
	move := e.Motion
	ground := false

	area := box.Expand(move)
	candidates := make([]*Terrain, 0, len(terrains))
	for _, t := range terrains {
		if e.TerrainMask.Test(t.Mask) && t.Bounds().Overlaps(area) {
			candidates = append(candidates, t)
		}
	}

	inflated := func(t *Terrain) []actor.AABB {
		boxes := make([]actor.AABB, len(t.Boxes))
		for i, b := range t.Boxes {
			boxes[i] = b.Inflate(inflate)
		}
		return boxes
	}

	// Terrain cannot be pushed
	response := e.Response
	if response.Transfers() {
		response = collision.ResponseSlide
	}

	for range iterations {
		hit, ok := collision.Nearest(detector, candidates, inflated, center, move)
		if !ok {
			break
		}

		if hit.Collision.Normal.Y() > 0 {
			ground = true
		}

		response.Apply(hit.Collision, &e.Motion, &move, &e.Bounce)

		if move.LenSqr() < minMove {
			move = mgl64.Vec3{}
			break
		}
	}

	e.OnGround = ground
	return move
}

// resolveEntities sweeps every moving entity's displacement against the other
// entities. It runs sequentially: push responses write the motion of the
// entity that was hit, which may itself be moving this tick.
func resolveEntities(entities []*Entity, detector collision.Detector) []Pair {
	var contacts []Pair

	for _, e := range entities {
		if !e.isMoving() || e.IsTrigger || e.move.LenSqr() < minMove {
			continue
		}

		box := e.AABB()
		center := box.Center()
		inflate := box.HalfExtents()
		area := box.Expand(e.move)

		for _, other := range entities {
			if other == e || other.IsTrigger || !other.Alive() || !e.EntityMask.Test(other.EntityMask) {
				continue
			}
			otherBox := other.AABB()
			if !otherBox.Overlaps(area) {
				continue
			}

			result, ok := detector.Collide(otherBox.Inflate(inflate), center, e.move)
			if !ok {
				continue
			}
			contacts = append(contacts, Pair{EntityA: e, EntityB: other})
			if result.Normal.Y() > 0 {
				e.OnGround = true
			}

			if e.Response.Transfers() {
				if other.isMoving() {
					e.Response.Apply(result, &e.Motion, &e.move, &other.Motion)
				} else {
					// Static entities cannot be pushed
					collision.Slide(result, &e.Motion, &e.move)
				}
			} else {
				e.Response.Apply(result, &e.Motion, &e.move, &e.Bounce)
			}
		}
	}

	return contacts
}

// detectOverlaps reports every trigger overlapping a living non-trigger
// entity, checking the triggers in parallel. Masks do not apply to triggers.
func detectOverlaps(entities []*Entity, workersCount int) <-chan Pair {
	triggers := make([]*Entity, 0)
	for _, e := range entities {
		if e.IsTrigger {
			triggers = append(triggers, e)
		}
	}

	pairsChan := make(chan Pair, workersCount*10)

	go func() {
		var wg sync.WaitGroup
		defer close(pairsChan)

		perWorker := max(1, (len(triggers)+workersCount-1)/workersCount)
		for start := 0; start < len(triggers); start += perWorker {
			wg.Add(1)
			go func(chunk []*Entity) {
				defer wg.Done()
				for _, trigger := range chunk {
					triggerBox := trigger.AABB()
					for _, other := range entities {
						if other.IsTrigger || !other.Alive() {
							continue
						}
						if triggerBox.Overlaps(other.AABB()) {
							pairsChan <- Pair{EntityA: trigger, EntityB: other}
						}
					}
				}
			}(triggers[start:min(start+perWorker, len(triggers))])
		}

		wg.Wait()
	}()

	return pairsChan
}
