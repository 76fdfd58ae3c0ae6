package sweep

import (
	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/collision"
	"github.com/go-gl/mathgl/mgl64"
)

// rayArea returns the box swept by the ray, used to discard distant candidates
func rayArea(origin, displacement mgl64.Vec3) actor.AABB {
	return actor.NewAABB(origin, origin.Add(displacement))
}

func rayDisplacement(direction mgl64.Vec3, distance float64) (mgl64.Vec3, bool) {
	if direction.LenSqr() < 1e-12 || distance <= 0 {
		return mgl64.Vec3{}, false
	}
	return direction.Normalize().Mul(distance), true
}

// TerrainFilter accepts the terrains on one of the layers of mask, such as
// an entity's TerrainMask
func TerrainFilter(mask collision.Mask) func(*Terrain) bool {
	return func(t *Terrain) bool {
		return mask.Test(t.Mask)
	}
}

// EntityFilter accepts the living, non-trigger entities sharing a layer with
// mask
func EntityFilter(mask collision.Mask) func(*Entity) bool {
	return func(e *Entity) bool {
		return !e.IsTrigger && e.Alive() && mask.Test(e.EntityMask)
	}
}

// RaycastTerrain casts a ray of the given length and returns the closest
// terrain it hits. filter, when not nil, skips the terrains it rejects; a nil
// filter accepts every terrain on at least one layer.
// Hit.Point is where the ray enters the box; Hit.Collision.Near is the
// fraction of distance travelled.
func (w *World) RaycastTerrain(origin, direction mgl64.Vec3, distance float64, filter func(*Terrain) bool) (collision.Hit[*Terrain], bool) {
	displacement, ok := rayDisplacement(direction, distance)
	if !ok {
		return collision.Hit[*Terrain]{}, false
	}

	if filter == nil {
		filter = TerrainFilter(collision.MaskAll)
	}

	area := rayArea(origin, displacement)
	candidates := make([]*Terrain, 0, len(w.Terrains))
	for _, t := range w.Terrains {
		if !filter(t) {
			continue
		}
		if t.Bounds().Overlaps(area) {
			candidates = append(candidates, t)
		}
	}

	return collision.Nearest(w.Detector, candidates, terrainBoxes, origin, displacement)
}

// RaycastEntity casts a ray of the given length and returns the closest entity
// it hits. Triggers and dead entities are ignored unless filter accepts them
// explicitly; a nil filter is EntityFilter(collision.MaskAll).
func (w *World) RaycastEntity(origin, direction mgl64.Vec3, distance float64, filter func(*Entity) bool) (collision.Hit[*Entity], bool) {
	displacement, ok := rayDisplacement(direction, distance)
	if !ok {
		return collision.Hit[*Entity]{}, false
	}

	if filter == nil {
		filter = EntityFilter(collision.MaskAll)
	}

	area := rayArea(origin, displacement)
	candidates := make([]*Entity, 0)
	for _, e := range w.Entities {
		if !filter(e) {
			continue
		}
		if e.AABB().Overlaps(area) {
			candidates = append(candidates, e)
		}
	}

	return collision.Nearest(w.Detector, candidates, entityBoxes, origin, displacement)
}
