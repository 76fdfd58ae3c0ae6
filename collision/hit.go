package collision

import (
	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Hit pairs a collision with the object that was struck, for queries that
// must answer "what did this ray hit" and not only "where".
type Hit[T any] struct {
	Collision Result
	Object    T

	point    mgl64.Vec3
	hasPoint bool
}

// NewHit creates a hit without an impact point
func NewHit[T any](collision Result, object T) Hit[T] {
	return Hit[T]{Collision: collision, Object: object}
}

// NewHitAt creates a hit with its world-space impact point
func NewHitAt[T any](collision Result, object T, point mgl64.Vec3) Hit[T] {
	return Hit[T]{Collision: collision, Object: object, point: point, hasPoint: true}
}

// Point returns the impact point, if the query recorded one
func (h Hit[T]) Point() (mgl64.Vec3, bool) {
	return h.point, h.hasPoint
}

// Nearest sweeps origin + t*displacement against every box of every candidate
// and returns the closest hit (smallest Near). The impact point is
// origin + displacement*Near. boxes lists the collision boxes of a candidate;
// a candidate may own several, as terrain made of multiple parts does.
func Nearest[T any](d Detector, candidates []T, boxes func(T) []actor.AABB, origin, displacement mgl64.Vec3) (Hit[T], bool) {
	var (
		best  Result
		found bool
		obj   T
	)

	for _, candidate := range candidates {
		for _, box := range boxes(candidate) {
			result, ok := d.Collide(box, origin, displacement)
			if ok && (!found || result.Near < best.Near) {
				best = result
				obj = candidate
				found = true
			}
		}
	}

	if !found {
		return Hit[T]{}, false
	}

	return NewHitAt(best, obj, origin.Add(displacement.Mul(best.Near))), true
}
