package collision

import (
	"math"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the default amount subtracted from Near and Far so that an entity
// resting against a face is not reported as touching it again on the next query.
// It is a tuning value, not a physical tolerance.
const Epsilon = 0.001

// Detector runs swept tests with a configurable epsilon.
// The zero value subtracts nothing.
type Detector struct {
	Epsilon float64
}

// DefaultDetector uses Epsilon
var DefaultDetector = Detector{Epsilon: Epsilon}

// Collide tests the segment origin + t*displacement, t in [0, 1], against box
// using DefaultDetector.
func Collide(box actor.AABB, origin, displacement mgl64.Vec3) (Result, bool) {
	return DefaultDetector.Collide(box, origin, displacement)
}

// Collide performs the slab test of the segment origin + t*displacement against box.
//
// Algorithm:
//  1. Per axis, compute the parametric times at which the segment crosses the
//     min and max planes. A zero displacement component yields ±Inf (no
//     constraint when the origin is inside the slab, immediate rejection when
//     outside) or NaN when the origin lies exactly on a plane.
//  2. Any NaN rejects the query.
//  3. Order each axis pair so near <= far, then reject if any axis is entered
//     after another one is already left.
//  4. The entry time is the latest per-axis entry, the exit time the earliest
//     exit. Reject windows entirely behind the origin or beyond the displacement.
//  5. The struck face belongs to the last entered axis; the normal opposes the
//     displacement on that axis.
//
// Returns false when there is no intersection within this displacement, and
// for a zero displacement, which would otherwise produce non-finite times.
func (d Detector) Collide(box actor.AABB, origin, displacement mgl64.Vec3) (Result, bool) {
	var tNear, tFar mgl64.Vec3
	for i := range 3 {
		tNear[i] = (box.Min[i] - origin[i]) / displacement[i]
		tFar[i] = (box.Max[i] - origin[i]) / displacement[i]

		if math.IsNaN(tNear[i]) || math.IsNaN(tFar[i]) {
			return Result{}, false
		}
		if tNear[i] > tFar[i] {
			tNear[i], tFar[i] = tFar[i], tNear[i]
		}
	}

	// The segment must be inside every slab at the same time
	for i := range 3 {
		for j := range 3 {
			if i != j && tNear[i] > tFar[j] {
				return Result{}, false
			}
		}
	}

	axis := 0
	for i := 1; i < 3; i++ {
		if tNear[i] > tNear[axis] {
			axis = i
		}
	}
	near := tNear[axis]
	far := math.Min(tFar[0], math.Min(tFar[1], tFar[2]))

	if far < 0 || near > 1 {
		return Result{}, false
	}
	if math.IsInf(near, 0) || math.IsInf(far, 0) {
		return Result{}, false
	}

	var normal mgl64.Vec3
	if displacement[axis] <= 0 {
		normal[axis] = 1
	} else {
		normal[axis] = -1
	}

	return Result{
		Near:   near - d.Epsilon,
		Far:    far - d.Epsilon,
		Normal: normal,
	}, true
}
