// Package collision implements swept axis-aligned box intersection and the
// response policies applied once a moving volume hits something.
//
// The detector works on a single box and a single displacement segment: the
// caller narrows the candidate pairs (broad phase) and usually inflates the
// obstacle by the half extents of the moving box, which reduces a box sweep to
// a point sweep. The result tells how far along the displacement the contact
// happens and which face was struck; a resolver then rewrites the caller's
// motion and move vectors in place.
//
// References:
//   - Kay, Kajiya: "Ray Tracing Complex Scenes" (1986), slab method
//   - Ericson: "Real-Time Collision Detection" (2005), §5.3.3
package collision

import "github.com/go-gl/mathgl/mgl64"

// Result describes where a swept segment enters and leaves a box.
//
// Near and Far are fractions of the tested displacement (0 = start, 1 = full
// displacement) and always satisfy Near <= Far. Normal is a unit axis vector
// pointing out of the struck face: exactly one component is ±1.
//
// A Result is only valid for the query that produced it; the box it was
// computed against may move on the next tick.
type Result struct {
	Near   float64
	Far    float64
	Normal mgl64.Vec3
}

// Axis returns the index of the non-zero normal component
func (r Result) Axis() int {
	for i := range 3 {
		if r.Normal[i] != 0 {
			return i
		}
	}
	return -1
}
