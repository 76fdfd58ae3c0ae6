package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB creates an AABB from two opposite corners, in any order
func NewAABB(a, b mgl64.Vec3) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max: mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// AABBAround creates an AABB centered on a point
func AABBAround(center, halfExtents mgl64.Vec3) AABB {
	return NewAABB(center.Sub(halfExtents), center.Add(halfExtents))
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Inflate grows the box by amount on every face.
// Inflating a box by the half extents of a moving box turns a box-vs-box
// sweep into a point-vs-box sweep.
func (a AABB) Inflate(amount mgl64.Vec3) AABB {
	return NewAABB(a.Min.Sub(amount), a.Max.Add(amount))
}

// Expand stretches the box toward a displacement: negative components move the
// min corner, positive ones the max corner.
func (a AABB) Expand(displacement mgl64.Vec3) AABB {
	out := a
	for i := range 3 {
		if displacement[i] < 0 {
			out.Min[i] += displacement[i]
		} else {
			out.Max[i] += displacement[i]
		}
	}
	return out
}

func (a AABB) Translate(offset mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(offset), Max: a.Max.Add(offset)}
}

// Merge returns the smallest AABB containing both boxes
func (a AABB) Merge(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a.Min[0], other.Min[0]), math.Min(a.Min[1], other.Min[1]), math.Min(a.Min[2], other.Min[2])},
		Max: mgl64.Vec3{math.Max(a.Max[0], other.Max[0]), math.Max(a.Max[1], other.Max[1]), math.Max(a.Max[2], other.Max[2])},
	}
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Dimensions() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Dimensions().Mul(0.5)
}
