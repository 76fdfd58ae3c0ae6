package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is a collision shape defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
}

// NewBox creates a box from its full dimensions
func NewBox(width, height, depth float64) Box {
	return Box{HalfExtents: mgl64.Vec3{width * 0.5, height * 0.5, depth * 0.5}}
}

// AABB returns the box centered on position. Orientation is ignored: moving
// entities keep an upright, unrotated bounding box while they turn.
func (b Box) AABB(position mgl64.Vec3) AABB {
	return AABBAround(position, b.HalfExtents)
}

// OrientedAABB returns the AABB enclosing the box once rotated and translated by transform
func (b Box) OrientedAABB(transform Transform) AABB {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	corners := [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}

	worldCorner := transform.Rotation.Rotate(corners[0]).Add(transform.Position)
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = transform.Rotation.Rotate(corners[i]).Add(transform.Position)

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	return AABB{Min: min, Max: max}
}

// Volume of the box
func (b Box) Volume() float64 {
	return 8.0 * b.HalfExtents.X() * b.HalfExtents.Y() * b.HalfExtents.Z()
}
