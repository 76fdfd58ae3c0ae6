package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents a position and orientation in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform at the given position
func NewTransform(position mgl64.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl64.QuatIdent(),
	}
}

// Forward returns the facing direction (-Z rotated by the orientation)
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// LookAt turns the transform to face a point, keeping the Y axis up.
// The rotation is unchanged when the point is the current position.
func (t *Transform) LookAt(point mgl64.Vec3) {
	dir := point.Sub(t.Position)
	dir[1] = 0
	if dir.LenSqr() < 1e-12 {
		return
	}
	yaw := math.Atan2(-dir.X(), -dir.Z())
	t.Rotation = mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})
}
