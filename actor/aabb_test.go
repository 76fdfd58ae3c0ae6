package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Overlap and containment
// =============================================================================

func TestAABBOverlaps(t *testing.T) {
	unit := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name          string
		other         AABB
		shouldOverlap bool
	}{
		{"Separated on X axis", AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}}, false},
		{"Separated on Y axis", AABB{Min: mgl64.Vec3{0, -2, 0}, Max: mgl64.Vec3{1, -1, 1}}, false},
		{"Separated on Z axis", AABB{Min: mgl64.Vec3{0, 0, 2}, Max: mgl64.Vec3{1, 1, 3}}, false},
		{"Identical", unit, true},
		{"Partial overlap on all axes", AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{2, 2, 2}}, true},
		{"Face touching", AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}, true},
		{"Corner touching", AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{2, 2, 2}}, true},
		{"Contained", AABB{Min: mgl64.Vec3{0.25, 0.25, 0.25}, Max: mgl64.Vec3{0.75, 0.75, 0.75}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shouldOverlap, unit.Overlaps(tt.other))
			// Symmetry
			assert.Equal(t, tt.shouldOverlap, tt.other.Overlaps(unit))
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"Center point", mgl64.Vec3{1, 1, 1}, true},
		{"Min corner", mgl64.Vec3{0, 0, 0}, true},
		{"Max corner", mgl64.Vec3{2, 2, 2}, true},
		{"Outside (X too large)", mgl64.Vec3{3, 1, 1}, false},
		{"Outside (Y too small)", mgl64.Vec3{1, -1, 1}, false},
		{"Outside (Z too large)", mgl64.Vec3{1, 1, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, aabb.ContainsPoint(tt.point))
		})
	}
}

// =============================================================================
// Construction and helpers
// =============================================================================

func TestNewAABBOrdersCorners(t *testing.T) {
	aabb := NewAABB(mgl64.Vec3{2, -1, 5}, mgl64.Vec3{-2, 3, 1})

	assert.Equal(t, mgl64.Vec3{-2, -1, 1}, aabb.Min)
	assert.Equal(t, mgl64.Vec3{2, 3, 5}, aabb.Max)
}

func TestAABBInflate(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}.Inflate(mgl64.Vec3{0.5, 1, 0})

	assert.Equal(t, mgl64.Vec3{-0.5, -1, 0}, aabb.Min)
	assert.Equal(t, mgl64.Vec3{1.5, 2, 1}, aabb.Max)
}

func TestAABBExpand(t *testing.T) {
	tests := []struct {
		name         string
		displacement mgl64.Vec3
		min, max     mgl64.Vec3
	}{
		{"Positive grows max", mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 1, 1}},
		{"Negative grows min", mgl64.Vec3{0, -3, 0}, mgl64.Vec3{0, -3, 0}, mgl64.Vec3{1, 1, 1}},
		{"Mixed", mgl64.Vec3{-1, 0, 4}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{1, 1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aabb := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}.Expand(tt.displacement)
			assert.Equal(t, tt.min, aabb.Min)
			assert.Equal(t, tt.max, aabb.Max)
		})
	}
}

func TestAABBMergeAndMeasures(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{-1, 2, 0}, Max: mgl64.Vec3{0, 3, 4}}

	merged := a.Merge(b)
	assert.Equal(t, mgl64.Vec3{-1, 0, 0}, merged.Min)
	assert.Equal(t, mgl64.Vec3{1, 3, 4}, merged.Max)
	assert.Equal(t, mgl64.Vec3{2, 3, 4}, merged.Dimensions())
	assert.Equal(t, mgl64.Vec3{1, 1.5, 2}, merged.HalfExtents())
	assert.Equal(t, mgl64.Vec3{0, 1.5, 2}, merged.Center())
}

func TestAABBTranslate(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}.Translate(mgl64.Vec3{1, -2, 3})

	assert.Equal(t, mgl64.Vec3{1, -2, 3}, aabb.Min)
	assert.Equal(t, mgl64.Vec3{2, -1, 4}, aabb.Max)
}
