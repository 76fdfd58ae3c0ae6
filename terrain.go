package sweep

import (
	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/collision"
	"github.com/google/uuid"
)

// Terrain is static level geometry made of one or more boxes
type Terrain struct {
	ID    uuid.UUID
	Boxes []actor.AABB
	// Mask holds the layers this terrain lives on, tested against
	// Entity.TerrainMask
	Mask collision.Mask
}

// NewTerrain creates a terrain piece from its collision boxes
func NewTerrain(boxes ...actor.AABB) *Terrain {
	return &Terrain{
		ID:    uuid.New(),
		Boxes: boxes,
		Mask:  collision.MaskDefault,
	}
}

// Bounds returns the AABB enclosing every box
func (t *Terrain) Bounds() actor.AABB {
	if len(t.Boxes) == 0 {
		return actor.AABB{}
	}
	bounds := t.Boxes[0]
	for _, box := range t.Boxes[1:] {
		bounds = bounds.Merge(box)
	}
	return bounds
}

func terrainBoxes(t *Terrain) []actor.AABB {
	return t.Boxes
}
