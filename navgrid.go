package sweep

import (
	"encoding/binary"
	"math"

	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/config"
	"github.com/akmonengine/sweep/log"
	"github.com/akmonengine/sweep/pathfinding"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// ============================================================================
// Types
// ============================================================================

// bucket holds the indices of the terrain boxes touching the cells hashed to it
type bucket struct {
	boxIndices []int
}

// NavGrid is a voxel view of the terrain used for path planning.
//
// A cell is walkable when it is free, the cells above it are free up to the
// agent clearance, and the cell below it is solid. Terrain boxes are hashed
// into buckets by the cells they cover, so solidity tests only look at the few
// boxes near a cell. NavGrid is read-only between Rebuild calls and can be
// used by several planners at once.
type NavGrid struct {
	cellSize float64
	cells    []bucket
	cellMask int
	boxes    []actor.AABB
	// digest of the boxes indexed by the last Rebuild
	digest uint64

	clearance     int
	maxExpansions int
	grid          pathfinding.Grid
	logger        *zap.Logger
}

// ============================================================================
// Constructor
// ============================================================================

// NewNavGrid creates an empty navigation grid with numCells hash buckets
func NewNavGrid(cfg config.NavigationConfig, numCells int, logger *zap.Logger) *NavGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]bucket, numCells)
	for i := range cells {
		cells[i].boxIndices = make([]int, 0, 4)
	}

	ng := &NavGrid{
		cellSize:      cfg.CellSize,
		cells:         cells,
		cellMask:      numCells - 1,
		clearance:     1,
		maxExpansions: cfg.MaxExpansions,
		logger:        log.OrNop(logger),
	}
	ng.grid = pathfinding.Grid{
		Walkable: ng.Walkable,
		Diagonal: cfg.Diagonal,
		Climb:    cfg.Climb,
	}

	return ng
}

// nextPowerOfTwo rounds n up to a power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// SetClearance sets the agent height that must fit above a walkable cell
func (ng *NavGrid) SetClearance(height float64) {
	ng.clearance = max(1, int(math.Ceil(height/ng.cellSize-1e-9)))
}

// Rebuild re-indexes the terrain boxes and reports whether anything changed
// since the previous Rebuild. It must not run concurrently with Plan.
func (ng *NavGrid) Rebuild(terrains []*Terrain) bool {
	digest := terrainDigest(terrains)
	if digest == ng.digest && len(ng.boxes) > 0 {
		return false
	}

	ng.Clear()
	for _, t := range terrains {
		for _, box := range t.Boxes {
			ng.Insert(box)
		}
	}
	ng.digest = digest
	return true
}

// terrainDigest hashes the box coordinates in order
func terrainDigest(terrains []*Terrain) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, t := range terrains {
		for _, box := range t.Boxes {
			for _, v := range [...]float64{box.Min[0], box.Min[1], box.Min[2], box.Max[0], box.Max[1], box.Max[2]} {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
				d.Write(buf[:])
			}
		}
	}
	return d.Sum64()
}

// Insert adds a terrain box to every cell it occupies
func (ng *NavGrid) Insert(box actor.AABB) {
	boxIndex := len(ng.boxes)
	ng.boxes = append(ng.boxes, box)

	minCell := ng.worldToCell(box.Min)
	maxCell := ng.worldToCell(box.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := ng.hashCell(pathfinding.Cell{X: x, Y: y, Z: z})

				ng.cells[cellIdx].boxIndices = append(
					ng.cells[cellIdx].boxIndices,
					boxIndex,
				)
			}
		}
	}
}

func (ng *NavGrid) Clear() {
	for i := range ng.cells {
		ng.cells[i].boxIndices = ng.cells[i].boxIndices[:0]
	}
	ng.boxes = ng.boxes[:0]
	ng.digest = 0
}

// ============================================================================
// Queries
// ============================================================================

// Solid reports whether any terrain box intersects the cell. Boxes merely
// touching a cell face do not count.
func (ng *NavGrid) Solid(c pathfinding.Cell) bool {
	margin := ng.cellSize * 1e-3
	cellBox := actor.AABB{
		Min: mgl64.Vec3{float64(c.X)*ng.cellSize + margin, float64(c.Y)*ng.cellSize + margin, float64(c.Z)*ng.cellSize + margin},
		Max: mgl64.Vec3{float64(c.X+1)*ng.cellSize - margin, float64(c.Y+1)*ng.cellSize - margin, float64(c.Z+1)*ng.cellSize - margin},
	}

	for _, idx := range ng.cells[ng.hashCell(c)].boxIndices {
		if ng.boxes[idx].Overlaps(cellBox) {
			return true
		}
	}
	return false
}

// Walkable reports whether an agent can stand in the cell
func (ng *NavGrid) Walkable(c pathfinding.Cell) bool {
	if !ng.Solid(c.Add(0, -1, 0)) {
		return false
	}
	for dy := range ng.clearance {
		if ng.Solid(c.Add(0, dy, 0)) {
			return false
		}
	}
	return true
}

// FloorCell finds the walkable cell an agent centered on pos stands in
func (ng *NavGrid) FloorCell(pos mgl64.Vec3) (pathfinding.Cell, bool) {
	c := ng.worldToCell(pos)
	for dy := 0; dy <= ng.clearance+1; dy++ {
		if below := c.Add(0, -dy, 0); ng.Walkable(below) {
			return below, true
		}
	}
	return pathfinding.Cell{}, false
}

// Plan implements ai.Planner. Waypoints are the centers of the floor of each
// cell on the path, except the last one which is to itself.
func (ng *NavGrid) Plan(from, to mgl64.Vec3) []mgl64.Vec3 {
	start, ok := ng.FloorCell(from)
	if !ok {
		ng.logger.Debug("no floor under path start", zap.Float64s("position", from[:]))
		return nil
	}
	goal, ok := ng.FloorCell(to)
	if !ok {
		ng.logger.Debug("no floor under path goal", zap.Float64s("position", to[:]))
		return nil
	}

	neighbors := pathfinding.Budget(ng.grid.Neighbors, ng.maxExpansions)
	cells := pathfinding.FindPathCost(start, goal, neighbors, ng.grid.Heuristic(), ng.grid.Cost)
	if len(cells) == 0 {
		return nil
	}

	path := make([]mgl64.Vec3, len(cells))
	for i, c := range cells {
		path[i] = ng.cellFloor(c)
	}
	path[len(path)-1] = to

	return path
}

// cellFloor returns the center of the bottom face of a cell
func (ng *NavGrid) cellFloor(c pathfinding.Cell) mgl64.Vec3 {
	return mgl64.Vec3{
		(float64(c.X) + 0.5) * ng.cellSize,
		float64(c.Y) * ng.cellSize,
		(float64(c.Z) + 0.5) * ng.cellSize,
	}
}

// worldToCell converts a world position to cell coordinates
func (ng *NavGrid) worldToCell(pos mgl64.Vec3) pathfinding.Cell {
	return pathfinding.Cell{
		X: int(math.Floor(pos.X() / ng.cellSize)),
		Y: int(math.Floor(pos.Y() / ng.cellSize)),
		Z: int(math.Floor(pos.Z() / ng.cellSize)),
	}
}

// hashCell maps a cell to an index in the bucket array
func (ng *NavGrid) hashCell(key pathfinding.Cell) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & ng.cellMask
}
