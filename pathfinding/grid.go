package pathfinding

import "math"

// Cell is an integer grid coordinate. Y is the vertical layer.
type Cell struct {
	X, Y, Z int
}

// Add returns the cell offset by (dx, dy, dz)
func (c Cell) Add(dx, dy, dz int) Cell {
	return Cell{c.X + dx, c.Y + dy, c.Z + dz}
}

// Grid is a graph of cells moving on the horizontal X/Z plane.
//
// Walkable decides which cells can be occupied. With Diagonal set, the eight
// surrounding cells are neighbours, but a diagonal step is only allowed when
// both orthogonal cells it passes between are walkable, so paths never cut
// corners. Climb lets a step move up or down that many layers when the cell on
// the current layer is blocked (stairs, slopes).
type Grid struct {
	Walkable func(Cell) bool
	Diagonal bool
	Climb    int
}

var (
	orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Neighbors implements the neighbour function expected by FindPath
func (g Grid) Neighbors(c Cell) []Cell {
	result := make([]Cell, 0, 8)

	for _, d := range orthogonal {
		if n, ok := g.step(c, d[0], d[1]); ok {
			result = append(result, n)
		}
	}

	if !g.Diagonal {
		return result
	}

	for _, d := range diagonal {
		if !g.Walkable(c.Add(d[0], 0, 0)) || !g.Walkable(c.Add(0, 0, d[1])) {
			continue
		}
		if n, ok := g.step(c, d[0], d[1]); ok {
			result = append(result, n)
		}
	}

	return result
}

// step finds the layer reachable when moving by (dx, dz), preferring the
// current one, then the closest layer above, then below.
func (g Grid) step(c Cell, dx, dz int) (Cell, bool) {
	n := c.Add(dx, 0, dz)
	if g.Walkable(n) {
		return n, true
	}
	for dy := 1; dy <= g.Climb; dy++ {
		if up := n.Add(0, dy, 0); g.Walkable(up) {
			return up, true
		}
		if down := n.Add(0, -dy, 0); g.Walkable(down) {
			return down, true
		}
	}
	return Cell{}, false
}

// Cost is the length of a step between adjacent cells: 1 orthogonally, √2
// diagonally, plus one per layer climbed.
func (g Grid) Cost(a, b Cell) float64 {
	cost := 1.0
	if a.X != b.X && a.Z != b.Z {
		cost = math.Sqrt2
	}
	return cost + math.Abs(float64(b.Y-a.Y))
}

// Heuristic returns the admissible heuristic matching the grid connectivity
func (g Grid) Heuristic() func(Cell, Cell) float64 {
	if g.Diagonal {
		return Octile
	}
	return Manhattan
}

// FindPath searches the cheapest path between two cells of the grid
func (g Grid) FindPath(from, to Cell) []Cell {
	return FindPathCost(from, to, g.Neighbors, g.Heuristic(), g.Cost)
}

// Manhattan is the taxicab distance, exact on a 4-connected grid
func Manhattan(a, b Cell) float64 {
	return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y)) + math.Abs(float64(a.Z-b.Z))
}

// Octile is exact on an 8-connected grid with unit orthogonal and √2 diagonal steps
func Octile(a, b Cell) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dz := math.Abs(float64(a.Z - b.Z))
	return math.Max(dx, dz) + (math.Sqrt2-1)*math.Min(dx, dz) + math.Abs(float64(a.Y-b.Y))
}

// Euclidean is the straight-line distance. It is admissible on any of the
// grids above but expands more nodes than Manhattan or Octile.
func Euclidean(a, b Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
