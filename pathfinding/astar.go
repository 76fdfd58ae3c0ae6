// Package pathfinding provides a generic A* search over any graph whose nodes
// are comparable values, plus a ready-made integer grid graph.
//
// The search never errors: an unreachable goal yields an empty path. Graphs
// that may be infinite or very large should be bounded by the caller, for
// example by wrapping the neighbour function with Budget.
package pathfinding

import (
	"container/heap"
	"math"
)

// UnitCost charges 1 for every edge
func UnitCost[T comparable](_, _ T) float64 { return 1 }

// FindPath searches the cheapest path from start to goal where every edge costs
// 1. See FindPathCost.
func FindPath[T comparable](start, goal T, neighbors func(T) []T, heuristic func(T, T) float64) []T {
	return FindPathCost(start, goal, neighbors, heuristic, UnitCost[T])
}

// FindPathCost runs A* from start to goal.
//
// neighbors lists the nodes reachable from a node in one step and stepCost the
// non-negative cost of that step. heuristic estimates the remaining cost to the
// goal; with an admissible heuristic the returned path is optimal.
//
// The returned path includes both endpoints. It is nil when the goal cannot be
// reached, and []T{start} when start == goal (neighbors is not called).
//
// The frontier holds duplicate entries instead of supporting decrease-key: an
// improved node is pushed again and its older entries are skipped when popped.
// Nodes with equal scores are expanded in insertion order.
func FindPathCost[T comparable](start, goal T, neighbors func(T) []T, heuristic func(T, T) float64, stepCost func(T, T) float64) []T {
	if start == goal {
		return []T{start}
	}

	gScore := map[T]float64{start: 0}
	cameFrom := make(map[T]T)
	visited := make(map[T]struct{})

	score := func(n T) float64 {
		if g, ok := gScore[n]; ok {
			return g
		}
		return math.Inf(1)
	}

	open := &frontier[T]{}
	heap.Push(open, &entry[T]{node: start, f: heuristic(start, goal)})

	for open.Len() > 0 {
		current := heap.Pop(open).(*entry[T]).node

		if current == goal {
			return reconstruct(cameFrom, start, goal)
		}
		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		g := score(current)
		for _, next := range neighbors(current) {
			if _, seen := visited[next]; seen {
				continue
			}

			tentative := g + stepCost(current, next)
			if tentative < score(next) {
				cameFrom[next] = current
				gScore[next] = tentative
				heap.Push(open, &entry[T]{node: next, f: tentative + heuristic(next, goal)})
			}
		}
	}

	return nil
}

func reconstruct[T comparable](cameFrom map[T]T, start, goal T) []T {
	path := []T{goal}
	for node := goal; node != start; {
		node = cameFrom[node]
		path = append(path, node)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Budget wraps neighbors so that at most limit nodes are expanded. Once the
// budget is spent every node reports no neighbours and the search drains its
// frontier, returning the path if it was already found or nil otherwise.
//
// The returned function keeps a counter and is meant for a single search.
func Budget[T any](neighbors func(T) []T, limit int) func(T) []T {
	expanded := 0
	return func(n T) []T {
		if expanded >= limit {
			return nil
		}
		expanded++
		return neighbors(n)
	}
}

type entry[T comparable] struct {
	node T
	f    float64
	seq  uint64
}

// frontier is a min-heap on f, insertion order breaking ties
type frontier[T comparable] struct {
	items []*entry[T]
	next  uint64
}

func (fr *frontier[T]) Len() int {
	return len(fr.items)
}

func (fr *frontier[T]) Less(i, j int) bool {
	if fr.items[i].f == fr.items[j].f {
		return fr.items[i].seq < fr.items[j].seq
	}
	return fr.items[i].f < fr.items[j].f
}

func (fr *frontier[T]) Swap(i, j int) {
	fr.items[i], fr.items[j] = fr.items[j], fr.items[i]
}

func (fr *frontier[T]) Push(x any) {
	e := x.(*entry[T])
	e.seq = fr.next
	fr.next++
	fr.items = append(fr.items, e)
}

func (fr *frontier[T]) Pop() any {
	old := fr.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	fr.items = old[:n-1]
	return e
}
