package ai

import "github.com/go-gl/mathgl/mgl64"

// Planner computes waypoint paths between world positions. The returned path
// starts near from and ends near to; it is empty when to cannot be reached.
// Implementations must be safe for concurrent use.
type Planner interface {
	Plan(from, to mgl64.Vec3) []mgl64.Vec3
}

// Navigator follows a planned path towards a goal.
//
// Behaviours set the goal, the world replans when NeedsPlan reports so, and
// behaviours then read the next waypoint to walk to. Distances are measured on
// the horizontal plane only, since a walking agent cannot reach a waypoint's
// height by itself.
type Navigator struct {
	// ArriveRadius is the distance at which a waypoint or goal counts as reached
	ArriveRadius float64
	// RepathInterval replans a followed path every N calls to Next; 0 never does
	RepathInterval int
	// Patrol is the route walked by the Walk behaviour, looping
	Patrol []mgl64.Vec3

	goal        mgl64.Vec3
	hasGoal     bool
	dirty       bool
	unreachable bool

	path        []mgl64.Vec3
	index       int
	sinceRepath int
	patrolIndex int
}

// NewNavigator creates a navigator without a goal
func NewNavigator(arriveRadius float64, repathInterval int) *Navigator {
	return &Navigator{
		ArriveRadius:   arriveRadius,
		RepathInterval: repathInterval,
	}
}

// SetGoal moves the goal. A goal that moved less than ArriveRadius keeps the
// current path, so a slowly moving target does not trigger a replan every tick.
func (n *Navigator) SetGoal(goal mgl64.Vec3) {
	if n.hasGoal && flatDistance(n.goal, goal) < n.ArriveRadius {
		return
	}
	n.goal = goal
	n.hasGoal = true
	n.dirty = true
	n.unreachable = false
}

// ClearGoal stops navigating
func (n *Navigator) ClearGoal() {
	n.hasGoal = false
	n.dirty = false
	n.unreachable = false
	n.path = nil
	n.index = 0
}

// Goal returns the current goal, if any
func (n *Navigator) Goal() (mgl64.Vec3, bool) {
	return n.goal, n.hasGoal
}

// Unreachable reports whether the last plan for the current goal found no path
func (n *Navigator) Unreachable() bool {
	return n.unreachable
}

// Arrived reports whether position is within ArriveRadius of the goal
func (n *Navigator) Arrived(position mgl64.Vec3) bool {
	return n.hasGoal && flatDistance(position, n.goal) <= n.ArriveRadius
}

// NeedsPlan reports whether the goal changed or the path is due for a refresh
func (n *Navigator) NeedsPlan() bool {
	if !n.hasGoal {
		return false
	}
	if n.dirty {
		return true
	}
	return n.RepathInterval > 0 && n.sinceRepath >= n.RepathInterval && !n.unreachable
}

// Replan asks planner for a path from position to the goal
func (n *Navigator) Replan(planner Planner, position mgl64.Vec3) {
	if !n.hasGoal {
		return
	}
	n.SetPath(planner.Plan(position, n.goal))
}

// SetPath installs a planned path and restarts following it
func (n *Navigator) SetPath(path []mgl64.Vec3) {
	n.path = path
	n.index = 0
	n.sinceRepath = 0
	n.dirty = false
	n.unreachable = len(path) == 0
}

// Path returns the waypoints still ahead
func (n *Navigator) Path() []mgl64.Vec3 {
	if n.index >= len(n.path) {
		return nil
	}
	return n.path[n.index:]
}

// Next returns the waypoint to walk towards from position, skipping the ones
// already reached. It returns false when there is nothing to follow: no goal,
// no path yet, an unreachable goal, or the end of the path.
func (n *Navigator) Next(position mgl64.Vec3) (mgl64.Vec3, bool) {
	if !n.hasGoal || n.dirty {
		return mgl64.Vec3{}, false
	}
	n.sinceRepath++

	for n.index < len(n.path) && flatDistance(position, n.path[n.index]) <= n.ArriveRadius {
		n.index++
	}
	if n.index >= len(n.path) {
		return mgl64.Vec3{}, false
	}
	return n.path[n.index], true
}

// NextPatrolPoint returns the next point of the patrol route, looping
func (n *Navigator) NextPatrolPoint() (mgl64.Vec3, bool) {
	if len(n.Patrol) == 0 {
		return mgl64.Vec3{}, false
	}
	point := n.Patrol[n.patrolIndex%len(n.Patrol)]
	n.patrolIndex = (n.patrolIndex + 1) % len(n.Patrol)
	return point, true
}

func flatDistance(a, b mgl64.Vec3) float64 {
	d := b.Sub(a)
	d[1] = 0
	return d.Len()
}
