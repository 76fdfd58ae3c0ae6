// Package ai drives agents with simple behaviours on top of path planning.
//
// A behaviour reads the agent through the Agent interface and acts by calling
// back into it. It keeps no state of its own: everything that must survive
// between ticks (goal, planned path, patrol position) lives in the agent's
// Navigator.
package ai

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Target is something an agent can chase and strike
type Target interface {
	Position() mgl64.Vec3
}

// Agent is what behaviours drive
type Agent interface {
	Position() mgl64.Vec3
	Navigator() *Navigator
	// Target returns the current target, if the agent has one
	Target() (Target, bool)
	// Reach is the distance within which the agent can strike
	Reach() float64
	// WalkTowards moves the agent one tick towards point
	WalkTowards(point mgl64.Vec3)
	LookAt(point mgl64.Vec3)
	Attack(target Target)
}

// Behaviour is a unit of agent logic
type Behaviour uint8

const (
	// Walk patrols the navigator's route
	Walk Behaviour = iota
	// Attack chases the target and strikes once within reach
	Attack
)

var behaviourNames = [...]string{
	Walk:   "walk",
	Attack: "attack",
}

// Apply runs the behaviour for one tick and reports whether it acted
func (b Behaviour) Apply(agent Agent) bool {
	switch b {
	case Walk:
		return walk(agent)
	case Attack:
		return attack(agent)
	default:
		return false
	}
}

// Run applies behaviours in order until one acts, and returns it.
// Earlier behaviours take priority.
func Run(agent Agent, behaviours ...Behaviour) (Behaviour, bool) {
	for _, b := range behaviours {
		if b.Apply(agent) {
			return b, true
		}
	}
	return 0, false
}

func walk(agent Agent) bool {
	nav := agent.Navigator()
	if nav == nil || len(nav.Patrol) == 0 {
		return false
	}

	position := agent.Position()
	if _, ok := nav.Goal(); !ok || nav.Arrived(position) || nav.Unreachable() {
		point, _ := nav.NextPatrolPoint()
		// A new patrol point is always planned, even when close to the last one
		nav.ClearGoal()
		nav.SetGoal(point)
	}

	follow(agent, nav, position)
	return true
}

func attack(agent Agent) bool {
	target, ok := agent.Target()
	if !ok {
		return false
	}

	position := agent.Position()
	targetPosition := target.Position()
	agent.LookAt(targetPosition)

	if flatDistance(position, targetPosition) <= agent.Reach() {
		agent.Attack(target)
		return true
	}

	nav := agent.Navigator()
	if nav == nil {
		agent.WalkTowards(targetPosition)
		return true
	}

	nav.SetGoal(targetPosition)
	follow(agent, nav, position)
	return true
}

func follow(agent Agent, nav *Navigator, position mgl64.Vec3) {
	if waypoint, ok := nav.Next(position); ok {
		agent.LookAt(waypoint)
		agent.WalkTowards(waypoint)
	}
}

func (b Behaviour) String() string {
	if int(b) < len(behaviourNames) {
		return behaviourNames[b]
	}
	return fmt.Sprintf("Behaviour(%d)", b)
}

// ParseBehaviour reads a behaviour name, case-insensitively
func ParseBehaviour(name string) (Behaviour, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range behaviourNames {
		if n == key {
			return Behaviour(i), nil
		}
	}
	return 0, fmt.Errorf("unknown behaviour %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (b Behaviour) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *Behaviour) UnmarshalText(text []byte) error {
	parsed, err := ParseBehaviour(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
