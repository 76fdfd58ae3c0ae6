package ai

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nowhere struct{}

func (nowhere) Plan(_, _ mgl64.Vec3) []mgl64.Vec3 { return nil }

type countingPlanner struct {
	calls int
	path  []mgl64.Vec3
}

func (p *countingPlanner) Plan(_, _ mgl64.Vec3) []mgl64.Vec3 {
	p.calls++
	return p.path
}

func TestNavigator_SetGoal(t *testing.T) {
	nav := NewNavigator(1, 0)
	assert.False(t, nav.NeedsPlan())

	nav.SetGoal(mgl64.Vec3{10, 0, 0})
	assert.True(t, nav.NeedsPlan())

	nav.SetPath([]mgl64.Vec3{{10, 0, 0}})
	assert.False(t, nav.NeedsPlan())

	// A small shift keeps the path
	nav.SetGoal(mgl64.Vec3{10.5, 0, 0})
	assert.False(t, nav.NeedsPlan())
	goal, _ := nav.Goal()
	assert.Equal(t, mgl64.Vec3{10, 0, 0}, goal)

	nav.SetGoal(mgl64.Vec3{12, 0, 0})
	assert.True(t, nav.NeedsPlan())

	nav.ClearGoal()
	assert.False(t, nav.NeedsPlan())
	_, ok := nav.Goal()
	assert.False(t, ok)
}

func TestNavigator_Next(t *testing.T) {
	nav := NewNavigator(0.5, 0)

	_, ok := nav.Next(mgl64.Vec3{})
	assert.False(t, ok, "no goal")

	nav.SetGoal(mgl64.Vec3{2, 0, 2})
	_, ok = nav.Next(mgl64.Vec3{})
	assert.False(t, ok, "not planned yet")

	nav.SetPath([]mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 0, 2}})

	tests := []struct {
		name     string
		position mgl64.Vec3
		want     mgl64.Vec3
		ok       bool
	}{
		{"skips the start", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0}, true},
		{"still heading to the first corner", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0}, true},
		{"corner reached, height ignored", mgl64.Vec3{1.8, 3, 0}, mgl64.Vec3{2, 0, 2}, true},
		{"end of path", mgl64.Vec3{2, 0, 1.9}, mgl64.Vec3{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nav.Next(tt.position)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, nav.Arrived(mgl64.Vec3{2, 0, 1.9}))
	assert.Empty(t, nav.Path())
}

func TestNavigator_RepathInterval(t *testing.T) {
	planner := &countingPlanner{path: []mgl64.Vec3{{0, 0, 0}, {20, 0, 0}}}
	nav := NewNavigator(0.5, 3)
	nav.SetGoal(mgl64.Vec3{20, 0, 0})

	nav.Replan(planner, mgl64.Vec3{})
	require.Equal(t, 1, planner.calls)

	for range 2 {
		nav.Next(mgl64.Vec3{})
		assert.False(t, nav.NeedsPlan())
	}
	nav.Next(mgl64.Vec3{})
	assert.True(t, nav.NeedsPlan())

	nav.Replan(planner, mgl64.Vec3{})
	assert.Equal(t, 2, planner.calls)
	assert.False(t, nav.NeedsPlan())
}

func TestNavigator_Unreachable(t *testing.T) {
	nav := NewNavigator(0.5, 1)
	nav.SetGoal(mgl64.Vec3{5, 0, 0})

	nav.Replan(nowhere{}, mgl64.Vec3{})

	assert.True(t, nav.Unreachable())
	_, ok := nav.Next(mgl64.Vec3{})
	assert.False(t, ok)
	// Unreachable goals are not retried until the goal moves
	assert.False(t, nav.NeedsPlan())

	nav.SetGoal(mgl64.Vec3{-5, 0, 0})
	assert.False(t, nav.Unreachable())
	assert.True(t, nav.NeedsPlan())
}

func TestNavigator_Patrol(t *testing.T) {
	nav := NewNavigator(0.5, 0)
	_, ok := nav.NextPatrolPoint()
	assert.False(t, ok)

	nav.Patrol = []mgl64.Vec3{{1, 0, 0}, {2, 0, 0}}
	var got []mgl64.Vec3
	for range 3 {
		p, ok := nav.NextPatrolPoint()
		require.True(t, ok)
		got = append(got, p)
	}
	assert.Equal(t, []mgl64.Vec3{{1, 0, 0}, {2, 0, 0}, {1, 0, 0}}, got)
}
