package sweep

import (
	"testing"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestEntity creates a unit entity for event testing
func createTestEntity(isTrigger bool) *Entity {
	e := NewEntity(mgl64.Vec3{}, actor.NewBox(1, 1, 1), BodyTypeDynamic)
	e.IsTrigger = isTrigger
	return e
}

func overlapsOf(pairs ...Pair) <-chan Pair {
	ch := make(chan Pair, len(pairs))
	for _, p := range pairs {
		ch <- p
	}
	close(ch)
	return ch
}

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) types() []EventType {
	types := make([]EventType, len(ec.events))
	for i, e := range ec.events {
		types[i] = e.Type()
	}
	return types
}

func subscribeAll(events *Events, capture *eventCapture) {
	for eventType := TRIGGER_ENTER; eventType <= ON_LEAVE_GROUND; eventType++ {
		events.Subscribe(eventType, capture.capture)
	}
}

// =============================================================================
// Subscribe and Listeners Tests
// =============================================================================

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	captures := []*eventCapture{{}, {}, {}}
	for _, c := range captures {
		events.Subscribe(COLLISION_ENTER, c.capture)
	}
	require.Len(t, events.listeners[COLLISION_ENTER], 3)

	a, b := createTestEntity(false), createTestEntity(false)
	events.recordContacts([]Pair{{EntityA: a, EntityB: b}})
	events.flush()

	for _, c := range captures {
		assert.Len(t, c.events, 1)
	}
}

func TestEvents_OnlySubscribedTypes(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(TRIGGER_ENTER, capture.capture)

	a, b := createTestEntity(false), createTestEntity(false)
	events.recordContacts([]Pair{{EntityA: a, EntityB: b}})
	events.flush()

	assert.Empty(t, capture.events)
}

// =============================================================================
// Enter / Stay / Exit
// =============================================================================

func TestEvents_CollisionLifecycle(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	a, b := createTestEntity(false), createTestEntity(false)

	ticks := []struct {
		name     string
		contacts []Pair
		expected []EventType
	}{
		{"enter", []Pair{{EntityA: a, EntityB: b}}, []EventType{COLLISION_ENTER}},
		{"stay, reversed order", []Pair{{EntityA: b, EntityB: a}}, []EventType{COLLISION_STAY}},
		{"duplicate contacts", []Pair{{EntityA: a, EntityB: b}, {EntityA: b, EntityB: a}}, []EventType{COLLISION_STAY}},
		{"exit", nil, []EventType{COLLISION_EXIT}},
		{"nothing left", nil, []EventType{}},
	}

	for _, tick := range ticks {
		capture.reset()
		events.recordContacts(tick.contacts)
		events.flush()
		assert.Equal(t, tick.expected, capture.types(), tick.name)
	}
}

func TestEvents_TriggerLifecycle(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	trigger, visitor := createTestEntity(true), createTestEntity(false)

	ticks := []struct {
		name     string
		overlaps []Pair
		expected []EventType
	}{
		{"enter", []Pair{{EntityA: trigger, EntityB: visitor}}, []EventType{TRIGGER_ENTER}},
		{"stay", []Pair{{EntityA: trigger, EntityB: visitor}}, []EventType{TRIGGER_STAY}},
		{"exit", nil, []EventType{TRIGGER_EXIT}},
	}

	for _, tick := range ticks {
		capture.reset()
		events.recordOverlaps(overlapsOf(tick.overlaps...))
		events.flush()
		require.Equal(t, tick.expected, capture.types(), tick.name)
	}

	// The trigger is always reported first
	capture.reset()
	events.recordOverlaps(overlapsOf(Pair{EntityA: trigger, EntityB: visitor}))
	events.flush()
	require.Len(t, capture.events, 1)
	enter := capture.events[0].(TriggerEnterEvent)
	assert.Same(t, trigger, enter.EntityA)
	assert.Same(t, visitor, enter.EntityB)
}

// =============================================================================
// Ground
// =============================================================================

func TestEvents_Ground(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	e := createTestEntity(false)

	ticks := []struct {
		name     string
		onGround bool
		expected []EventType
	}{
		{"first sighting only records", true, []EventType{}},
		{"still grounded", true, []EventType{}},
		{"jump", false, []EventType{ON_LEAVE_GROUND}},
		{"airborne", false, []EventType{}},
		{"land", true, []EventType{ON_LAND}},
	}

	for _, tick := range ticks {
		capture.reset()
		e.OnGround = tick.onGround
		events.processGroundEvents([]*Entity{e})
		events.flush()
		assert.Equal(t, tick.expected, capture.types(), tick.name)
	}
}

func TestEvents_Forget(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	a, b := createTestEntity(false), createTestEntity(false)
	events.recordContacts([]Pair{{EntityA: a, EntityB: b}})
	events.processGroundEvents([]*Entity{a})
	events.flush()

	events.forget(a)
	capture.reset()
	events.flush()

	// A removed entity produces no exit event
	assert.Empty(t, capture.events)
	assert.NotContains(t, events.groundStates, a)
}

func TestMakePairKey(t *testing.T) {
	a, b := createTestEntity(false), createTestEntity(false)
	assert.Equal(t, makePairKey(a, b), makePairKey(b, a))
}
