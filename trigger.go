package sweep

import "bytes"

const (
	TRIGGER_ENTER EventType = iota
	COLLISION_ENTER
	TRIGGER_STAY
	COLLISION_STAY
	TRIGGER_EXIT
	COLLISION_EXIT
	ON_LAND
	ON_LEAVE_GROUND
)

type pairKey struct {
	entityA *Entity
	entityB *Entity
}

// makePairKey creates a normalized pair key, ordered by entity ID
func makePairKey(entityA, entityB *Entity) pairKey {
	if bytes.Compare(entityB.ID[:], entityA.ID[:]) < 0 {
		entityA, entityB = entityB, entityA
	}

	return pairKey{entityA: entityA, entityB: entityB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Trigger events. EntityA is the trigger.
type TriggerEnterEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e TriggerEnterEvent) Type() EventType { return TRIGGER_ENTER }

type TriggerStayEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e TriggerStayEvent) Type() EventType { return TRIGGER_STAY }

type TriggerExitEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e TriggerExitEvent) Type() EventType { return TRIGGER_EXIT }

// Collision events, between two blocking entities
type CollisionEnterEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// Ground events
type LandEvent struct {
	Entity *Entity
}

func (e LandEvent) Type() EventType { return ON_LAND }

type LeaveGroundEvent struct {
	Entity *Entity
}

func (e LeaveGroundEvent) Type() EventType { return ON_LEAVE_GROUND }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection. The value tells whether
	// the pair involves a trigger.
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool

	groundStates map[*Entity]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
		groundStates:        make(map[*Entity]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts registers the entity pairs that collided this tick
func (e *Events) recordContacts(contacts []Pair) {
	for _, c := range contacts {
		e.currentActivePairs[makePairKey(c.EntityA, c.EntityB)] = false
	}
}

// recordOverlaps registers the trigger overlaps of this tick
func (e *Events) recordOverlaps(overlaps <-chan Pair) {
	for p := range overlaps {
		e.currentActivePairs[pairKey{entityA: p.EntityA, entityB: p.EntityB}] = true
	}
}

// processContactEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processContactEvents() {
	// Detect Enter and Stay events
	for pair, isTrigger := range e.currentActivePairs {
		if _, ok := e.previousActivePairs[pair]; ok {
			// Pair was active before and still is, Stay
			if isTrigger {
				e.buffer = append(e.buffer, TriggerStayEvent{
					EntityA: pair.entityA,
					EntityB: pair.entityB,
				})
			} else {
				e.buffer = append(e.buffer, CollisionStayEvent{
					EntityA: pair.entityA,
					EntityB: pair.entityB,
				})
			}
		} else {
			// New pair, Enter
			if isTrigger {
				e.buffer = append(e.buffer, TriggerEnterEvent{
					EntityA: pair.entityA,
					EntityB: pair.entityB,
				})
			} else {
				e.buffer = append(e.buffer, CollisionEnterEvent{
					EntityA: pair.entityA,
					EntityB: pair.entityB,
				})
			}
		}
	}

	// Detect Exit events
	for pair, isTrigger := range e.previousActivePairs {
		if _, ok := e.currentActivePairs[pair]; ok {
			continue
		}
		// Pair was active but is no longer, Exit
		if isTrigger {
			e.buffer = append(e.buffer, TriggerExitEvent{
				EntityA: pair.entityA,
				EntityB: pair.entityB,
			})
		} else {
			e.buffer = append(e.buffer, CollisionExitEvent{
				EntityA: pair.entityA,
				EntityB: pair.entityB,
			})
		}
	}

	// Swap for next tick and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// processGroundEvents emits an event when an entity lands or leaves the ground.
// Entities seen for the first time only have their state recorded.
func (e *Events) processGroundEvents(entities []*Entity) {
	for _, entity := range entities {
		trackedState, exists := e.groundStates[entity]
		if !exists {
			e.groundStates[entity] = entity.OnGround
			continue
		}

		if !trackedState && entity.OnGround {
			e.buffer = append(e.buffer, LandEvent{Entity: entity})
			e.groundStates[entity] = true
		} else if trackedState && !entity.OnGround {
			e.buffer = append(e.buffer, LeaveGroundEvent{Entity: entity})
			e.groundStates[entity] = false
		}
	}
}

// forget drops every tracked state involving entity
func (e *Events) forget(entity *Entity) {
	delete(e.groundStates, entity)
	for pair := range e.previousActivePairs {
		if pair.entityA == entity || pair.entityB == entity {
			delete(e.previousActivePairs, pair)
		}
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
