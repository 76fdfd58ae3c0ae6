package sweep

import (
	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/ai"
	"github.com/akmonengine/sweep/collision"
	"github.com/akmonengine/sweep/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BodyType represents how the world moves an entity
type BodyType int

const (
	// BodyTypeDynamic entities fall, walk and collide
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic entities never move but block dynamic ones (doors, crates)
	BodyTypeStatic
)

// DefaultMoveSpeed is the walking impulse of an entity, per tick
const DefaultMoveSpeed = 0.15

// Entity is a box moved by the world: players, enemies, projectiles, pickups.
//
// Motion is the persistent velocity in units per tick. It is decayed by
// friction every tick and rewritten by collision responses.
type Entity struct {
	ID        uuid.UUID
	Transform actor.Transform
	Shape     actor.Box
	Motion    mgl64.Vec3
	BodyType  BodyType

	// IsTrigger entities never block nor get blocked by other entities; their
	// overlaps are reported as trigger events instead
	IsTrigger bool

	// TerrainMask selects the terrain layers the entity collides with.
	// EntityMask is both the entity's own layers and the ones it collides
	// with: two entities interact when their EntityMasks share a layer.
	TerrainMask collision.Mask
	EntityMask  collision.Mask

	// Response is applied when this entity runs into another entity or into
	// terrain. Push responses cannot move terrain, which is slid along instead.
	Response collision.Response
	// Bounce is the per-axis restitution used by collision.ResponseBounce
	Bounce       mgl64.Vec3
	GravityScale float64
	MoveSpeed    float64
	OnGround     bool

	Health      int
	MaxHealth   int
	MeleeDamage int
	// Reach is the distance within which Attack behaviours strike
	AttackReach    float64
	AttackCooldown int
	Knockback      float64
	Behaviours     []ai.Behaviour

	impulse   mgl64.Vec3
	move      mgl64.Vec3
	navigator *ai.Navigator
	target    *Entity
	cooldown  int
}

// NewEntity creates a dynamic entity centered on position
func NewEntity(position mgl64.Vec3, shape actor.Box, bodyType BodyType) *Entity {
	return &Entity{
		ID:           uuid.New(),
		Transform:    actor.NewTransform(position),
		Shape:        shape,
		BodyType:     bodyType,
		TerrainMask:  collision.MaskDefault,
		EntityMask:   collision.MaskDefault,
		Response:     collision.ResponseSlide,
		Bounce:       mgl64.Vec3{1, 1, 1},
		GravityScale: 1,
		MoveSpeed:    DefaultMoveSpeed,
	}
}

// NewEnemy creates an AI-driven entity from its configuration. The navigator
// has no patrol route; set one through Navigator().Patrol.
func NewEnemy(position mgl64.Vec3, enemy config.EnemyConfig, navigation config.NavigationConfig) *Entity {
	e := NewEntity(position, actor.NewBox(enemy.Width, enemy.Height, enemy.Width), BodyTypeDynamic)
	e.Response = enemy.Response
	e.Health = enemy.Health
	e.MaxHealth = enemy.Health
	e.MeleeDamage = enemy.MeleeDamage
	e.MoveSpeed = enemy.MoveSpeed
	e.AttackReach = enemy.Reach
	e.AttackCooldown = enemy.AttackCooldown
	e.Knockback = enemy.Knockback
	e.Behaviours = append([]ai.Behaviour(nil), enemy.Behaviours...)
	e.navigator = ai.NewNavigator(navigation.ArriveRadius, navigation.RepathInterval)
	return e
}

// AABB returns the world-space bounding box
func (e *Entity) AABB() actor.AABB {
	return e.Shape.AABB(e.Transform.Position)
}

// Position returns the center of the entity
func (e *Entity) Position() mgl64.Vec3 {
	return e.Transform.Position
}

// Navigator returns the path follower, nil for entities without AI
func (e *Entity) Navigator() *ai.Navigator {
	return e.navigator
}

// SetNavigator attaches a path follower
func (e *Entity) SetNavigator(navigator *ai.Navigator) {
	e.navigator = navigator
}

// Target returns the entity being chased, while it is alive
func (e *Entity) Target() (ai.Target, bool) {
	if e.target == nil || !e.target.Alive() {
		return nil, false
	}
	return e.target, true
}

// SetTarget sets the entity to chase; nil clears it
func (e *Entity) SetTarget(target *Entity) {
	e.target = target
}

func (e *Entity) Reach() float64 {
	return e.AttackReach
}

// Alive reports whether the entity still has health. Entities created with no
// health at all are considered alive.
func (e *Entity) Alive() bool {
	return e.MaxHealth == 0 || e.Health > 0
}

// Impulse sets the movement wanted for the next tick. It is added to Motion
// in full on the ground and reduced while airborne.
func (e *Entity) Impulse(impulse mgl64.Vec3) {
	e.impulse = impulse
}

// WalkTowards sets a horizontal impulse of MoveSpeed towards point
func (e *Entity) WalkTowards(point mgl64.Vec3) {
	dir := point.Sub(e.Transform.Position)
	dir[1] = 0
	if dir.LenSqr() < 1e-12 {
		return
	}
	e.impulse = dir.Normalize().Mul(e.MoveSpeed)
}

func (e *Entity) LookAt(point mgl64.Vec3) {
	e.Transform.LookAt(point)
}

// Attack strikes target with MeleeDamage and knocks it back, at most once
// every AttackCooldown ticks
func (e *Entity) Attack(target ai.Target) {
	if e.cooldown > 0 {
		return
	}
	e.cooldown = e.AttackCooldown

	victim, ok := target.(*Entity)
	if !ok {
		return
	}
	victim.Damage(e.MeleeDamage)

	dir := victim.Position().Sub(e.Position())
	dir[1] = 0
	if dir.LenSqr() > 1e-12 {
		victim.ApplyKnockback(dir.Normalize(), e.Knockback)
	}
}

// Damage removes health, never below zero
func (e *Entity) Damage(amount int) {
	e.Health = max(0, e.Health-amount)
}

// ApplyKnockback adds dir*force to the motion
func (e *Entity) ApplyKnockback(dir mgl64.Vec3, force float64) {
	e.Motion = e.Motion.Add(dir.Mul(force))
}

// think runs the behaviours for one tick
func (e *Entity) think() {
	if e.cooldown > 0 {
		e.cooldown--
	}
	if len(e.Behaviours) > 0 {
		ai.Run(e, e.Behaviours...)
	}
}

// applyForces adds gravity and the pending impulse to the motion
func (e *Entity) applyForces(gravity, airControl float64) {
	e.Motion[1] -= gravity * e.GravityScale

	scale := 1.0
	if !e.OnGround {
		scale = airControl
	}
	e.Motion = e.Motion.Add(e.impulse.Mul(scale))
	e.impulse = mgl64.Vec3{}
}

// update commits the resolved displacement and decays the motion
func (e *Entity) update(airFriction, groundFriction mgl64.Vec3) {
	if e.move.LenSqr() > 0 {
		e.Transform.Position = e.Transform.Position.Add(e.move)
	}
	e.move = mgl64.Vec3{}

	for i := range 3 {
		e.Motion[i] *= airFriction[i]
		if e.OnGround {
			e.Motion[i] *= groundFriction[i]
		}
	}
}

func (e *Entity) isMoving() bool {
	return e.BodyType == BodyTypeDynamic
}

func entityBoxes(e *Entity) []actor.AABB {
	return []actor.AABB{e.AABB()}
}
