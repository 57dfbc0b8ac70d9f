package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

const collisionTypeBody cp.CollisionType = 1

const (
	DefaultGravity = -9.81
	FixedStep      = 1.0 / 60.0
)

// PhysicsSystem simulates the X/Y slice of every entity with a Transform,
// Collider and RigidBody, and reports contacts as ecs.CollisionEvent.
type PhysicsSystem struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts []ecs.CollisionEvent
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
	fixed bool
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	ps := &PhysicsSystem{
		gravity:  gravity,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
	ps.space = newSpace(gravity)
	return ps
}

func newSpace(gravity float64) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Bodies returns how many entities are simulated.
func (ps *PhysicsSystem) Bodies() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if !InLoadPhase(w, component.LoadPhaseDone) {
		return
	}
	if ps.space == nil {
		ps.space = newSpace(ps.gravity)
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)

	ps.space.Step(FixedStep)

	for _, evt := range ps.contacts {
		ecs.Emit(w.Events(), evt)
	}
	ps.contacts = ps.contacts[:0]
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
			sys.recordContact(arb, true)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
			sys.recordContact(arb, false)
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) recordContact(arb *cp.Arbiter, began bool) {
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.shapes[shapeA]
	b, okB := ps.shapes[shapeB]
	if !okA || !okB {
		return
	}
	ps.contacts = append(ps.contacts, ecs.CollisionEvent{A: a, B: b, Began: began})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), component.RigidBodyComponent.Kind(),
		func(e ecs.Entity, transform *component.Transform, collider *component.Collider, rb *component.RigidBody) {
			if _, ok := ps.entities[e]; ok {
				return
			}
			friction := 0.0
			if f, ok := ecs.Get(w, e, component.FrictionComponent.Kind()); ok {
				friction = f.Coefficient
			}
			info := ps.createBodyInfo(*transform, *collider, *rb, friction)
			if info == nil {
				return
			}
			ps.entities[e] = info
			ps.shapes[info.shape] = e
			rb.Body = info.body
			rb.Shape = info.shape
		})
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, collider component.Collider, rb component.RigidBody, friction float64) *bodyInfo {
	width := float64(collider.HalfExtents.X()) * 2
	height := float64(collider.HalfExtents.Y()) * 2
	if width <= 0 || height <= 0 {
		return nil
	}
	centerX := float64(transform.Position.X())
	centerY := float64(transform.Position.Y())

	if rb.Kind == component.RigidBodyFixed {
		bb := cp.BB{L: centerX - width/2, B: centerY - height/2, R: centerX + width/2, T: centerY + height/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(friction)
		shape.SetCollisionType(collisionTypeBody)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, fixed: true}
	}

	mass := rb.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(cp.Vector{X: centerX, Y: centerY})
	body.SetAngle(zAngle(transform.Rotation))

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeBody)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.fixed {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.Position = mgl32.Vec3{float32(pos.X), float32(pos.Y), transform.Position.Z()}
		transform.Rotation = mgl32.QuatRotate(float32(info.body.Angle()), mgl32.Vec3{0, 0, 1})
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.RigidBodyComponent.Kind()) && ecs.Has(w, e, component.ColliderComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil && !info.fixed {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

// zAngle returns the rotation of q about the Z axis.
func zAngle(q mgl32.Quat) float64 {
	v := q.Rotate(mgl32.Vec3{1, 0, 0})
	return math.Atan2(float64(v.Y()), float64(v.X()))
}
