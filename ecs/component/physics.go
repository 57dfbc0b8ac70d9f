package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

type RigidBodyKind int

const (
	RigidBodyDynamic RigidBodyKind = iota
	RigidBodyFixed
)

func (k RigidBodyKind) String() string {
	if k == RigidBodyFixed {
		return "fixed"
	}
	return "dynamic"
}

// RigidBody classifies an entity for the physics system. Body and Shape are
// filled in by the physics system once the entity enters the space.
type RigidBody struct {
	Kind RigidBodyKind
	Mass float64

	Body  *cp.Body
	Shape *cp.Shape
}

var RigidBodyComponent = NewComponent[RigidBody]()

// Collider is an axis-aligned box given by its half extents.
type Collider struct {
	HalfExtents mgl32.Vec3
}

// Cuboid returns a box collider with the given half extents.
func Cuboid(hx, hy, hz float32) Collider {
	return Collider{HalfExtents: mgl32.Vec3{hx, hy, hz}}
}

var ColliderComponent = NewComponent[Collider]()

type Friction struct {
	Coefficient float64
}

var FrictionComponent = NewComponent[Friction]()
