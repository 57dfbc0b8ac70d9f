package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/prefabs"
)

// NewPackage spawns one dynamic crate: the package scene, a box collider and
// a Package tag.
func NewPackage(w *ecs.World, spec *prefabs.PackageSpec, h asset.Handle[*asset.Gltf], g *asset.Gltf, serial int) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("package: world is nil")
	}
	if spec == nil {
		return 0, fmt.Errorf("package: spec is nil")
	}
	if g == nil {
		return 0, fmt.Errorf("package: asset is nil")
	}

	scene := g.DefaultScene
	if spec.Scene != "" {
		scene = g.MustNamedScene(spec.Scene)
	}

	e := ecs.CreateEntity(w)
	if err := addBody(w, e, spec.Transform, spec.Collider, spec.Friction, component.RigidBody{
		Kind: component.RigidBodyDynamic,
		Mass: spec.Mass,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("package: %w", err)
	}
	if err := ecs.Add(w, e, component.PackageComponent.Kind(), &component.Package{Serial: serial}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("package: add tag: %w", err)
	}
	if scene != nil {
		if _, err := AttachScene(w, e, h, scene); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("package: %w", err)
		}
	}
	return e, nil
}

func transformFromSpec(spec prefabs.TransformSpec) component.Transform {
	t := component.NewTransform(mgl32.Vec3{float32(spec.X), float32(spec.Y), float32(spec.Z)})
	if spec.Scale > 0 {
		s := float32(spec.Scale)
		t.Scale = mgl32.Vec3{s, s, s}
	}
	return t
}

func addBody(w *ecs.World, e ecs.Entity, ts prefabs.TransformSpec, cs prefabs.ColliderSpec, friction float64, body component.RigidBody) error {
	transform := transformFromSpec(ts)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &transform); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	width, height, depth := cs.Size()
	if width <= 0 || height <= 0 || depth <= 0 {
		return fmt.Errorf("collider size must be positive, got %vx%vx%v", width, height, depth)
	}
	collider := component.Cuboid(float32(width/2), float32(height/2), float32(depth/2))
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &collider); err != nil {
		return fmt.Errorf("add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.FrictionComponent.Kind(), &component.Friction{Coefficient: friction}); err != nil {
		return fmt.Errorf("add friction: %w", err)
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent.Kind(), &body); err != nil {
		return fmt.Errorf("add rigid body: %w", err)
	}
	return nil
}
