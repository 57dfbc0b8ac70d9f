package entity

import (
	"fmt"

	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/prefabs"
)

func NewGround(w *ecs.World, spec *prefabs.GroundSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("ground: world is nil")
	}
	if spec == nil {
		return 0, fmt.Errorf("ground: spec is nil")
	}

	e := ecs.CreateEntity(w)
	if err := addBody(w, e, spec.Transform, spec.Collider, spec.Friction, component.RigidBody{Kind: component.RigidBodyFixed}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("ground: %w", err)
	}
	if err := ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("ground: add tag: %w", err)
	}
	return e, nil
}
