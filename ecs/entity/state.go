package entity

import (
	"fmt"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

// NewLoadState creates the entity holding the scene's load phase, starting in
// Loading.
func NewLoadState(w *ecs.World) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("load state: world is nil")
	}
	if _, ok := ecs.First(w, component.LoadStateComponent.Kind()); ok {
		return 0, fmt.Errorf("load state: already exists")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LoadStateComponent.Kind(), &component.LoadState{Current: component.LoadPhaseLoading}); err != nil {
		return 0, fmt.Errorf("load state: add component: %w", err)
	}
	return e, nil
}

// NewAssetPack stores the registry and pack on their own entity.
func NewAssetPack(w *ecs.World, r *asset.Registry, pack *asset.Pack, waitFor component.WaitFor) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("asset pack: world is nil")
	}
	if r == nil || pack == nil {
		return 0, fmt.Errorf("asset pack: registry and pack are required")
	}
	if _, ok := ecs.First(w, component.AssetPackComponent.Kind()); ok {
		return 0, fmt.Errorf("asset pack: already exists")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AssetPackComponent.Kind(), &component.AssetPack{
		Registry: r,
		Pack:     pack,
		WaitFor:  waitFor,
	}); err != nil {
		return 0, fmt.Errorf("asset pack: add component: %w", err)
	}
	return e, nil
}

func NewInput(w *ecs.World) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("input: world is nil")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("input: add component: %w", err)
	}
	return e, nil
}
