package system

import (
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

// InLoadPhase reports whether the scene's load state is currently phase.
// Systems gated on a phase check this at the top of Update.
func InLoadPhase(w *ecs.World, phase component.LoadPhase) bool {
	state, ok := ecs.Singleton(w, component.LoadStateComponent.Kind())
	return ok && state.Current == phase
}

// CurrentLoadPhase returns the scene's load phase, Loading when no state
// entity exists yet.
func CurrentLoadPhase(w *ecs.World) component.LoadPhase {
	state, ok := ecs.Singleton(w, component.LoadStateComponent.Kind())
	if !ok {
		return component.LoadPhaseLoading
	}
	return state.Current
}

func assetPack(w *ecs.World) (*component.AssetPack, bool) {
	pack, ok := ecs.Singleton(w, component.AssetPackComponent.Kind())
	if !ok || pack.Registry == nil || pack.Pack == nil {
		return nil, false
	}
	return pack, true
}
