package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

// LoadStateSystem watches this tick's asset events and requests the end of
// loading. With WaitForPrimary it waits for the primary asset and its
// dependencies; with WaitForCollection for every pack asset. The request is
// issued at most once.
type LoadStateSystem struct {
	log       *zap.Logger
	requested bool
}

func NewLoadStateSystem(log *zap.Logger) *LoadStateSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoadStateSystem{log: log}
}

func (s *LoadStateSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.requested {
		return
	}
	state, ok := ecs.Singleton(w, component.LoadStateComponent.Kind())
	if !ok || state.Current != component.LoadPhaseLoading {
		return
	}
	if _, pending := state.Pending(); pending {
		return
	}
	pack, ok := assetPack(w)
	if !ok {
		return
	}

	// Readiness only changes when a completion was observed this tick.
	events := ecs.Read[asset.Event](w.Events())
	if len(events) == 0 {
		return
	}

	var result asset.LoadState
	var culprit asset.AnyHandle
	name, primary := pack.Pack.Primary()
	switch pack.WaitFor {
	case component.WaitForCollection:
		result = pack.Pack.CollectionState(pack.Registry)
		if result == asset.Failed {
			culprit = firstFailed(pack)
		}
	default:
		result = pack.Registry.RecursiveState(primary)
		culprit = primary
	}

	switch result {
	case asset.Ready:
		if state.Request(component.LoadPhaseDone, w.Tick()) {
			s.requested = true
			s.log.Info("assets ready",
				zap.String("primary", name),
				zap.Stringer("wait_for", pack.WaitFor),
				zap.Uint64("tick", w.Tick()))
		}
	case asset.Failed:
		if state.Request(component.LoadPhaseFailed, w.Tick()) {
			s.requested = true
			s.log.Error("scene failed to load",
				zap.String("primary", name),
				zap.Stringer("wait_for", pack.WaitFor),
				zap.String("path", pack.Registry.Path(culprit)),
				zap.Error(failureCause(pack.Registry, culprit)))
		}
	}
}

func firstFailed(pack *component.AssetPack) asset.AnyHandle {
	for _, e := range pack.Pack.Entries() {
		if pack.Registry.RecursiveState(e.Handle) == asset.Failed {
			return e.Handle
		}
	}
	return nil
}

// failureCause returns the error of h or of the first failed dependency.
func failureCause(r *asset.Registry, h asset.AnyHandle) error {
	if h == nil {
		return nil
	}
	if err := r.Err(h); err != nil {
		return err
	}
	for _, dep := range r.Dependencies(h) {
		if err := failureCause(r, dep); err != nil {
			return err
		}
	}
	return nil
}
