package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
)

// AssetEventSystem drains the registry's completions once per tick and
// republishes them as asset.Event on the world's event queue.
type AssetEventSystem struct {
	log *zap.Logger
}

func NewAssetEventSystem(log *zap.Logger) *AssetEventSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssetEventSystem{log: log}
}

func (s *AssetEventSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pack, ok := assetPack(w)
	if !ok {
		return
	}

	for _, evt := range pack.Registry.Update() {
		switch evt.Kind {
		case asset.EventLoaded:
			s.log.Debug("asset loaded",
				zap.Stringer("id", evt.ID),
				zap.String("name", evt.Name),
				zap.String("path", evt.Path),
				zap.Uint64("tick", w.Tick()))
		case asset.EventFailed:
			s.log.Error("asset failed to load",
				zap.Stringer("id", evt.ID),
				zap.String("name", evt.Name),
				zap.String("path", evt.Path),
				zap.Error(evt.Err))
		}
		ecs.Emit(w.Events(), evt)
	}
}
