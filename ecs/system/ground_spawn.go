package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/entity"
	"github.com/milk9111/warehouse/prefabs"
)

// GroundSpawnSystem spawns the fixed ground slab. It is registered to run
// once on entering Done.
type GroundSpawnSystem struct {
	log  *zap.Logger
	spec *prefabs.GroundSpec
}

func NewGroundSpawnSystem(spec *prefabs.GroundSpec, log *zap.Logger) *GroundSpawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &GroundSpawnSystem{log: log, spec: spec}
}

func (s *GroundSpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.spec == nil || !s.spec.Enabled {
		return
	}
	e, err := entity.NewGround(w, s.spec)
	if err != nil {
		s.log.Error("spawn ground", zap.Error(err))
		return
	}
	s.log.Debug("ground spawned", zap.Stringer("entity", e))
}
