package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/ecs"
)

// CollisionLogSystem drains the tick's collision events and logs them.
type CollisionLogSystem struct {
	log  *zap.Logger
	seen int
}

func NewCollisionLogSystem(log *zap.Logger) *CollisionLogSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionLogSystem{log: log}
}

// Seen returns how many collision events were logged.
func (s *CollisionLogSystem) Seen() int {
	if s == nil {
		return 0
	}
	return s.seen
}

func (s *CollisionLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range ecs.DrainOf[ecs.CollisionEvent](w.Events()) {
		s.seen++
		s.log.Debug("collision",
			zap.Stringer("a", evt.A),
			zap.Stringer("b", evt.B),
			zap.Bool("began", evt.Began),
			zap.Uint64("tick", w.Tick()))
	}
}
