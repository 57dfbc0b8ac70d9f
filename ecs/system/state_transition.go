package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

// StateTransitionSystem applies the load state's pending transition at the
// start of a tick and runs the systems registered for the entered phase.
type StateTransitionSystem struct {
	log     *zap.Logger
	onEnter map[component.LoadPhase][]ecs.System
}

func NewStateTransitionSystem(log *zap.Logger) *StateTransitionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &StateTransitionSystem{log: log, onEnter: make(map[component.LoadPhase][]ecs.System)}
}

// OnEnter registers a system to run once when phase is entered.
func (s *StateTransitionSystem) OnEnter(phase component.LoadPhase, sys ecs.System) {
	if s == nil || sys == nil {
		return
	}
	s.onEnter[phase] = append(s.onEnter[phase], sys)
}

func (s *StateTransitionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	state, ok := ecs.Singleton(w, component.LoadStateComponent.Kind())
	if !ok {
		return
	}
	from := state.Current
	entered, ok := state.Apply(w.Tick())
	if !ok {
		return
	}

	s.log.Info("load state changed",
		zap.Stringer("from", from),
		zap.Stringer("to", entered),
		zap.Uint64("requested_at", state.RequestedAt()),
		zap.Uint64("tick", w.Tick()))
	for _, sys := range s.onEnter[entered] {
		sys.Update(w)
	}
}
