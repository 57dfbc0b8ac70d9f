package ecs

import "sort"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	if f != nil {
		f(w)
	}
}

// Phase orders systems within a tick. Systems in the same phase run in the
// order they were added.
type Phase int

const (
	PhaseStateTransition Phase = iota // apply pending state changes, run OnEnter systems
	PhaseInput                        // poll devices
	PhasePreUpdate                    // drain asset completions, advance load state
	PhaseUpdate                       // game logic
	PhasePostUpdate                   // physics step
	PhaseLast                         // observers of this tick's events
)

var phaseNames = [...]string{"state_transition", "input", "pre_update", "update", "post_update", "last"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

type scheduled struct {
	phase  Phase
	order  int
	system System
}

// Scheduler runs systems in phase order once per tick.
type Scheduler struct {
	systems []scheduled
	sorted  bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{systems: make([]scheduled, 0, 16)}
}

// Add registers a system in the given phase.
func (s *Scheduler) Add(phase Phase, system System) {
	if s == nil || system == nil {
		return
	}
	s.systems = append(s.systems, scheduled{phase: phase, order: len(s.systems), system: system})
	s.sorted = false
}

// Update runs one tick: every system in phase order, then the world's event
// queue is flushed so events never outlive the tick that produced them.
func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	s.ensureSorted()
	for _, sc := range s.systems {
		sc.system.Update(w)
	}
	w.endTick()
}

// Systems returns the registered systems in execution order.
func (s *Scheduler) Systems() []System {
	if s == nil {
		return nil
	}
	s.ensureSorted()
	out := make([]System, 0, len(s.systems))
	for _, sc := range s.systems {
		out = append(out, sc.system)
	}
	return out
}

func (s *Scheduler) ensureSorted() {
	if s.sorted {
		return
	}
	sort.SliceStable(s.systems, func(i, j int) bool {
		if s.systems[i].phase != s.systems[j].phase {
			return s.systems[i].phase < s.systems[j].phase
		}
		return s.systems[i].order < s.systems[j].order
	})
	s.sorted = true
}
