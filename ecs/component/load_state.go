package component

import "fmt"

// LoadPhase is the scene-wide load state. Loading is the initial phase; Done
// and Failed are terminal.
type LoadPhase int

const (
	LoadPhaseLoading LoadPhase = iota
	LoadPhaseDone
	LoadPhaseFailed
)

func (p LoadPhase) String() string {
	switch p {
	case LoadPhaseLoading:
		return "loading"
	case LoadPhaseDone:
		return "done"
	case LoadPhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadPhase(%d)", int(p))
	}
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to LoadPhase) bool {
	return from == LoadPhaseLoading && (to == LoadPhaseDone || to == LoadPhaseFailed)
}

// LoadState holds the current phase and at most one requested transition.
// Requests made during tick N are applied at the start of tick N+1.
type LoadState struct {
	Current LoadPhase

	next        LoadPhase
	pending     bool
	requestedAt uint64
	enteredAt   uint64
}

// Request records a transition to be applied on the next tick. It refuses
// illegal transitions and a second request while one is pending.
func (s *LoadState) Request(to LoadPhase, tick uint64) bool {
	if s == nil || s.pending || !CanTransition(s.Current, to) {
		return false
	}
	s.next = to
	s.pending = true
	s.requestedAt = tick
	return true
}

// Pending returns the requested phase, if any.
func (s *LoadState) Pending() (LoadPhase, bool) {
	if s == nil || !s.pending {
		return 0, false
	}
	return s.next, true
}

// Apply moves to the requested phase and reports the phase entered.
func (s *LoadState) Apply(tick uint64) (LoadPhase, bool) {
	if s == nil || !s.pending {
		return 0, false
	}
	s.pending = false
	if !CanTransition(s.Current, s.next) {
		return 0, false
	}
	s.Current = s.next
	s.enteredAt = tick
	return s.Current, true
}

// RequestedAt returns the tick of the last accepted request.
func (s *LoadState) RequestedAt() uint64 {
	return s.requestedAt
}

// EnteredAt returns the tick the current phase was entered, 0 for the
// initial phase.
func (s *LoadState) EnteredAt() uint64 {
	return s.enteredAt
}

var LoadStateComponent = NewComponent[LoadState]()
