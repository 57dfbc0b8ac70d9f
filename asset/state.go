package asset

// LoadState is the lifecycle of one asset slot:
// Unrequested -> Loading -> Ready | Failed. Ready and Failed are terminal.
type LoadState int

const (
	Unrequested LoadState = iota
	Loading
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Unrequested:
		return "unrequested"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s LoadState) Terminal() bool {
	return s == Ready || s == Failed
}

// EventKind distinguishes completion notifications.
type EventKind int

const (
	EventLoaded EventKind = iota + 1
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event reports that an asset slot reached a terminal state. Registry.Update
// returns each event exactly once, on the tick the completion is observed.
type Event struct {
	Kind EventKind
	ID   ID
	Name string
	Path string
	Err  error
}
