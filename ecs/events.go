package ecs

// CollisionEvent is emitted by the physics system when two bodies start or
// stop touching.
type CollisionEvent struct {
	A     Entity
	B     Entity
	Began bool
}

// EventQueue is a FIFO of events produced during the current tick. The
// scheduler flushes it at the end of every tick.
type EventQueue struct {
	items []any
}

// Push adds an event.
func (q *EventQueue) Push(evt any) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []any {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// Emit queues a typed event.
func Emit[T any](q *EventQueue, evt T) {
	q.Push(evt)
}

// Read returns the queued events of type T without consuming them.
func Read[T any](q *EventQueue) []T {
	if q == nil {
		return nil
	}
	var out []T
	for _, item := range q.items {
		if evt, ok := item.(T); ok {
			out = append(out, evt)
		}
	}
	return out
}

// DrainOf removes and returns the queued events of type T, leaving others.
func DrainOf[T any](q *EventQueue) []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []T
	kept := q.items[:0]
	for _, item := range q.items {
		if evt, ok := item.(T); ok {
			out = append(out, evt)
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
	return out
}
