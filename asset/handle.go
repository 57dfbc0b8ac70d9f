package asset

import "strconv"

// ID identifies one asset slot in a Registry. The zero ID is never issued.
type ID uint32

func (id ID) String() string {
	return "asset#" + strconv.FormatUint(uint64(id), 10)
}

// AnyHandle is satisfied by every Handle[T]; registry queries that do not
// need the payload type accept it.
type AnyHandle interface {
	ID() ID
}

// Handle is a typed reference to an asset slot. It carries no data: the only
// way to reach the payload is Get, which refuses until the slot is Ready.
// Handles are plain values; copies (on the pack, on spawned entities) all
// refer to the same slot, which lives as long as its Registry.
type Handle[T any] struct {
	id ID
}

func (h Handle[T]) ID() ID {
	return h.id
}

// Valid reports whether the handle was issued by a registry.
func (h Handle[T]) Valid() bool {
	return h.id != 0
}

func (h Handle[T]) String() string {
	return h.id.String()
}

// Typed reinterprets an untyped id as a Handle[T]. Get still checks the
// payload type, so a wrong T only ever resolves to "not available".
func Typed[T any](id ID) Handle[T] {
	return Handle[T]{id: id}
}
