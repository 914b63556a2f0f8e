// Package arena provides the fixed-capacity, generation-stamped slot
// tables used for every ID-bearing resource on the audio side (sounds,
// instances, parameters, sequences, metronomes). No slot table ever
// grows or allocates after construction.
package arena

// ID is an opaque (index, generation) handle. Equality is pair-equality.
// A dangling ID (stale generation) resolves to absent without panicking.
type ID struct {
	Index      uint32
	Generation uint32
}

type slot[T any] struct {
	generation uint32
	occupied   bool
	value      T
}

// Arena is a fixed-capacity table of slots, each stamped with a
// generation that increments every time the slot is reused. It never
// allocates after New.
type Arena[T any] struct {
	slots []slot[T]
}

// New constructs an Arena with room for exactly capacity items.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{slots: make([]slot[T], capacity)}
}

// Len returns the configured capacity.
func (a *Arena[T]) Len() int { return len(a.slots) }

// Count returns the number of occupied slots.
func (a *Arena[T]) Count() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].occupied {
			n++
		}
	}
	return n
}

// Allocate finds a vacant slot, bumps its generation, stores value, and
// returns the new ID. ok is false when the arena is full.
func (a *Arena[T]) Allocate(value T) (id ID, ok bool) {
	for i := range a.slots {
		if !a.slots[i].occupied {
			a.slots[i].occupied = true
			a.slots[i].generation++
			a.slots[i].value = value
			return ID{Index: uint32(i), Generation: a.slots[i].generation}, true
		}
	}
	return ID{}, false
}

// Get returns the value stored at id, or ok=false if id is out of range,
// vacant, or stale (generation mismatch).
func (a *Arena[T]) Get(id ID) (value T, ok bool) {
	s, match := a.lookup(id)
	if !match {
		var zero T
		return zero, false
	}
	return s.value, true
}

// GetPtr returns a pointer to the live value at id for in-place mutation,
// or nil if id is stale/absent.
func (a *Arena[T]) GetPtr(id ID) *T {
	if int(id.Index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[id.Index]
	if !s.occupied || s.generation != id.Generation {
		return nil
	}
	return &s.value
}

// Insert stores value at the exact id the caller supplies (index and
// generation), rather than self-assigning the next free slot. This is
// how the audio side accepts resources whose id was already reserved by
// the controller's own mirrored arena (spec.md §7): the two arenas never
// race to pick an index because only one side — the controller — ever
// chooses one. Returns false if id.Index is out of range.
func (a *Arena[T]) Insert(id ID, value T) bool {
	if int(id.Index) >= len(a.slots) {
		return false
	}
	s := &a.slots[id.Index]
	s.occupied = true
	s.generation = id.Generation
	s.value = value
	return true
}

// Remove vacates the slot without changing its generation; the next
// Allocate into that slot bumps it, so a stale copy of id never matches
// again. Returns the removed value and true if id was live.
func (a *Arena[T]) Remove(id ID) (value T, ok bool) {
	s, match := a.lookupPtr(id)
	if !match {
		var zero T
		return zero, false
	}
	value = s.value
	var zero T
	s.value = zero
	s.occupied = false
	return value, true
}

func (a *Arena[T]) lookup(id ID) (slot[T], bool) {
	if int(id.Index) >= len(a.slots) {
		return slot[T]{}, false
	}
	s := a.slots[id.Index]
	if !s.occupied || s.generation != id.Generation {
		return slot[T]{}, false
	}
	return s, true
}

func (a *Arena[T]) lookupPtr(id ID) (*slot[T], bool) {
	if int(id.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[id.Index]
	if !s.occupied || s.generation != id.Generation {
		return nil, false
	}
	return s, true
}

// Each calls fn for every occupied slot's id and value. fn must not
// mutate the arena's occupancy (allocate/remove) while iterating.
func (a *Arena[T]) Each(fn func(id ID, value *T)) {
	for i := range a.slots {
		if a.slots[i].occupied {
			fn(ID{Index: uint32(i), Generation: a.slots[i].generation}, &a.slots[i].value)
		}
	}
}
