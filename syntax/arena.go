package syntax

// Arena is the opaque per-node allocator of C2. The parser never reasons
// about node lifetime itself; it asks the arena for a new node and, on a
// path it deliberately abandons (a dropped function body, a failed
// speculative branch that chose to free rather than leak — spec §3
// "Lifecycle"), hints that the node can be released.
//
// The zero value is ready to use and simply delegates to ordinary heap
// allocation, matching spec §4.2's "If no arena is configured, ordinary
// heap allocation is used."
type Arena struct {
	allocated int
	freed     int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Allocate returns a new *T holding a copy of init, counted against the arena. Go's
// garbage collector is the actual backing allocator; Arena only tracks
// counts so callers (and tests) can observe allocation/free pressure the
// way the spec's mark/reset contract describes.
func Allocate[T any](a *Arena, init T) *T {
	if a != nil {
		a.allocated++
	}
	v := new(T)
	*v = init
	return v
}

// Deallocate is a hint that n, previously returned by Allocate, is no
// longer needed (spec §4.2). It is advisory only — Go nodes are
// collected once unreachable — but the arena still records the hint so a
// caller auditing how much of a parse got discarded (e.g. dropped function
// bodies under the memory-minimization policy of §4.7) can inspect it via
// Freed.
func (a *Arena) Deallocate() {
	if a != nil {
		a.freed++
	}
}

// Mark captures the arena's current allocation count, for pairing with
// Reset around a speculative parse that the caller may abandon.
func (a *Arena) Mark() int {
	if a == nil {
		return 0
	}
	return a.allocated
}

// Reset logically discards every allocation made since mark, by recording
// them as freed. It does not (and need not) invalidate the Go pointers
// already handed out — per spec §3 this is only observable to a caller
// that never retains those pointers past the rewind, which is exactly how
// every speculative parse in this package behaves.
func (a *Arena) Reset(mark int) {
	if a == nil {
		return
	}
	if a.allocated > mark {
		a.freed += a.allocated - mark
		a.allocated = mark
	}
}

// Allocated returns the number of nodes ever allocated through this arena.
func (a *Arena) Allocated() int {
	if a == nil {
		return 0
	}
	return a.allocated
}

// Freed returns the number of allocations hinted as released, either via
// Deallocate or a Reset back past a mark.
func (a *Arena) Freed() int {
	if a == nil {
		return 0
	}
	return a.freed
}
