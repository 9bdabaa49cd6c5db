// Package arena implements the object store behind the runtime.
//
// Objects live in a slot table with free-list reuse. Every slot carries
// a generation number that is bumped when the slot is recycled, so a
// Ref (slot plus generation) identifies an object uniquely across the
// arena's whole lifetime.
//
// # Reference Counting
//
// Each object has an atomic strong count, set to one at allocation:
//
//	a := arena.New()
//	ref := a.Allocate(payload) // strong count 1
//	a.Retain(ref)              // 2
//	a.Release(ref)             // 1
//	a.Release(ref)             // 0: payload finalized, slot recycled
//
// Destruction happens exactly once, on the one-to-zero transition. The
// order is fixed: the weak block pointing at the slot is zeroed before
// the slot returns to the free list, then the payload's Finalizer runs.
// A future allocation reusing the slot gets a new generation, so stale
// refs cannot alias it.
//
// # Weak Blocks
//
// Weak references go through a separate indirection cell created
// lazily on first request:
//
//	block, _ := a.Weak(ref)
//	if strong, ok := block.Resolve(); ok {
//	    // strong is a freshly retained ref; release it when done
//	}
//
// Resolve is the only way to materialize a usable reference from a
// weak block. After the target's strong count reaches zero it reports
// absence, deterministically, never a stale pointer.
//
// # Modes
//
// The Checked mode (default) validates the remembered generation on
// retain, release, and unowned access, and surfaces stale references
// as UseAfterFree errors. The Unchecked mode skips the validation and
// performs the raw operation; dereferencing a dangling reference then
// observes whatever the slot currently holds. The mode is fixed at
// construction:
//
//	a := arena.New(arena.WithMode(arena.Unchecked))
//
// # Concurrency
//
// All operations are safe for concurrent use. Retain, release, and
// resolve operate on atomic counters under the table's read lock; slot
// assignment and destruction serialize on the write lock. No operation
// blocks or suspends.
package arena
