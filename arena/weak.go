package arena

import (
	"sync/atomic"

	"github.com/wippyai/rc-runtime/errors"
)

// WeakBlock is the indirection cell behind weak references. It lives
// independently of the target object: the target fields are zeroed when
// the object is destroyed, while the block itself stays valid for as
// long as weak handles reference it.
//
// The slot and gen fields are guarded by the arena lock. They are only
// written (zeroed) while the arena holds its write lock, so readers
// under the arena read lock always see a consistent target.
type WeakBlock struct {
	arena *Arena
	count atomic.Int64
	slot  Slot
	gen   uint32
}

// zero clears the target. Caller must hold the arena write lock.
func (b *WeakBlock) zero() {
	b.slot = 0
	b.gen = 0
}

// Retain records another weak handle sharing this block.
func (b *WeakBlock) Retain() {
	b.count.Add(1)
}

// Release drops one weak handle. Once the target is gone and the count
// reaches zero the arena no longer points at the block, so it becomes
// unreachable and its memory is reclaimed by the Go garbage collector.
func (b *WeakBlock) Release() {
	if n := b.count.Add(-1); n < 0 {
		panic(&errors.Error{
			Phase:  errors.PhaseRelease,
			Kind:   errors.KindOverRelease,
			Slot:   uint32(b.slot),
			Detail: "weak count dropped below zero",
		})
	}
}

// WeakCount returns the number of outstanding weak handles.
func (b *WeakBlock) WeakCount() int64 {
	return b.count.Load()
}

// Alive reports whether the target object has not been destroyed.
func (b *WeakBlock) Alive() bool {
	b.arena.mu.RLock()
	defer b.arena.mu.RUnlock()

	if b.slot == 0 {
		return false
	}
	_, ok := b.arena.lookup(Ref{Slot: b.slot, Gen: b.gen})
	return ok
}

// Resolve materializes a strong reference to the target if it is still
// alive. On success the target's strong count has been incremented and
// the returned ref must eventually be released. Absence is a normal
// outcome, never an error: once the strong count has reached zero,
// Resolve deterministically reports false.
func (b *WeakBlock) Resolve() (Ref, bool) {
	a := b.arena
	a.mu.RLock()

	if b.slot == 0 {
		a.mu.RUnlock()
		return Ref{}, false
	}
	ref := Ref{Slot: b.slot, Gen: b.gen}
	e, ok := a.lookup(ref)
	if !ok {
		a.mu.RUnlock()
		return Ref{}, false
	}

	// CAS loop so a count that already hit zero is never resurrected:
	// a concurrent release may drop the count between our load and the
	// increment, and the swap must fail in that case.
	for {
		c := e.strong.Load()
		if c == 0 {
			a.mu.RUnlock()
			return Ref{}, false
		}
		if e.strong.CompareAndSwap(c, c+1) {
			a.mu.RUnlock()
			a.notify(Event{Type: EventRetained, Ref: ref, Strong: c + 1})
			return ref, true
		}
	}
}
