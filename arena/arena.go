package arena

import (
	"math"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	rcruntime "github.com/wippyai/rc-runtime"
	"github.com/wippyai/rc-runtime/errors"
)

type entry struct {
	value  any
	weak   *WeakBlock
	strong atomic.Int64
	gen    uint32
	live   bool
}

// Arena is the object store: a slot table with free-list reuse.
// Entries are held by pointer so their atomic counters stay stable
// while the table grows.
type Arena struct {
	entries []*entry
	free    []Slot
	mu      sync.RWMutex

	observers []Observer
	obsMu     sync.RWMutex

	allocated atomic.Int64
	destroyed atomic.Int64

	mode   Mode
	closed bool
}

// Option configures an Arena.
type Option func(*Arena)

// WithMode selects checked or unchecked treatment of stale references.
func WithMode(m Mode) Option {
	return func(a *Arena) { a.mode = m }
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(a *Arena) { a.observers = append(a.observers, o) }
}

// New creates an empty arena. The default mode is Checked.
func New(opts ...Option) *Arena {
	a := &Arena{
		entries: make([]*entry, 0, 64),
		free:    make([]Slot, 0, 16),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mode returns the arena's stale-reference mode.
func (a *Arena) Mode() Mode {
	return a.mode
}

// Allocate stores a value with a strong count of one and returns its ref.
// Allocation never fails except on resource exhaustion, which panics:
// there is no way to continue with a corrupt slot table.
func (a *Arena) Allocate(value any) Ref {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		panic(errors.Closed(errors.PhaseAllocate))
	}

	var (
		slot Slot
		e    *entry
	)
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
		e = a.entries[slot-1]
	} else {
		if len(a.entries) >= math.MaxUint32-1 {
			a.mu.Unlock()
			panic(errors.AllocationFailed("slot table exhausted", nil))
		}
		e = &entry{gen: 1}
		a.entries = append(a.entries, e)
		slot = Slot(len(a.entries))
	}
	e.value = value
	e.live = true
	e.strong.Store(1)
	ref := Ref{Slot: slot, Gen: e.gen}
	a.mu.Unlock()

	a.allocated.Add(1)
	Logger().Debug("object allocated",
		zap.Uint32("slot", uint32(ref.Slot)),
		zap.Uint32("gen", ref.Gen))
	a.notify(Event{Type: EventAllocated, Ref: ref, Value: value, Strong: 1})
	return ref
}

// Retain increments the strong count. In Checked mode a stale ref fails
// with a UseAfterFree error; in Unchecked mode the slot's counter is
// incremented without liveness validation, faithfully corrupting a
// recycled slot the way an unchecked runtime would.
func (a *Arena) Retain(ref Ref) error {
	a.mu.RLock()
	if ref.Slot == 0 || int(ref.Slot) > len(a.entries) {
		a.mu.RUnlock()
		return errors.InvalidRef(errors.PhaseRetain, uint32(ref.Slot))
	}
	e := a.entries[ref.Slot-1]
	if a.mode == Checked && (!e.live || e.gen != ref.Gen) {
		gen := e.gen
		a.mu.RUnlock()
		return errors.UseAfterFree(errors.PhaseRetain, uint32(ref.Slot), ref.Gen, gen)
	}
	n := e.strong.Add(1)
	a.mu.RUnlock()

	a.notify(Event{Type: EventRetained, Ref: ref, Strong: n})
	return nil
}

// Release decrements the strong count. On the one-to-zero transition
// the object is destroyed exactly once: the payload's Finalizer runs,
// the weak block target is zeroed, and only then is the slot recycled.
// A release that drives the count negative panics; counting errors
// corrupt invariants and must not be swallowed.
func (a *Arena) Release(ref Ref) error {
	a.mu.RLock()
	if ref.Slot == 0 || int(ref.Slot) > len(a.entries) {
		a.mu.RUnlock()
		return errors.InvalidRef(errors.PhaseRelease, uint32(ref.Slot))
	}
	e := a.entries[ref.Slot-1]
	if a.mode == Checked && (!e.live || e.gen != ref.Gen) {
		gen := e.gen
		a.mu.RUnlock()
		return errors.UseAfterFree(errors.PhaseRelease, uint32(ref.Slot), ref.Gen, gen)
	}
	n := e.strong.Add(-1)
	a.mu.RUnlock()

	if n < 0 {
		panic(errors.OverRelease(uint32(ref.Slot), ref.Gen, n))
	}

	a.notify(Event{Type: EventReleased, Ref: ref, Strong: n})
	if n == 0 {
		a.destroy(ref)
	}
	return nil
}

// destroy tears down an object whose strong count reached zero.
func (a *Arena) destroy(ref Ref) {
	a.mu.Lock()
	e, ok := a.lookup(ref)
	if !ok || e.strong.Load() != 0 {
		// Already destroyed, or an unchecked retain raced the teardown.
		a.mu.Unlock()
		return
	}

	value := e.value
	var zeroed bool
	if e.weak != nil {
		e.weak.zero()
		e.weak = nil
		zeroed = true
	}
	e.live = false
	e.value = nil
	e.gen++
	a.free = append(a.free, ref.Slot)
	a.mu.Unlock()

	if f, ok := value.(rcruntime.Finalizer); ok {
		f.Finalize()
	}

	a.destroyed.Add(1)
	Logger().Debug("object destroyed",
		zap.Uint32("slot", uint32(ref.Slot)),
		zap.Uint32("gen", ref.Gen),
		zap.Bool("weak_zeroed", zeroed))
	if zeroed {
		a.notify(Event{Type: EventWeakZeroed, Ref: ref})
	}
	a.notify(Event{Type: EventDestroyed, Ref: ref, Value: value})
}

// Weak returns the weak block for ref, creating it on first request and
// reusing it afterwards. The block does not affect the strong count.
func (a *Arena) Weak(ref Ref) (*WeakBlock, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.lookup(ref)
	if !ok {
		if ref.Slot == 0 || int(ref.Slot) > len(a.entries) {
			return nil, errors.InvalidRef(errors.PhaseWeak, uint32(ref.Slot))
		}
		return nil, errors.UseAfterFree(errors.PhaseWeak, uint32(ref.Slot), ref.Gen, a.entries[ref.Slot-1].gen)
	}
	if e.weak == nil {
		e.weak = &WeakBlock{arena: a, slot: ref.Slot, gen: ref.Gen}
	}
	return e.weak, nil
}

// Access returns the payload for ref. In Checked mode a stale ref
// produces a UseAfterFree error. In Unchecked mode the slot is read
// raw: a dangling access observes whatever the slot currently holds,
// which may be nil or a later allocation's payload.
func (a *Arena) Access(ref Ref) (any, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if ref.Slot == 0 || int(ref.Slot) > len(a.entries) {
		return nil, errors.InvalidRef(errors.PhaseAccess, uint32(ref.Slot))
	}
	e := a.entries[ref.Slot-1]
	if a.mode == Checked && (!e.live || e.gen != ref.Gen) {
		return nil, errors.UseAfterFree(errors.PhaseAccess, uint32(ref.Slot), ref.Gen, e.gen)
	}
	return e.value, nil
}

// Value returns the payload for a live ref.
func (a *Arena) Value(ref Ref) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	e, ok := a.lookup(ref)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Live reports whether ref names a live object.
func (a *Arena) Live(ref Ref) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.lookup(ref)
	return ok
}

// StrongCount returns the current strong count for ref, or zero if the
// object is gone. Diagnostic only: the value may be stale by the time
// the caller looks at it.
func (a *Arena) StrongCount(ref Ref) int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	e, ok := a.lookup(ref)
	if !ok {
		return 0
	}
	return e.strong.Load()
}

// Len returns the number of live objects.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	count := 0
	for _, e := range a.entries {
		if e.live {
			count++
		}
	}
	return count
}

// Each iterates over all live objects in slot order.
func (a *Arena) Each(fn func(Ref, any) bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for i, e := range a.entries {
		if e.live {
			if !fn(Ref{Slot: Slot(i + 1), Gen: e.gen}, e.value) {
				break
			}
		}
	}
}

// Stats returns counters describing arena activity so far.
func (a *Arena) Stats() Stats {
	return Stats{
		Allocated: a.allocated.Load(),
		Destroyed: a.destroyed.Load(),
		Live:      a.Len(),
	}
}

// Subscribe adds an observer for lifecycle events.
func (a *Arena) Subscribe(o Observer) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()
	a.observers = append(a.observers, o)
}

// Unsubscribe removes an observer.
func (a *Arena) Unsubscribe(o Observer) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()
	for i, obs := range a.observers {
		if obs == o {
			a.observers = append(a.observers[:i], a.observers[i+1:]...)
			return
		}
	}
}

// Close destroys all live objects regardless of their strong counts,
// zeroes every weak block, and rejects further allocation. Finalizers
// run for every live payload.
func (a *Arena) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true

	var values []any
	for _, e := range a.entries {
		if !e.live {
			continue
		}
		values = append(values, e.value)
		if e.weak != nil {
			e.weak.zero()
			e.weak = nil
		}
		e.live = false
		e.value = nil
		e.strong.Store(0)
		e.gen++
	}
	a.entries = nil
	a.free = nil
	a.mu.Unlock()

	for _, v := range values {
		if f, ok := v.(rcruntime.Finalizer); ok {
			f.Finalize()
		}
	}
	a.destroyed.Add(int64(len(values)))
	Logger().Debug("arena closed", zap.Int("finalized", len(values)))
	return nil
}

// lookup returns the entry for ref if it names a live object with a
// matching generation. The caller must hold at least a read lock.
func (a *Arena) lookup(ref Ref) (*entry, bool) {
	if ref.Slot == 0 || int(ref.Slot) > len(a.entries) {
		return nil, false
	}
	e := a.entries[ref.Slot-1]
	if !e.live || e.gen != ref.Gen {
		return nil, false
	}
	return e, true
}

func (a *Arena) notify(e Event) {
	a.obsMu.RLock()
	defer a.obsMu.RUnlock()
	for _, o := range a.observers {
		o.OnObjectEvent(e)
	}
}
