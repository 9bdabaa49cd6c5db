package handle

import (
	"github.com/wippyai/rc-runtime/arena"
	"github.com/wippyai/rc-runtime/errors"
)

// Strong is an owning reference: while at least one Strong handle
// exists for an object, the object is alive. Handles are plain values
// and may be copied, but each Clone must be balanced by exactly one
// Release.
type Strong[T any] struct {
	a   *arena.Arena
	ref arena.Ref
}

// Allocate stores value in the arena with a strong count of one and
// returns the owning handle.
func Allocate[T any](a *arena.Arena, value T) Strong[T] {
	return Strong[T]{a: a, ref: a.Allocate(value)}
}

// Clone returns a new owning handle to the same object, incrementing
// the strong count. Cloning a handle whose object is gone is a counting
// error: the invariant that a Strong handle keeps its object alive has
// already been broken, so Clone panics rather than propagate corruption.
func (s Strong[T]) Clone() Strong[T] {
	if err := s.a.Retain(s.ref); err != nil {
		panic(err)
	}
	return s
}

// Release gives up this handle's ownership. When the last owner
// releases, the object is destroyed. Releasing a handle twice is a
// counting error and panics in the checked configuration.
func (s Strong[T]) Release() {
	if err := s.a.Release(s.ref); err != nil {
		panic(err)
	}
}

// Value returns the payload. The handle's existence guarantees the
// object is alive, so there is no error path; a payload of the wrong
// dynamic type panics, which can only happen if refs from differently
// typed handles were mixed by hand.
func (s Strong[T]) Value() T {
	v, ok := s.a.Value(s.ref)
	if !ok {
		panic(errors.UseAfterFree(errors.PhaseAccess, uint32(s.ref.Slot), s.ref.Gen, 0))
	}
	return v.(T)
}

// Ref returns the untyped arena reference, for diagnostics and for
// building strong-edge graphs.
func (s Strong[T]) Ref() arena.Ref {
	return s.ref
}

// Same reports whether both handles refer to the same object.
// Equality is object identity, not payload equality.
func (s Strong[T]) Same(other Strong[T]) bool {
	return s.a == other.a && s.ref == other.ref
}

// StrongCount returns the object's current strong count. Diagnostic
// only: the value may be stale by the time the caller looks at it.
func (s Strong[T]) StrongCount() int64 {
	return s.a.StrongCount(s.ref)
}

// Weak derives a non-owning, auto-zeroing handle. The weak count goes
// up; the strong count does not.
func (s Strong[T]) Weak() Weak[T] {
	block, err := s.a.Weak(s.ref)
	if err != nil {
		panic(err)
	}
	block.Retain()
	return Weak[T]{a: s.a, block: block}
}

// Unowned derives a non-owning, non-zeroing handle. Neither count is
// touched; the caller asserts the object outlives the handle.
func (s Strong[T]) Unowned() Unowned[T] {
	return Unowned[T]{a: s.a, ref: s.ref}
}

// FromRef rebuilds a typed strong handle from an untyped ref, retaining
// it. Used when refs travel through untyped surfaces (cycle reports,
// observer events). Fails with UseAfterFree if the object is gone.
func FromRef[T any](a *arena.Arena, ref arena.Ref) (Strong[T], error) {
	if err := a.Retain(ref); err != nil {
		return Strong[T]{}, err
	}
	return Strong[T]{a: a, ref: ref}, nil
}
