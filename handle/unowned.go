package handle

import (
	"github.com/wippyai/rc-runtime/arena"
	"github.com/wippyai/rc-runtime/errors"
)

// Unowned is a non-owning, non-zeroing reference. It touches neither
// the strong nor the weak count; the caller asserts that program logic
// keeps the target alive for the handle's whole lifetime.
//
// What happens when that assertion is wrong depends on the arena mode:
//
//	Checked:   Get returns a UseAfterFree error carrying the slot and
//	           both generation numbers. Recoverable, never silent.
//	Unchecked: Get reads the slot raw. A dangling access observes
//	           whatever the slot currently holds: a zero value, or the
//	           payload of an unrelated later allocation. This is the
//	           documented hazard, by analogy with a release build.
type Unowned[T any] struct {
	a   *arena.Arena
	ref arena.Ref
}

// Get dereferences the handle. See the type comment for the failure
// behavior in each mode.
func (u Unowned[T]) Get() (T, error) {
	var zero T
	v, err := u.a.Access(u.ref)
	if err != nil {
		return zero, err
	}
	if v == nil {
		// Unchecked mode handed back an empty slot.
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.TypeMismatch(errors.PhaseAccess, uint32(u.ref.Slot), typeName[T](), typeNameOf(v))
	}
	return t, nil
}

// MustGet dereferences the handle and panics on failure. For call sites
// where liveness is guaranteed by construction.
func (u Unowned[T]) MustGet() T {
	t, err := u.Get()
	if err != nil {
		panic(err)
	}
	return t
}

// Ref returns the untyped arena reference.
func (u Unowned[T]) Ref() arena.Ref {
	return u.ref
}
