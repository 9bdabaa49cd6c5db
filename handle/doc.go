// Package handle provides typed references over the arena object store.
//
// Three reference flavors share one object:
//
//	Strong[T]  owning; its existence keeps the object alive
//	Weak[T]    non-owning; resolves to absence after destruction
//	Unowned[T] non-owning; no safety net unless the arena is Checked
//
// # Strong Handles
//
//	s := handle.Allocate(a, &Node{Name: "n"})
//	c := s.Clone()  // strong count 2
//	c.Release()     // back to 1
//	s.Release()     // 0: destroyed
//
// Clone and Release balance exactly. Counting errors (clone of a dead
// handle, double release) are invariant corruption and panic; they are
// never silently ignored.
//
// # Weak Handles
//
//	w := s.Weak()
//	defer w.Release()
//	if live, ok := w.Resolve(); ok {
//	    defer live.Release()
//	    use(live.Value())
//	}
//
// Resolve returns a freshly retained Strong handle, re-incrementing the
// strong count for the duration of use. It never hands back an
// unchecked pointer and never errors: absence after destruction is the
// expected outcome.
//
// # Unowned Handles
//
//	u := s.Unowned()
//	v, err := u.Get() // Checked arena: UseAfterFree error when dangling
//
// Unowned handles cost nothing and check nothing on their own. Whether
// a dangling Get is detected is the arena's mode decision; see the
// arena package.
package handle
