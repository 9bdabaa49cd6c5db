package handle

import (
	"github.com/wippyai/rc-runtime/arena"
)

// Weak is a non-owning reference through the arena's weak block
// indirection. It never keeps its target alive and never dangles:
// after the target is destroyed, Resolve reports absence.
type Weak[T any] struct {
	a     *arena.Arena
	block *arena.WeakBlock
}

// Resolve materializes an owning handle if the target is still alive.
// This is the only way to reach the payload from a weak handle; absence
// is a normal outcome, not an error. The returned Strong handle has
// retained the object and must be released after use.
func (w Weak[T]) Resolve() (Strong[T], bool) {
	ref, ok := w.block.Resolve()
	if !ok {
		return Strong[T]{}, false
	}
	return Strong[T]{a: w.a, ref: ref}, true
}

// Clone returns another weak handle sharing the same block, bumping the
// weak count.
func (w Weak[T]) Clone() Weak[T] {
	w.block.Retain()
	return w
}

// Release drops this weak handle. When the target is gone and the last
// weak handle is released, the block's storage becomes unreachable.
func (w Weak[T]) Release() {
	w.block.Release()
}

// Alive reports whether the target has not been destroyed. A true
// result is advisory under concurrency; use Resolve to act on it.
func (w Weak[T]) Alive() bool {
	return w.block.Alive()
}

// WeakCount returns the number of weak handles sharing the block.
func (w Weak[T]) WeakCount() int64 {
	return w.block.WeakCount()
}
