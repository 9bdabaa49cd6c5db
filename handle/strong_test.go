package handle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/rc-runtime/arena"
	rcerrors "github.com/wippyai/rc-runtime/errors"
)

type node struct {
	name      string
	finalized bool
}

func (n *node) Finalize() { n.finalized = true }

func TestStrong_CloneRelease(t *testing.T) {
	a := arena.New()

	// allocate A (count=1); B = A.Clone() (count=2);
	// release B (count=1); release A (count=0, destroyed).
	A := Allocate(a, &node{name: "A"})
	assert.EqualValues(t, 1, A.StrongCount())

	B := A.Clone()
	assert.EqualValues(t, 2, A.StrongCount())
	assert.True(t, A.Same(B))

	B.Release()
	assert.EqualValues(t, 1, A.StrongCount())
	assert.True(t, a.Live(A.Ref()))

	A.Release()
	assert.False(t, a.Live(A.Ref()))
}

func TestStrong_CloneIsCountNeutral(t *testing.T) {
	a := arena.New()
	s := Allocate(a, "payload")

	before := s.StrongCount()
	c := s.Clone()
	c.Release()
	assert.Equal(t, before, s.StrongCount(), "clone+release must leave the count unchanged net")
}

func TestStrong_Value(t *testing.T) {
	a := arena.New()
	n := &node{name: "payload"}
	s := Allocate(a, n)
	defer s.Release()

	assert.Same(t, n, s.Value())
}

func TestStrong_FinalizerOnLastRelease(t *testing.T) {
	a := arena.New()
	n := &node{name: "doomed"}

	s := Allocate(a, n)
	c := s.Clone()

	s.Release()
	assert.False(t, n.finalized, "finalizer must not run while an owner remains")

	c.Release()
	assert.True(t, n.finalized)
}

func TestStrong_Same(t *testing.T) {
	a := arena.New()

	x := Allocate(a, "x")
	defer x.Release()
	y := Allocate(a, "x") // equal payload, different object
	defer y.Release()

	assert.True(t, x.Same(x.Clone()))
	x.Release() // balance the clone above
	assert.False(t, x.Same(y), "identity equality must not compare payloads")
}

func TestStrong_CloneAfterDestroyPanics(t *testing.T) {
	a := arena.New()
	s := Allocate(a, "x")
	s.Release()

	assert.PanicsWithError(t,
		rcerrors.UseAfterFree(rcerrors.PhaseRetain, uint32(s.Ref().Slot), s.Ref().Gen, s.Ref().Gen+1).Error(),
		func() { s.Clone() })
}

func TestStrong_DoubleReleasePanics(t *testing.T) {
	a := arena.New()
	s := Allocate(a, "x")
	s.Release()

	assert.Panics(t, func() { s.Release() })
}

func TestFromRef(t *testing.T) {
	a := arena.New()
	s := Allocate(a, "x")

	rebuilt, err := FromRef[string](a, s.Ref())
	require.NoError(t, err)
	assert.True(t, s.Same(rebuilt))
	assert.EqualValues(t, 2, s.StrongCount())
	rebuilt.Release()

	s.Release()
	_, err = FromRef[string](a, s.Ref())
	require.Error(t, err)
	assert.True(t, errors.Is(err, &rcerrors.Error{Phase: rcerrors.PhaseRetain, Kind: rcerrors.KindUseAfterFree}))
}
