package main

import (
	"fmt"

	"github.com/wippyai/rc-runtime/arena"
	"github.com/wippyai/rc-runtime/cycle"
	"github.com/wippyai/rc-runtime/handle"
)

type scenarioSpec struct {
	run         func(mode arena.Mode) error
	name        string
	description string
}

var scenarios = []scenarioSpec{
	{runRetainRelease, "retain-release", "shared ownership: clone and release a strong handle"},
	{runWeakZeroing, "weak-zeroing", "weak handles resolve to absence after deallocation"},
	{runUnowned, "unowned", "unowned access after free, checked vs unchecked"},
	{runStrongCycle, "strong-cycle", "two objects strongly retaining each other leak"},
	{runWeakCycle, "weak-cycle", "the same cycle with a weak back edge is collected"},
}

func findScenario(name string) (scenarioSpec, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenarioSpec{}, false
}

// demoNode is the payload used by all scenarios. Strong edges own their
// targets: linking retains, and the finalizer releases every outgoing
// edge so destruction cascades through the graph.
type demoNode struct {
	a     *arena.Arena
	name  string
	edges []arena.Ref
}

func (n *demoNode) StrongRefs() []arena.Ref { return n.edges }

func (n *demoNode) Finalize() {
	edges := n.edges
	n.edges = nil
	for _, e := range edges {
		n.a.Release(e)
	}
}

// tracer prints lifecycle events with friendly names.
type tracer struct {
	names map[arena.Ref]string
}

func newTracer() *tracer {
	return &tracer{names: make(map[arena.Ref]string)}
}

func (t *tracer) track(ref arena.Ref, name string) {
	t.names[ref] = name
}

func (t *tracer) label(ref arena.Ref) string {
	if name, ok := t.names[ref]; ok {
		return name
	}
	return ref.String()
}

func (t *tracer) OnObjectEvent(e arena.Event) {
	switch e.Type {
	case arena.EventAllocated, arena.EventRetained, arena.EventReleased:
		fmt.Printf("  %-11s %-8s strong=%d\n", e.Type, t.label(e.Ref), e.Strong)
	default:
		fmt.Printf("  %-11s %s\n", e.Type, t.label(e.Ref))
	}
}

func runRetainRelease(mode arena.Mode) error {
	tr := newTracer()
	a := arena.New(arena.WithMode(mode), arena.WithObserver(tr))
	defer a.Close()

	A := handle.Allocate(a, &demoNode{a: a, name: "kraken"})
	tr.track(A.Ref(), "kraken")

	B := A.Clone()
	B.Release()
	A.Release()

	if a.Len() != 0 {
		return fmt.Errorf("expected empty arena, %d objects remain", a.Len())
	}
	fmt.Println("  object destroyed exactly when the last owner released")
	return nil
}

func runWeakZeroing(mode arena.Mode) error {
	tr := newTracer()
	a := arena.New(arena.WithMode(mode), arena.WithObserver(tr))
	defer a.Close()

	A := handle.Allocate(a, &demoNode{a: a, name: "target"})
	tr.track(A.Ref(), "target")
	w := A.Weak()
	defer w.Release()

	if live, ok := w.Resolve(); ok {
		fmt.Println("  resolve while live: ok")
		live.Release()
	}

	A.Release()

	if _, ok := w.Resolve(); !ok {
		fmt.Println("  resolve after release: absent")
	} else {
		return fmt.Errorf("weak handle resolved a destroyed object")
	}
	return nil
}

func runUnowned(mode arena.Mode) error {
	a := arena.New(arena.WithMode(mode))
	defer a.Close()

	A := handle.Allocate(a, &demoNode{a: a, name: "fleeting"})
	u := A.Unowned()

	if n, err := u.Get(); err == nil {
		fmt.Printf("  while live: got %q\n", n.name)
	}

	A.Release()

	n, err := u.Get()
	switch {
	case err != nil:
		fmt.Printf("  after free (%s): %v\n", mode, err)
	case n == nil:
		fmt.Printf("  after free (%s): raw read of an empty slot\n", mode)
	default:
		fmt.Printf("  after free (%s): raw read observed %q\n", mode, n.name)
	}
	return nil
}

func runStrongCycle(mode arena.Mode) error {
	tr := newTracer()
	a := arena.New(arena.WithMode(mode), arena.WithObserver(tr))
	defer a.Close()

	na := &demoNode{a: a, name: "A"}
	nb := &demoNode{a: a, name: "B"}
	refA := a.Allocate(na)
	refB := a.Allocate(nb)
	tr.track(refA, "A")
	tr.track(refB, "B")

	// A strongly retains B and B strongly retains A.
	if err := a.Retain(refB); err != nil {
		return err
	}
	na.edges = append(na.edges, refB)
	if err := a.Retain(refA); err != nil {
		return err
	}
	nb.edges = append(nb.edges, refA)

	fmt.Println("  releasing external roots...")
	if err := a.Release(refA); err != nil {
		return err
	}
	if err := a.Release(refB); err != nil {
		return err
	}

	leaked := cycle.Detect(a, nil)
	fmt.Printf("  still live: %d, leaked by the cycle: %v\n", a.Len(), leaked)
	if len(leaked) != 2 {
		return fmt.Errorf("expected 2 leaked objects, got %d", len(leaked))
	}
	return nil
}

func runWeakCycle(mode arena.Mode) error {
	tr := newTracer()
	a := arena.New(arena.WithMode(mode), arena.WithObserver(tr))
	defer a.Close()

	na := &demoNode{a: a, name: "A"}
	nb := &demoNode{a: a, name: "B"}
	refA := a.Allocate(na)
	refB := a.Allocate(nb)
	tr.track(refA, "A")
	tr.track(refB, "B")

	// A strongly retains B; B only weakly observes A.
	if err := a.Retain(refB); err != nil {
		return err
	}
	na.edges = append(na.edges, refB)
	back, err := a.Weak(refA)
	if err != nil {
		return err
	}
	back.Retain()
	defer back.Release()

	fmt.Println("  releasing external roots...")
	if err := a.Release(refB); err != nil {
		return err
	}
	if err := a.Release(refA); err != nil {
		return err
	}

	leaked := cycle.Detect(a, nil)
	fmt.Printf("  still live: %d, leaked: %v\n", a.Len(), leaked)
	if a.Len() != 0 || len(leaked) != 0 {
		return fmt.Errorf("weak back edge failed to break the cycle")
	}
	if _, ok := back.Resolve(); !ok {
		fmt.Println("  weak back edge resolves to absence")
	}
	return nil
}
