package arena

import (
	"testing"
)

func TestWeakBlock_ResolveWhileLive(t *testing.T) {
	a := New()
	ref := a.Allocate("target")

	block, err := a.Weak(ref)
	if err != nil {
		t.Fatalf("Weak failed: %v", err)
	}
	block.Retain()
	defer block.Release()

	// Weak creation must not touch the strong count.
	if got := a.StrongCount(ref); got != 1 {
		t.Fatalf("Weak block changed strong count to %d", got)
	}

	resolved, ok := block.Resolve()
	if !ok {
		t.Fatal("Resolve failed while target is live")
	}
	if resolved != ref {
		t.Fatalf("Resolved %v, want %v", resolved, ref)
	}
	// Resolve retains for the duration of use.
	if got := a.StrongCount(ref); got != 2 {
		t.Fatalf("Expected strong count 2 after resolve, got %d", got)
	}
	a.Release(resolved)
	if got := a.StrongCount(ref); got != 1 {
		t.Fatalf("Expected strong count 1 after releasing the resolved ref, got %d", got)
	}
}

func TestWeakBlock_ZeroedOnDestroy(t *testing.T) {
	a := New()
	ref := a.Allocate("target")

	block, err := a.Weak(ref)
	if err != nil {
		t.Fatalf("Weak failed: %v", err)
	}
	block.Retain()
	defer block.Release()

	a.Release(ref)

	if block.Alive() {
		t.Fatal("Block reports alive after target destruction")
	}
	if _, ok := block.Resolve(); ok {
		t.Fatal("Resolve must yield absence after the strong count reached zero")
	}
}

func TestWeakBlock_NoStaleResolveAfterSlotReuse(t *testing.T) {
	a := New()
	ref := a.Allocate("first")

	block, err := a.Weak(ref)
	if err != nil {
		t.Fatalf("Weak failed: %v", err)
	}
	block.Retain()
	defer block.Release()

	a.Release(ref)

	// Reuse the slot with a new object; the old block must stay absent.
	second := a.Allocate("second")
	if second.Slot != ref.Slot {
		t.Fatalf("Expected slot reuse, got slot %d", second.Slot)
	}
	if _, ok := block.Resolve(); ok {
		t.Fatal("Zeroed block resolved the slot's new occupant")
	}
}

func TestWeakBlock_ReusedForSameObject(t *testing.T) {
	a := New()
	ref := a.Allocate("target")

	b1, err := a.Weak(ref)
	if err != nil {
		t.Fatalf("Weak failed: %v", err)
	}
	b2, err := a.Weak(ref)
	if err != nil {
		t.Fatalf("Weak failed: %v", err)
	}
	if b1 != b2 {
		t.Fatal("Repeated weak requests must reuse the same block")
	}
}

func TestWeakBlock_WeakCount(t *testing.T) {
	a := New()
	ref := a.Allocate("target")

	block, _ := a.Weak(ref)
	block.Retain()
	block.Retain()
	if got := block.WeakCount(); got != 2 {
		t.Fatalf("Expected weak count 2, got %d", got)
	}
	block.Release()
	if got := block.WeakCount(); got != 1 {
		t.Fatalf("Expected weak count 1, got %d", got)
	}
}

func TestWeakBlock_ForDestroyedObject(t *testing.T) {
	a := New()
	ref := a.Allocate("target")
	a.Release(ref)

	if _, err := a.Weak(ref); err == nil {
		t.Fatal("Expected error requesting a weak block for a destroyed object")
	}
}
