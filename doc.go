// Package rcruntime provides an explicit automatic-reference-counting
// runtime for Go.
//
// The library implements shared ownership over an arena of managed
// objects: strong handles keep an object alive, weak handles observe it
// without owning it and resolve to absence after deallocation, and
// unowned handles trade safety for zero bookkeeping. A cycle detector
// diagnostic walks the strong-reference graph and reports objects that
// pure reference counting can never free.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	rcruntime/       Root package with shared lifecycle interfaces
//	├── arena/       Slot-table object store: counters, weak blocks, events
//	├── handle/      Typed strong, weak, and unowned handles
//	├── cycle/       Strong-reference graph traversal and leak reporting
//	├── errors/      Structured error types for debugging
//	└── cmd/rcplay/  Playground CLI with scripted scenarios and a TUI
//
// # Quick Start
//
// Allocate an object and share ownership:
//
//	a := arena.New()
//	defer a.Close()
//
//	s := handle.Allocate(a, &Node{Name: "root"})
//	clone := s.Clone() // strong count is now 2
//
//	w := s.Weak()
//	clone.Release()
//	s.Release() // strong count hits 0, the node is destroyed
//
//	if _, ok := w.Resolve(); !ok {
//	    fmt.Println("target is gone")
//	}
//
// # Ownership Model
//
// An object is destroyed the instant its strong count transitions from
// one to zero. Destruction runs the payload's Finalizer (if any), zeroes
// every weak block pointing at the slot, and only then recycles the slot,
// so a stale reference can never alias a future allocation.
//
// Weak resolution never errors: absence is a normal outcome reported as
// a boolean. Unowned access is configurable per arena: the checked mode
// detects use-after-free through generation tags and surfaces it as an
// error, the unchecked mode performs the raw access the caller asked for.
//
// # Thread Safety
//
// Arena operations are safe for concurrent use. Retain, release, and
// weak resolution use atomic counters; only slot assignment and
// destruction serialize on the arena lock. Handles themselves are plain
// values and may be copied freely, but each Clone must be balanced by
// exactly one Release.
package rcruntime
