package arena

import "fmt"

// Slot is a 1-based index into the arena's slot table.
// Slot 0 is reserved and always invalid.
type Slot uint32

// Ref identifies a managed object. The generation number is bumped every
// time a slot is recycled, so a Ref stays unique across slot reuse: a
// stale Ref can never alias an object allocated later into the same slot.
type Ref struct {
	Slot Slot
	Gen  uint32
}

// Valid reports whether the ref names a slot at all. It says nothing
// about whether the object is still alive.
func (r Ref) Valid() bool {
	return r.Slot != 0
}

func (r Ref) String() string {
	return fmt.Sprintf("obj(%d@%d)", r.Slot, r.Gen)
}

// Mode selects how the arena treats operations on stale references.
type Mode uint8

const (
	// Checked validates the remembered generation on every retain,
	// release, and unowned access, surfacing use-after-free as an error.
	Checked Mode = iota

	// Unchecked skips liveness validation. A dangling access reads
	// whatever the slot currently holds. This models the release
	// configuration of unowned references: the hazard is the caller's
	// engineering decision.
	Unchecked
)

func (m Mode) String() string {
	switch m {
	case Checked:
		return "checked"
	case Unchecked:
		return "unchecked"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Event types for object lifecycle notifications.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventRetained
	EventReleased
	EventDestroyed
	EventWeakZeroed
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventRetained:
		return "retained"
	case EventReleased:
		return "released"
	case EventDestroyed:
		return "destroyed"
	case EventWeakZeroed:
		return "weak-zeroed"
	default:
		return fmt.Sprintf("event(%d)", uint8(t))
	}
}

// Event represents an object lifecycle event. Strong carries the strong
// count after the operation; Value is set for allocation and destruction.
type Event struct {
	Value  any
	Ref    Ref
	Strong int64
	Type   EventType
}

// Observer receives notifications about object lifecycle events.
type Observer interface {
	OnObjectEvent(Event)
}

// Stats summarizes arena activity.
type Stats struct {
	Allocated int64 // total objects ever allocated
	Destroyed int64 // total objects destroyed
	Live      int   // currently live objects
}
