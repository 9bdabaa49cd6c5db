package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which runtime operation the error occurred in
type Phase string

const (
	PhaseAllocate Phase = "allocate" // object creation
	PhaseRetain   Phase = "retain"   // strong count increment
	PhaseRelease  Phase = "release"  // strong count decrement
	PhaseWeak     Phase = "weak"     // weak block creation
	PhaseResolve  Phase = "resolve"  // weak to strong materialization
	PhaseAccess   Phase = "access"   // unowned dereference
	PhaseDetect   Phase = "detect"   // cycle detection
	PhaseClose    Phase = "close"    // arena shutdown
)

// Kind categorizes the error
type Kind string

const (
	KindUseAfterFree   Kind = "use_after_free"
	KindDanglingAccess Kind = "dangling_access"
	KindOverRelease    Kind = "over_release"
	KindAllocation     Kind = "allocation"
	KindClosed         Kind = "closed"
	KindInvalidRef     Kind = "invalid_ref"
	KindTypeMismatch   Kind = "type_mismatch"
)

// Error is the structured error type used throughout the runtime.
// Slot and generation fields identify the offending reference: WantGen
// is the generation the reference remembered, Gen the slot's current one.
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	Detail  string
	Slot    uint32
	Gen     uint32
	WantGen uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Slot != 0 {
		fmt.Fprintf(&b, " slot %d", e.Slot)
		if e.WantGen != e.Gen {
			fmt.Fprintf(&b, " (remembered gen %d, current gen %d)", e.WantGen, e.Gen)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// UseAfterFree reports an operation on a reference whose target has
// already been destroyed. Recoverable: callers decide how to react.
func UseAfterFree(phase Phase, slot, wantGen, gen uint32) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUseAfterFree,
		Slot:    slot,
		WantGen: wantGen,
		Gen:     gen,
		Detail:  "target object was destroyed",
	}
}

// OverRelease reports a release that would drive a strong count
// negative. This is invariant corruption and must never be swallowed.
func OverRelease(slot, gen uint32, count int64) *Error {
	return &Error{
		Phase:   PhaseRelease,
		Kind:    KindOverRelease,
		Slot:    slot,
		Gen:     gen,
		WantGen: gen,
		Detail:  fmt.Sprintf("strong count dropped to %d", count),
	}
}

// AllocationFailed reports resource exhaustion in the arena. Fatal.
func AllocationFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseAllocate,
		Kind:   KindAllocation,
		Detail: detail,
		Cause:  cause,
	}
}

// Closed reports an operation against a closed arena
func Closed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: "arena is closed",
	}
}

// InvalidRef reports a reference that never named a valid slot
func InvalidRef(phase Phase, slot uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidRef,
		Slot:   slot,
		Detail: "reference does not name an allocated slot",
	}
}

// TypeMismatch reports a payload that is not of the expected type
func TypeMismatch(phase Phase, slot uint32, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Slot:   slot,
		Detail: fmt.Sprintf("payload is %s, want %s", got, want),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
