package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:   PhaseAccess,
				Kind:    KindUseAfterFree,
				Slot:    7,
				WantGen: 2,
				Gen:     3,
				Detail:  "target object was destroyed",
			},
			contains: []string{"[access]", "use_after_free", "slot 7", "remembered gen 2", "current gen 3", "destroyed"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRetain,
				Kind:  KindInvalidRef,
			},
			contains: []string{"[retain]", "invalid_ref"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAllocate,
				Kind:   KindAllocation,
				Detail: "arena full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[allocate]", "allocation", "arena full", "caused by", "underlying error"},
		},
		{
			name: "matching generations omit the mismatch note",
			err: &Error{
				Phase:   PhaseRelease,
				Kind:    KindOverRelease,
				Slot:    3,
				Gen:     1,
				WantGen: 1,
			},
			contains: []string{"[release]", "over_release", "slot 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_GenMismatchOmittedWhenEqual(t *testing.T) {
	err := &Error{Phase: PhaseRelease, Kind: KindOverRelease, Slot: 3, Gen: 1, WantGen: 1}
	if strings.Contains(err.Error(), "remembered gen") {
		t.Errorf("equal generations should not render a mismatch note: %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseResolve,
		Kind:  KindClosed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := UseAfterFree(PhaseAccess, 4, 1, 2)

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseAccess, Kind: KindUseAfterFree}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseRetain, Kind: KindUseAfterFree}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseAccess, Kind: KindDanglingAccess}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseAccess, Kind: KindUseAfterFree}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match same phase and kind")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		phase    Phase
		kind     Kind
		contains string
	}{
		{"UseAfterFree", UseAfterFree(PhaseRetain, 1, 1, 2), PhaseRetain, KindUseAfterFree, "destroyed"},
		{"OverRelease", OverRelease(2, 1, -1), PhaseRelease, KindOverRelease, "strong count dropped to -1"},
		{"AllocationFailed", AllocationFailed("slot table exhausted", nil), PhaseAllocate, KindAllocation, "exhausted"},
		{"Closed", Closed(PhaseAllocate), PhaseAllocate, KindClosed, "closed"},
		{"InvalidRef", InvalidRef(PhaseResolve, 9), PhaseResolve, KindInvalidRef, "does not name"},
		{"TypeMismatch", TypeMismatch(PhaseAccess, 5, "*Node", "string"), PhaseAccess, KindTypeMismatch, "want *Node"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %q, want %q", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("message %q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(PhaseAllocate, KindAllocation, cause, "grow slot table")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if !strings.Contains(err.Error(), "grow slot table") {
		t.Errorf("message %q missing detail", err.Error())
	}
}
