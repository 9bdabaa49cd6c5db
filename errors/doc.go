// Package errors provides structured error types for the runtime.
//
// Every error carries a Phase (which operation failed) and a Kind (what
// went wrong), plus the slot and generation numbers identifying the
// offending reference. Errors with the same Phase and Kind match under
// errors.Is, so callers can test for categories without string parsing:
//
//	_, err := u.Get()
//	if errors.Is(err, &rcerrors.Error{Phase: rcerrors.PhaseAccess, Kind: rcerrors.KindUseAfterFree}) {
//	    // the unowned target is gone
//	}
//
// Severity follows the runtime's propagation policy: use-after-free on
// a checked unowned handle is recoverable and surfaced as an error
// result; counting errors (over-release) corrupt invariants and are
// raised as panics at the call site; weak resolution absence is not an
// error at all.
package errors
