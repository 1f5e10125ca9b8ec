package kernel

import "errors"

// Sentinel error kinds, matched with errors.Is. See spec section 7.
var (
	// ErrBadArg means the caller violated an input precondition: negative
	// dt, a nil token, or a zero-or-negative server count.
	ErrBadArg = errors.New("smpl/kernel: bad argument")

	// ErrNoSuchFacility means the facility id is unknown to this
	// Simulator (never created, or created by a different Simulator
	// instance/run).
	ErrNoSuchFacility = errors.New("smpl/kernel: no such facility")

	// ErrNotHeld means Release was called for a (facility, token) pair
	// that is not currently holding a server on that facility.
	ErrNotHeld = errors.New("smpl/kernel: facility not held by token")

	// ErrRequestOutsideDispatch means Request would have returned Queued
	// but there is no in-flight event to re-schedule, because Request
	// was called without an enclosing Cause.
	ErrRequestOutsideDispatch = errors.New("smpl/kernel: request outside dispatch")

	// ErrNoSuchPending is an internal invariant breach: a facility's
	// waiter has no corresponding pending event to re-fire. This should
	// never happen; its presence indicates a bug in the kernel itself,
	// not caller misuse, and callers should treat a simulation run that
	// produces it as unsalvageable.
	ErrNoSuchPending = errors.New("smpl/kernel: no pending event for queued waiter")
)
