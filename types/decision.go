package types

// RejectReason classifies why a proposed move was rejected.
//
// Rejections are normal, expected outcomes of user action. They are modeled
// as result values, never as errors or panics, and each one surfaces exactly
// one user-facing notification.
type RejectReason int

const (
	// ReasonNone means the move was allowed.
	ReasonNone RejectReason = iota

	// ReasonNoop means the target equals the item's current assignment.
	// Callers should silently ignore this outcome.
	ReasonNoop

	// ReasonTargetLocked means the target resource is locked.
	ReasonTargetLocked

	// ReasonSourceLocked means the item's current resource is locked.
	// A locked column is frozen in both directions.
	ReasonSourceLocked

	// ReasonIncompatible means the target carries a program binding the
	// item's program key does not match. Boat-style only.
	ReasonIncompatible
)

// String returns the string representation of the reason.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoop:
		return "noop"
	case ReasonTargetLocked:
		return "target_locked"
	case ReasonSourceLocked:
		return "source_locked"
	case ReasonIncompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a constraint check on a proposed move.
type Decision struct {
	// Allowed is true when the move may proceed.
	Allowed bool

	// Reason is set when Allowed is false.
	Reason RejectReason
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Reject returns a rejecting decision with the given reason.
func Reject(reason RejectReason) Decision {
	return Decision{Reason: reason}
}

// Silent reports whether the rejection should be swallowed without a
// user-facing notification (currently only the no-op case).
func (d Decision) Silent() bool {
	return !d.Allowed && d.Reason == ReasonNoop
}
