package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods may be called concurrently and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	MoveMetrics
	SaveMetrics
	LockMetrics
}

// MoveMetrics defines metrics for move and reorder operations.
type MoveMetrics interface {
	// RecordMove records a drop attempt outcome.
	//
	// Parameters:
	//   - reason: Reject reason ("none" for an accepted move)
	RecordMove(reason RejectReason)

	// RecordColumnReorder records a column reorder or position swap.
	RecordColumnReorder()

	// RecordDirtyItems sets the current count of items with unsaved
	// assignment changes (gauge metric).
	RecordDirtyItems(count int)
}

// SaveMetrics defines metrics for the autosave scheduler.
type SaveMetrics interface {
	// RecordSaveStateTransition records an autosave state transition.
	RecordSaveStateTransition(from, to SaveState)

	// RecordSaveDuration records the time taken by one save batch.
	//
	// Parameters:
	//   - duration: Time taken in seconds
	//   - manual: true for the explicit "save now" path
	//   - success: true when the whole batch persisted
	RecordSaveDuration(duration float64, manual, success bool)
}

// LockMetrics defines metrics for lock and binding operations.
type LockMetrics interface {
	// RecordLockToggle records a successful lock state change.
	RecordLockToggle(locked bool)

	// RecordLockRejection records a lock toggle rejected over capacity.
	RecordLockRejection()

	// RecordEviction records items evicted by a program binding change.
	RecordEviction(count int)
}
