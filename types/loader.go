package types

import "context"

// Loader supplies board data from the backing store.
//
// Implementations live outside the core (persist/sqlstore ships one); the
// board only sees this interface. Loaders must apply the load-time
// exclusion rules: voided and cancelled bookings never appear, and
// driver-style boards also exclude self-arranged bookings (no pickup
// needed).
type Loader interface {
	// LoadBoard returns the items, master resources and lock records for
	// one (company, activity date) selection.
	//
	// Parameters:
	//   - ctx: Context for cancellation and deadline
	//   - companyID: Tenant identifier
	//   - date: Activity date in ISO form (YYYY-MM-DD)
	//
	// Returns:
	//   - *BoardData: Loaded working set
	//   - error: Backing store failure
	LoadBoard(ctx context.Context, companyID, date string) (*BoardData, error)

	// MasterResources returns the full resource list for the company,
	// including resources not active on any board. Used to populate the
	// "available to add" affordance.
	MasterResources(ctx context.Context, companyID string) ([]Resource, error)
}

// Saver persists board changes.
//
// Each call is independent; batch ordering is not significant. Both methods
// have upsert semantics so a retried batch is harmless.
type Saver interface {
	// SaveAssignment persists one item's assignment. target is Unassigned
	// to clear the assignment.
	SaveAssignment(ctx context.Context, companyID, date, itemID string, target ResourceID) error

	// SaveLock upserts one lock/binding record keyed by
	// (company, resource, date). Implementations lacking a lock store
	// must return an error satisfying IsLockStoreMissingError so the core
	// can degrade to local-only lock state.
	SaveLock(ctx context.Context, companyID string, rec LockRecord) error
}
