package types

// ResourceID identifies a capacity-bounded assignment target (a driver's
// vehicle or a boat). The zero value means "not assigned to any resource".
type ResourceID string

// Unassigned is the null assignment: an item with this resource ID sits in
// the unassigned pool.
const Unassigned ResourceID = ""

// GuestCount holds the per-category guest breakdown of a booking.
//
// The three categories map to adult/child/infant in the reference back
// office; the capacity model only ever consumes the total.
type GuestCount struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Total returns the total slot consumption of the booking.
//
// Returns:
//   - int: Sum of all guest categories
func (g GuestCount) Total() int {
	return g.Adults + g.Children + g.Infants
}

// Item is a bookable unit that needs assignment to at most one resource for
// one activity date.
//
// Items carry two assignment values: Committed is the last value known to be
// persisted, Pending is the unsaved working value the user is manipulating.
// The two start equal on load and are reconciled by the save cycle.
type Item struct {
	// ID uniquely identifies the item within the working set.
	ID string `json:"id"`

	// Guests is the guest breakdown; its total is the slot consumption.
	Guests GuestCount `json:"guests"`

	// Committed is the last persisted assignment (Unassigned if none).
	Committed ResourceID `json:"committed"`

	// Pending is the working assignment (Unassigned if none).
	// If non-empty it must reference a currently active resource.
	Pending ResourceID `json:"pending"`

	// GroupKey groups unassigned items for column display (pickup area for
	// driver boards, program for boat boards). Display-only.
	GroupKey string `json:"groupKey"`

	// ProgramKey restricts membership on boat-style resources carrying a
	// program binding. Empty for driver-style boards.
	ProgramKey string `json:"programKey,omitempty"`
}

// IsDirty reports whether the item's working assignment differs from the
// last persisted one.
func (it Item) IsDirty() bool {
	return it.Pending != it.Committed
}
