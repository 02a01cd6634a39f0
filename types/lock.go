package types

// SecondaryBindings is boat-style metadata attached to a lock record.
//
// These bindings never affect move validity; they only travel with the
// resource for display and export.
type SecondaryBindings struct {
	// GuideID is the assigned guide, empty if none.
	GuideID string `json:"guideId,omitempty"`

	// RestaurantID is the assigned restaurant, empty if none.
	RestaurantID string `json:"restaurantId,omitempty"`
}

// IsZero reports whether no binding is set.
func (b SecondaryBindings) IsZero() bool {
	return b.GuideID == "" && b.RestaurantID == ""
}

// LockRecord is the persisted per-(resource, activity date) board state.
//
// One record exists per resource per date. It is created or updated on lock
// toggle or binding change, and read on board load for the selected date.
// A record may exist for a resource with zero assigned items (e.g. a boat
// pre-configured with a program before any passengers join); such a record
// alone activates the resource's column.
type LockRecord struct {
	// ResourceID is the resource this record belongs to.
	ResourceID ResourceID `json:"resourceId"`

	// Date is the activity date in ISO form (YYYY-MM-DD).
	Date string `json:"date"`

	// Locked freezes the resource: no reassignment into or out of it.
	Locked bool `json:"locked"`

	// ProgramBinding restricts membership to items sharing this program
	// key. Boat-style only; empty means unrestricted.
	ProgramBinding string `json:"programBinding,omitempty"`

	// Bindings is guide/restaurant metadata. Boat-style only.
	Bindings SecondaryBindings `json:"bindings,omitzero"`
}

// IsZero reports whether the record carries no persistable state. Zero
// records are skipped by save batches and dropped by persistence adapters.
func (r LockRecord) IsZero() bool {
	return !r.Locked && r.ProgramBinding == "" && r.Bindings.IsZero()
}
