package types

// ResourceKind selects which constraint profile a resource uses.
//
// Driver-style and boat-style boards run on the same engine; the kind only
// controls whether program (compatibility) bindings are accepted.
type ResourceKind int

const (
	// KindDriver is a driver/vehicle resource. Program bindings are not
	// supported; the compatibility check is always a pass-through.
	KindDriver ResourceKind = iota

	// KindBoat is a boat resource. It may carry a program binding that
	// restricts which items can join, plus guide/restaurant metadata.
	KindBoat
)

// String returns the string representation of the kind.
func (k ResourceKind) String() string {
	switch k {
	case KindDriver:
		return "driver"
	case KindBoat:
		return "boat"
	default:
		return "unknown"
	}
}

// Resource is a capacity-bounded assignment target from the master list.
//
// Activation (whether the resource currently has a board column), lock state
// and bindings are board state, not resource attributes; they live in the
// assignment store and in LockRecord respectively.
type Resource struct {
	// ID uniquely identifies the resource within the company.
	ID ResourceID `json:"id"`

	// Name is the display name (driver name or boat name).
	Name string `json:"name"`

	// Capacity is the maximum total guest slots. Always positive by
	// construction upstream.
	Capacity int `json:"capacity"`

	// Kind selects the constraint profile (driver or boat).
	Kind ResourceKind `json:"kind"`
}
