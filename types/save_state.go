package types

// SaveState represents the autosave lifecycle state.
//
// States follow a defined progression during normal operation:
//
//	SaveIdle → SaveDirty → SaveSaving → SaveIdle
//
// A failed save batch returns to SaveDirty (changes remain pending, no data
// loss); the next edit or a manual save re-arms the cycle.
type SaveState int

const (
	// SaveIdle means no unsaved changes exist.
	SaveIdle SaveState = iota

	// SaveDirty means changes exist and the debounce timer is armed.
	SaveDirty

	// SaveSaving means a persistence batch is in flight.
	SaveSaving
)

// String returns the string representation of the state.
func (s SaveState) String() string {
	switch s {
	case SaveIdle:
		return "Idle"
	case SaveDirty:
		return "Dirty"
	case SaveSaving:
		return "Saving"
	default:
		return "Unknown"
	}
}
