package types

import (
	"errors"
	"strings"
)

// Sentinel errors for the boardkit library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Board errors - Public API errors returned by the Board component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLoaderRequired is returned when the loader is nil.
	ErrLoaderRequired = errors.New("board loader is required")

	// ErrSaverRequired is returned when the saver is nil.
	ErrSaverRequired = errors.New("board saver is required")

	// ErrNotLoaded is returned when operations require a loaded board.
	ErrNotLoaded = errors.New("board not loaded")

	// ErrClosed is returned when operations run against a closed board.
	ErrClosed = errors.New("board closed")

	// ErrSaveFailed is returned when a save batch could not be fully persisted.
	ErrSaveFailed = errors.New("save failed")
)

// Store errors - Assignment store component errors.
var (
	// ErrUnknownItem is returned when an item ID is not in the working set.
	ErrUnknownItem = errors.New("unknown item")

	// ErrUnknownResource is returned when a resource ID is not in the
	// master list.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrResourceNotActive is returned when an operation targets a
	// resource without a board column.
	ErrResourceNotActive = errors.New("resource not active")

	// ErrLockedOverCapacity is returned when a lock toggle would freeze a
	// resource that currently exceeds its capacity.
	ErrLockedOverCapacity = errors.New("cannot lock over-capacity resource")

	// ErrBindingNotSupported is returned when a program binding is set on
	// a driver-style resource.
	ErrBindingNotSupported = errors.New("program binding not supported for resource kind")

	// ErrInvalidPosition is returned when a column position swap targets a
	// position outside [1, column count] or equal to the current one.
	ErrInvalidPosition = errors.New("invalid column position")
)

// Persistence errors - Shared errors for persistence adapters.
var (
	// ErrLockStoreMissing indicates the deployment has no lock/binding
	// store (e.g. the backing table was never migrated). The core treats
	// this as a compatibility fallback, not a hard failure: lock state is
	// kept locally and a single informational notification is emitted.
	ErrLockStoreMissing = errors.New("lock store missing")

	// ErrConnectivity indicates a backing store connectivity issue.
	ErrConnectivity = errors.New("connectivity issue")
)

// IsLockStoreMissingError checks if an error indicates the lock/binding
// store is absent in this deployment.
//
// This handles both the boardkit sentinel and stringly driver errors such
// as Postgres undefined-table messages, which may arrive wrapped.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error indicates a missing lock store
func IsLockStoreMissingError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrLockStoreMissing) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "does not exist") && strings.Contains(msg, "relation")
}
