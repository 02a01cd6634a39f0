package boardkit

import "github.com/cruisedesk/boardkit/types"

// Re-exported sentinel errors from the types package.
var (
	ErrInvalidConfig       = types.ErrInvalidConfig
	ErrLoaderRequired      = types.ErrLoaderRequired
	ErrSaverRequired       = types.ErrSaverRequired
	ErrNotLoaded           = types.ErrNotLoaded
	ErrClosed              = types.ErrClosed
	ErrSaveFailed          = types.ErrSaveFailed
	ErrUnknownItem         = types.ErrUnknownItem
	ErrUnknownResource     = types.ErrUnknownResource
	ErrResourceNotActive   = types.ErrResourceNotActive
	ErrLockedOverCapacity  = types.ErrLockedOverCapacity
	ErrBindingNotSupported = types.ErrBindingNotSupported
	ErrInvalidPosition     = types.ErrInvalidPosition
	ErrLockStoreMissing    = types.ErrLockStoreMissing
	ErrConnectivity        = types.ErrConnectivity
)

// IsLockStoreMissingError reports whether an error indicates the lock
// backing store is absent (missing table or bucket). The board degrades
// to local-only lock behavior when it sees this.
var IsLockStoreMissingError = types.IsLockStoreMissingError
