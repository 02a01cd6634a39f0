// Package natsutil classifies NATS errors for the persistence adapters.
//
// Kept internal so the types/ package never imports NATS dependencies.
package natsutil

import (
	"errors"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/cruisedesk/boardkit/types"
)

// IsConnectivityError checks if an error is caused by connectivity issues.
//
// This includes NATS timeouts, connection refused, disconnections, etc.
// The natskv adapter wraps such errors with types.ErrConnectivity so the
// board core can report them without knowing about NATS.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if error indicates connectivity issue
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, types.ErrConnectivity) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}

// IsBucketMissingError checks if an error indicates the KV bucket backing
// lock records was never provisioned in this deployment. The natskv
// adapter maps this to types.ErrLockStoreMissing so the board degrades to
// local-only lock state instead of failing the save.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if the error indicates a missing bucket/stream
func IsBucketMissingError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, jetstream.ErrBucketNotFound) ||
		errors.Is(err, jetstream.ErrStreamNotFound)
}
