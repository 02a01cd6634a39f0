// Package testing provides test utilities for the boardkit library.
//
// It follows Go's convention of a dedicated testing-helpers package
// (similar to net/http/httptest) and offers:
//   - StartEmbeddedNATS: In-process NATS server with JetStream for
//     exercising the natskv persistence adapter
//   - CreateJetStreamKV: Convenience wrapper for KV bucket creation
//   - MemoryStore: In-memory Loader/Saver with failure injection
//   - RecordingNotifier: Captures notifications for assertions
//   - NewTestLogger: Logger bridging to testing.T
//
// Example usage:
//
//	import (
//	    "testing"
//	    boardtest "github.com/cruisedesk/boardkit/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    store := boardtest.NewMemoryStore()
//	    // wire store as both Loader and Saver
//	}
package testing
