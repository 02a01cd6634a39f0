package types

import "context"

// Hooks defines callbacks for Board lifecycle events.
//
// All hooks are optional and called asynchronously in background goroutines
// to avoid blocking user interaction. Hooks receive the board's lifecycle
// context which is cancelled when the board is closed.
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Make hooks idempotent (may be called multiple times)
//   - Handle errors gracefully (return error for logging)
//
// Example:
//
//	hooks := &boardkit.Hooks{
//	    OnSaveFailed: func(ctx context.Context, err error, manual bool) error {
//	        retryQueue.Schedule(board.SaveNow)
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnSaveStateChanged is called when the autosave state transitions.
	OnSaveStateChanged func(ctx context.Context, from, to SaveState) error

	// OnItemMoved is called after an item's working assignment changed.
	OnItemMoved func(ctx context.Context, itemID string, from, to ResourceID) error

	// OnSaveFailed is called when a save batch fails, on both the manual
	// and the silent autosave path. The core never self-retries on a
	// timer; this hook is the seam for an application-level retry or
	// backoff policy.
	OnSaveFailed func(ctx context.Context, err error, manual bool) error

	// OnEviction is called after a program binding change evicted items
	// back to the unassigned pool.
	OnEviction func(ctx context.Context, resource ResourceID, evicted []string) error
}
