// Package boardkit provides the state engine behind an interactive
// resource-assignment board for tour back offices: drag a booking onto a
// driver or boat column, and the library validates the move, tracks the
// unsaved diff and autosaves it after a quiet period.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/cruisedesk/boardkit"
//
//	cfg := boardkit.DefaultConfig()
//
//	board, err := boardkit.New(&cfg, loader, saver)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer board.Close()
//
//	if err := board.Load(ctx, companyID, "2026-07-14"); err != nil {
//	    log.Fatal(err)
//	}
//
//	decision, err := board.MoveItem("booking-42", "driver-3")
//
// # Key Features
//
//   - Constraint Engine: Locked columns and program bindings reject moves
//     before any state changes
//   - Debounced Autosave: Rapid edits collapse into one save batch after a
//     quiet period (2s by default)
//   - Partial Commit: A batch that half-fails only retries the failures
//   - Graceful Degradation: A missing lock store downgrades locks to
//     local-only instead of breaking the board
//   - Pluggable Persistence: Loader/Saver interfaces with SQL and NATS KV
//     adapters under persist/
//
// # Architecture
//
// A Board owns an in-memory working copy of one (company, activity date)
// selection. Every item carries two assignments:
//
//	Committed: what the backing store last acknowledged
//	Pending:   what the user currently sees
//
// Mutations edit Pending; the save scheduler ships the diff and reconciles
// Committed on success. The save lifecycle is
//
//	Idle → Dirty → Saving → Idle (or back to Dirty on failure/new edits)
//
// # Advanced Usage
//
// Custom hooks and metrics:
//
//	hooks := boardkit.Hooks{
//	    OnSaveFailed: func(ctx context.Context, err error, manual bool) error {
//	        retryQueue.Schedule(board.SaveNow)
//	        return nil
//	    },
//	}
//
//	board, err := boardkit.New(&cfg, loader, saver,
//	    boardkit.WithHooks(hooks),
//	    boardkit.WithMetrics(boardkit.NewPrometheusMetrics(reg, "boardkit")),
//	    boardkit.WithNotifier(toasts),
//	)
package boardkit
