package boardkit

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/cruisedesk/boardkit/internal/autosave"
	"github.com/cruisedesk/boardkit/internal/hooks"
	"github.com/cruisedesk/boardkit/internal/logging"
	"github.com/cruisedesk/boardkit/internal/metrics"
	"github.com/cruisedesk/boardkit/internal/state"
	"github.com/cruisedesk/boardkit/types"
)

// ChangeKind classifies a board change event.
type ChangeKind int

const (
	// ChangeAssignment: one or more item assignments changed.
	ChangeAssignment ChangeKind = iota

	// ChangeOrder: the column order changed.
	ChangeOrder

	// ChangeLocks: a lock or binding record changed.
	ChangeLocks

	// ChangeActivation: a resource column appeared or disappeared.
	ChangeActivation

	// ChangeReset: the board was reloaded or bulk-reset.
	ChangeReset

	// ChangeCommit: committed state was reconciled after a save.
	ChangeCommit
)

// Change is one board change notification. Events are signals, not state:
// receivers re-read the board on receipt, so dropping one under burst is
// harmless.
type Change struct {
	Kind ChangeKind
}

// nopNotifier drops every notification.
type nopNotifier struct{}

func (nopNotifier) Notify(types.Notification) {}

// Board is the interactive assignment board for one company and activity
// date. It validates moves against locks and program bindings, tracks the
// unsaved diff and autosaves it through the configured Saver.
//
// All methods are safe for concurrent use. A Board is single-selection:
// calling Load again replaces the working set.
type Board struct {
	cfg    Config
	loader types.Loader
	saver  types.Saver

	logger   types.Logger
	metrics  types.MetricsCollector
	hooks    types.Hooks
	notifier types.Notifier

	store     *state.Store
	scheduler *autosave.Scheduler

	// ctx is the hook lifecycle context, cancelled on Close.
	ctx    context.Context
	cancel context.CancelFunc

	closed atomic.Bool

	// lockDegraded latches after the first "lock store missing" save
	// outcome so the degradation notice fires once per session.
	lockDegraded atomic.Bool
}

// New creates a Board with the given configuration and persistence
// endpoints.
//
// Parameters:
//   - cfg: Board configuration (nil uses DefaultConfig; missing fields are
//     filled with defaults)
//   - loader: Backing store reader (required)
//   - saver: Backing store writer (required)
//   - opts: Optional logger, metrics, hooks and notifier
//
// Returns:
//   - *Board: Initialized board; callers must Close it
//   - error: ErrLoaderRequired / ErrSaverRequired / ErrInvalidConfig
func New(cfg *Config, loader types.Loader, saver types.Saver, opts ...Option) (*Board, error) {
	if loader == nil {
		return nil, types.ErrLoaderRequired
	}
	if saver == nil {
		return nil, types.ErrSaverRequired
	}

	var config Config
	if cfg != nil {
		config = *cfg
	}
	SetDefaults(&config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidConfig, err)
	}

	b := &Board{
		cfg:      config,
		loader:   loader,
		saver:    saver,
		logger:   logging.NewNop(),
		metrics:  metrics.NewNop(),
		hooks:    hooks.NewNop(),
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(b)
	}

	config.ValidateWithWarnings(b.logger)

	b.ctx, b.cancel = context.WithCancel(context.Background())
	b.store = state.New(b.logger)
	b.scheduler = autosave.New(
		config.DebounceInterval,
		b.saveBatch,
		b.store.Dirty,
		b.onSaveTransition,
		b.logger,
		b.metrics,
	)

	return b, nil
}

// Load fetches the working set for one (company, activity date) selection
// and replaces the board's state with it. Any unsaved changes from a
// previous selection are discarded; callers confirm with the user first.
func (b *Board) Load(ctx context.Context, companyID, date string) error {
	if b.closed.Load() {
		return types.ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.OperationTimeout)
	defer cancel()

	data, err := b.loader.LoadBoard(ctx, companyID, date)
	if err != nil {
		return fmt.Errorf("load board %s/%s: %w", companyID, date, err)
	}

	b.store.Initialize(companyID, date, data)
	b.scheduler.MarkClean()
	b.metrics.RecordDirtyItems(0)

	b.logger.Info("board loaded",
		"company_id", companyID,
		"date", date,
		"items", len(data.Items),
		"resources", len(data.Resources),
		"locks", len(data.Locks),
	)

	return nil
}

// MoveItem moves an item to a target resource column, or to the unassigned
// pool when target is Unassigned.
//
// Rejections are results, not errors: a Decision with Allowed=false means
// the constraint engine refused the move and (unless silent) the user was
// already notified. Errors are reserved for malformed calls and lifecycle
// problems.
//
// Returns:
//   - Decision: Allowed, or the rejection reason
//   - error: ErrClosed / ErrNotLoaded / ErrUnknownItem / ErrUnknownResource /
//     ErrResourceNotActive
func (b *Board) MoveItem(itemID string, target types.ResourceID) (types.Decision, error) {
	if b.closed.Load() {
		return types.Decision{}, types.ErrClosed
	}
	if !b.store.Loaded() {
		return types.Decision{}, types.ErrNotLoaded
	}

	prev, ok := b.store.Item(itemID)
	if !ok {
		return types.Decision{}, fmt.Errorf("move item %s: %w", itemID, types.ErrUnknownItem)
	}

	decision, err := b.store.Reassign(itemID, target)
	if err != nil {
		return decision, err
	}

	b.metrics.RecordMove(decision.Reason)

	if !decision.Allowed {
		if !decision.Silent() {
			b.notifyRejection(decision.Reason, itemID, target)
		}

		return decision, nil
	}

	b.metrics.RecordDirtyItems(b.store.DirtyItemCount())

	if b.hooks.OnItemMoved != nil {
		go func() {
			if err := b.hooks.OnItemMoved(b.ctx, itemID, prev.Pending, target); err != nil {
				b.logger.Error("item moved hook error", "item_id", itemID, "error", err)
			}
		}()
	}

	b.syncSaveState()

	return decision, nil
}

// notifyRejection surfaces a non-silent move rejection as a toast.
func (b *Board) notifyRejection(reason types.RejectReason, itemID string, target types.ResourceID) {
	var code types.Code
	switch reason {
	case types.ReasonTargetLocked:
		code = types.CodeTargetLocked
	case types.ReasonSourceLocked:
		code = types.CodeSourceLocked
	case types.ReasonIncompatible:
		code = types.CodeIncompatibleProgram
	default:
		return
	}

	b.notifier.Notify(types.Notification{
		Category:   types.CategoryError,
		Code:       code,
		ItemID:     itemID,
		ResourceID: target,
	})
}

// Drop resolves a drag-and-drop gesture into a board mutation.
//
// Column drags reorder the columns: the dragged column takes the dropped-on
// column's position (list semantics, everything in between shifts by one).
// Item drags resolve the drop target to a destination resource: dropping on
// a column assigns to that column's resource, dropping on another item
// assigns to wherever that item currently sits, and dropping outside any
// target discards the gesture silently.
//
// Returns:
//   - Decision: Allowed, or the rejection reason (silent no-op for
//     discarded gestures)
//   - error: Malformed-call and lifecycle errors, as in MoveItem
func (b *Board) Drop(subject types.DragSubject, target types.DropTarget) (types.Decision, error) {
	if b.closed.Load() {
		return types.Decision{}, types.ErrClosed
	}
	if !b.store.Loaded() {
		return types.Decision{}, types.ErrNotLoaded
	}

	switch subject.Kind {
	case types.DragColumn:
		return b.dropColumn(types.ColumnID(subject.ID), target)
	case types.DragItem:
		return b.dropItem(subject.ID, target)
	default:
		return types.Decision{}, fmt.Errorf("drop: unknown drag kind %d", subject.Kind)
	}
}

func (b *Board) dropColumn(col types.ColumnID, target types.DropTarget) (types.Decision, error) {
	// Only a column-on-column drop reorders; anything else cancels the
	// gesture.
	if target.Kind != types.DropOnColumn {
		return types.Reject(types.ReasonNoop), nil
	}

	over := types.ColumnID(target.ID)
	if over == col {
		return types.Reject(types.ReasonNoop), nil
	}

	to := -1
	for i, c := range b.store.ColumnOrder() {
		if c == over {
			to = i

			break
		}
	}
	if to < 0 {
		return types.Decision{}, fmt.Errorf("drop column on %s: %w", over, types.ErrInvalidPosition)
	}

	if err := b.store.MoveColumn(col, to); err != nil {
		return types.Decision{}, err
	}

	b.metrics.RecordColumnReorder()

	return types.Allow(), nil
}

func (b *Board) dropItem(itemID string, target types.DropTarget) (types.Decision, error) {
	var dest types.ResourceID

	switch target.Kind {
	case types.DropNone:
		return types.Reject(types.ReasonNoop), nil
	case types.DropOnColumn:
		if types.ColumnID(target.ID) == types.UnassignedColumn {
			dest = types.Unassigned
		} else {
			dest = types.ResourceID(target.ID)
		}
	case types.DropOnItem:
		sibling, ok := b.store.Item(target.ID)
		if !ok {
			return types.Decision{}, fmt.Errorf("drop on item %s: %w", target.ID, types.ErrUnknownItem)
		}
		dest = sibling.Pending
	default:
		return types.Decision{}, fmt.Errorf("drop item: unknown drop kind %d", target.Kind)
	}

	return b.MoveItem(itemID, dest)
}

// CanMove runs the constraint engine for a proposed move without mutating
// anything. Used for drag-over affordances.
func (b *Board) CanMove(itemID string, target types.ResourceID) (types.Decision, error) {
	if b.closed.Load() {
		return types.Decision{}, types.ErrClosed
	}
	if !b.store.Loaded() {
		return types.Decision{}, types.ErrNotLoaded
	}

	return b.store.CanMove(itemID, target)
}

// SwapColumns exchanges the columns at two 1-based positions. This is the
// manual numeric swap affordance next to each column header.
func (b *Board) SwapColumns(p, q int) error {
	if b.closed.Load() {
		return types.ErrClosed
	}
	if !b.store.Loaded() {
		return types.ErrNotLoaded
	}

	if err := b.store.SwapColumns(p, q); err != nil {
		return err
	}

	b.metrics.RecordColumnReorder()

	return nil
}

// ActivateResource gives a resource a board column. No-op if already
// active.
func (b *Board) ActivateResource(id types.ResourceID) error {
	if b.closed.Load() {
		return types.ErrClosed
	}
	if !b.store.Loaded() {
		return types.ErrNotLoaded
	}

	return b.store.Activate(id)
}

// DeactivateResource removes a resource's column. Items still assigned to
// it revert to the unassigned pool and its lock record clears.
//
// Returns:
//   - int: Number of items reverted to unassigned
//   - error: ErrClosed / ErrNotLoaded / ErrUnknownResource
func (b *Board) DeactivateResource(id types.ResourceID) (int, error) {
	if b.closed.Load() {
		return 0, types.ErrClosed
	}
	if !b.store.Loaded() {
		return 0, types.ErrNotLoaded
	}

	cleared, err := b.store.Deactivate(id)
	if err != nil {
		return 0, err
	}

	b.metrics.RecordDirtyItems(b.store.DirtyItemCount())
	b.syncSaveState()

	return cleared, nil
}

// ToggleLock flips the lock flag of an active resource column.
//
// Locking an over-capacity column is rejected with ErrLockedOverCapacity
// and surfaces a notification; unlocking always succeeds.
//
// Returns:
//   - bool: The new lock state
//   - error: ErrLockedOverCapacity on the rejected transition, plus the
//     usual malformed-call and lifecycle errors
func (b *Board) ToggleLock(id types.ResourceID) (bool, error) {
	if b.closed.Load() {
		return false, types.ErrClosed
	}
	if !b.store.Loaded() {
		return false, types.ErrNotLoaded
	}

	locked, err := b.store.ToggleLock(id)
	if err != nil {
		if errors.Is(err, types.ErrLockedOverCapacity) {
			b.metrics.RecordLockRejection()
			b.notifier.Notify(types.Notification{
				Category:   types.CategoryError,
				Code:       types.CodeLockOverCapacity,
				ResourceID: id,
			})
		}

		return false, err
	}

	b.metrics.RecordLockToggle(locked)
	b.syncSaveState()

	return locked, nil
}

// SetProgramBinding sets or clears the program binding of a boat-style
// resource. Assigned items whose program key does not match the new binding
// are evicted back to the unassigned pool, with a notification carrying the
// eviction count.
//
// Returns:
//   - []string: Evicted item ids (nil when nothing was evicted)
//   - error: ErrBindingNotSupported for driver-style resources, plus the
//     usual malformed-call and lifecycle errors
func (b *Board) SetProgramBinding(id types.ResourceID, key string) ([]string, error) {
	if b.closed.Load() {
		return nil, types.ErrClosed
	}
	if !b.store.Loaded() {
		return nil, types.ErrNotLoaded
	}

	evicted, err := b.store.SetProgramBinding(id, key)
	if err != nil {
		return nil, err
	}

	if len(evicted) > 0 {
		b.metrics.RecordEviction(len(evicted))
		b.metrics.RecordDirtyItems(b.store.DirtyItemCount())
		b.notifier.Notify(types.Notification{
			Category:   types.CategoryInfo,
			Code:       types.CodeProgramEviction,
			ResourceID: id,
			Count:      len(evicted),
		})

		if b.hooks.OnEviction != nil {
			go func() {
				if err := b.hooks.OnEviction(b.ctx, id, evicted); err != nil {
					b.logger.Error("eviction hook error", "resource_id", id, "error", err)
				}
			}()
		}
	}

	b.syncSaveState()

	return evicted, nil
}

// SetSecondaryBindings updates the guide/restaurant metadata of a
// boat-style resource. Pure metadata: never evicts, never constrains moves.
func (b *Board) SetSecondaryBindings(id types.ResourceID, bindings types.SecondaryBindings) error {
	if b.closed.Load() {
		return types.ErrClosed
	}
	if !b.store.Loaded() {
		return types.ErrNotLoaded
	}

	if err := b.store.SetSecondaryBindings(id, bindings); err != nil {
		return err
	}

	b.syncSaveState()

	return nil
}

// Reset clears the whole board: every pending assignment reverts to the
// unassigned pool, all columns deactivate and all locks clear. Destructive;
// callers confirm with the user first. The cleared state still autosaves so
// the backing store converges with what the user sees.
func (b *Board) Reset() error {
	if b.closed.Load() {
		return types.ErrClosed
	}
	if !b.store.Loaded() {
		return types.ErrNotLoaded
	}

	b.store.Reset()
	b.metrics.RecordDirtyItems(b.store.DirtyItemCount())
	b.syncSaveState()

	return nil
}

// SaveNow persists the pending diff immediately, cancelling any armed
// autosave timer. Outcomes surface as notifications on this path; the
// silent autosave path only notifies on lock-store degradation.
func (b *Board) SaveNow(ctx context.Context) error {
	if b.closed.Load() {
		return types.ErrClosed
	}

	if err := b.scheduler.SaveNow(ctx); err != nil {
		b.notifier.Notify(types.Notification{
			Category: types.CategoryError,
			Code:     types.CodeSaveFailed,
		})

		return err
	}

	b.notifier.Notify(types.Notification{
		Category: types.CategorySuccess,
		Code:     types.CodeSaved,
	})

	return nil
}

// saveBatch ships the pending diff to the Saver. It is the scheduler's
// SaveFunc and runs serialized with other batches.
//
// Per-entry failures do not abort the batch: everything that did persist is
// committed so a retry only re-sends the failures. A Saver reporting a
// missing lock store downgrades lock persistence to local-only for the rest
// of the session instead of failing the batch.
func (b *Board) saveBatch(ctx context.Context, manual bool) error {
	diff := b.store.Diff()
	if diff.Empty() {
		return nil
	}

	batchID := uuid.NewString()
	companyID := b.store.CompanyID()
	date := b.store.Date()

	ctx, cancel := context.WithTimeout(ctx, b.cfg.SaveTimeout)
	defer cancel()

	b.logger.Debug("save batch start",
		"batch_id", batchID,
		"items", len(diff.Items),
		"locks", len(diff.Locks),
		"manual", manual,
	)

	var errs []error

	savedItems := make([]string, 0, len(diff.Items))
	for _, change := range diff.Items {
		if err := b.saver.SaveAssignment(ctx, companyID, date, change.ItemID, change.To); err != nil {
			errs = append(errs, fmt.Errorf("item %s: %w", change.ItemID, err))

			continue
		}
		savedItems = append(savedItems, change.ItemID)
	}

	savedLocks := make([]types.ResourceID, 0, len(diff.Locks))
	for _, rec := range diff.Locks {
		err := b.saver.SaveLock(ctx, companyID, rec)
		switch {
		case err == nil:
			savedLocks = append(savedLocks, rec.ResourceID)
		case types.IsLockStoreMissingError(err):
			// Lock state stays local for this session; the board keeps
			// working instead of failing every batch.
			savedLocks = append(savedLocks, rec.ResourceID)
			if b.lockDegraded.CompareAndSwap(false, true) {
				b.logger.Warn("lock store missing, keeping lock state local only",
					"batch_id", batchID,
					"error", err,
				)
				b.notifier.Notify(types.Notification{
					Category:   types.CategoryInfo,
					Code:       types.CodeLockLocalOnly,
					ResourceID: rec.ResourceID,
				})
			}
		default:
			errs = append(errs, fmt.Errorf("lock %s: %w", rec.ResourceID, err))
		}
	}

	if len(errs) == 0 {
		b.store.Commit()
		b.metrics.RecordDirtyItems(b.store.DirtyItemCount())
		b.logger.Info("save batch committed",
			"batch_id", batchID,
			"items", len(savedItems),
			"locks", len(savedLocks),
			"manual", manual,
		)

		return nil
	}

	// Partial failure: commit what landed so the retry shrinks to the
	// failures.
	b.store.CommitItems(savedItems)
	b.store.CommitLocks(savedLocks)
	b.metrics.RecordDirtyItems(b.store.DirtyItemCount())

	err := fmt.Errorf("%w: %w", types.ErrSaveFailed, errors.Join(errs...))

	b.logger.Error("save batch failed",
		"batch_id", batchID,
		"failed", len(errs),
		"saved_items", len(savedItems),
		"manual", manual,
		"error", err,
	)

	if b.hooks.OnSaveFailed != nil {
		go func() {
			if hookErr := b.hooks.OnSaveFailed(b.ctx, err, manual); hookErr != nil {
				b.logger.Error("save failed hook error", "error", hookErr)
			}
		}()
	}

	return err
}

// onSaveTransition bridges scheduler state changes to the lifecycle hook.
func (b *Board) onSaveTransition(from, to types.SaveState) {
	if b.hooks.OnSaveStateChanged == nil {
		return
	}

	go func() {
		if err := b.hooks.OnSaveStateChanged(b.ctx, from, to); err != nil {
			b.logger.Error("save state hook error", "from", from, "to", to, "error", err)
		}
	}()
}

// syncSaveState aligns the scheduler with the store's dirtiness after a
// mutation. A mutation that reverted the last pending change (diff shrank
// to empty) disarms the timer instead of saving nothing.
func (b *Board) syncSaveState() {
	if b.store.Dirty() {
		b.scheduler.MarkDirty()
	} else {
		b.scheduler.MarkClean()
	}
}

// SaveState returns the current autosave lifecycle state.
func (b *Board) SaveState() types.SaveState {
	return b.scheduler.State()
}

// Dirty reports whether any unsaved change exists.
func (b *Board) Dirty() bool {
	return b.store.Dirty()
}

// DirtyItemCount returns the number of items whose pending assignment
// differs from the committed one.
func (b *Board) DirtyItemCount() int {
	return b.store.DirtyItemCount()
}

// CompanyID returns the loaded company id, empty before Load.
func (b *Board) CompanyID() string {
	return b.store.CompanyID()
}

// Date returns the loaded activity date, empty before Load.
func (b *Board) Date() string {
	return b.store.Date()
}

// Items returns the working copy of every item in load order.
func (b *Board) Items() []types.Item {
	return b.store.Items()
}

// Item returns one item's working copy by id.
func (b *Board) Item(id string) (types.Item, bool) {
	return b.store.Item(id)
}

// ActiveResources returns the resources with a board column, in column
// order.
func (b *Board) ActiveResources() []types.Resource {
	return b.store.ActiveResources()
}

// InactiveResources returns the master resources without a board column,
// sorted by id. This feeds the "add a column" affordance.
func (b *Board) InactiveResources() []types.Resource {
	return b.store.InactiveResources()
}

// ColumnOrder returns the current column ids, unassigned pool first.
func (b *Board) ColumnOrder() []types.ColumnID {
	return b.store.ColumnOrder()
}

// Lock returns the lock/binding record for a resource. A resource without
// stored state yields a zero record.
func (b *Board) Lock(id types.ResourceID) types.LockRecord {
	return b.store.Lock(id)
}

// Snapshot returns a read-only view of the committed board state, suitable
// for export. Pending (unsaved) edits are not included.
func (b *Board) Snapshot() *types.BoardSnapshot {
	return b.store.Snapshot()
}

// MasterResources returns the company's full resource list from the
// backing store, including resources not active on any board.
func (b *Board) MasterResources(ctx context.Context, companyID string) ([]types.Resource, error) {
	if b.closed.Load() {
		return nil, types.ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.OperationTimeout)
	defer cancel()

	return b.loader.MasterResources(ctx, companyID)
}

// Subscribe returns a channel receiving board change events, and an
// unsubscribe function. The channel is buffered; a slow receiver misses
// events and re-reads current state on its next receive.
func (b *Board) Subscribe() (<-chan Change, func()) {
	inner, unsubscribe := b.store.Subscribe()

	out := make(chan Change, 8)
	go func() {
		defer close(out)
		for ev := range inner {
			select {
			case out <- Change{Kind: ChangeKind(ev.Kind)}:
			default:
			}
		}
	}()

	return out, unsubscribe
}

// Close shuts the board down: the autosave timer stops, subscriber
// channels close and hook contexts cancel. Pending unsaved changes are NOT
// flushed; call SaveNow first if they should survive.
//
// Close is idempotent.
func (b *Board) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.scheduler.Close()
	b.store.CloseSubscribers()
	b.cancel()

	b.logger.Info("board closed", "company_id", b.store.CompanyID(), "date", b.store.Date())

	return nil
}
