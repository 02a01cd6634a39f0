package state

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/zeebo/xxh3"

	"github.com/cruisedesk/boardkit/capacity"
	"github.com/cruisedesk/boardkit/types"
)

// Store is the in-memory assignment state for one (company, activity date)
// board.
//
// It is instantiated fresh on every board load and discarded on navigation
// or date change; the only cross-date memory is what the persistence
// adapters hold.
//
// Thread Safety: all methods are safe for concurrent use. Reads take a
// shared lock, mutations an exclusive one, and every mutation publishes a
// change event to subscribers after releasing the lock.
type Store struct {
	mu sync.RWMutex

	companyID string
	date      string
	loaded    bool

	items     map[string]*types.Item
	itemOrder []string

	resources map[types.ResourceID]types.Resource
	active    map[types.ResourceID]struct{}
	order     columnOrder

	locks map[types.ResourceID]types.LockRecord
	// lockTouched tracks resources whose lock record changed since the
	// last lock commit; Diff emits the current (possibly zero) record for
	// each so adapters can upsert or delete.
	lockTouched map[types.ResourceID]struct{}

	dirtyItems int

	// cleanFP is the fingerprint of the last state known to be fully
	// persisted (set on Initialize and full Commit). Mutations compare
	// against it to detect edit sequences that reverted everything,
	// which the touched-lock set alone cannot see. Partial commits
	// leave the persisted lock state unknowable, so they invalidate it.
	cleanFP      uint64
	cleanFPKnown bool

	logger types.Logger

	// Fan-out to subscribers
	subscribers      *xsync.Map[uint64, *subscriber]
	nextSubscriberID atomic.Uint64
}

// New creates an empty store. Initialize must be called before any other
// method does useful work.
//
// Parameters:
//   - logger: Logger for integrity warnings and debug traces
//
// Returns:
//   - *Store: Empty store instance
func New(logger types.Logger) *Store {
	return &Store{
		logger:      logger,
		subscribers: xsync.NewMap[uint64, *subscriber](),
	}
}

// Initialize replaces the store contents with freshly loaded board data.
//
// Semantics:
//   - every item's pending assignment starts equal to its committed one
//   - the active resource set is the union of resources referenced by any
//     committed assignment and resources referenced by a non-zero lock
//     record (a pre-configured boat with zero passengers still gets a column)
//   - lock records referencing a resource absent from the master list are
//     ignored; they never activate a column
//   - an item whose committed assignment references a resource absent from
//     the master list surfaces in the unassigned pool instead of vanishing;
//     its stored assignment is only rewritten by an explicit user move
//   - the column order starts as [unassigned, active resources in master
//     list order]
//   - the store starts clean (no pending diff)
func (s *Store) Initialize(companyID, date string, data *types.BoardData) {
	s.mu.Lock()

	s.companyID = companyID
	s.date = date
	s.loaded = true

	s.resources = make(map[types.ResourceID]types.Resource, len(data.Resources))
	for _, r := range data.Resources {
		if types.ColumnFor(r.ID) == types.UnassignedColumn {
			// Reserved column id; a resource named like the pseudo-column
			// would corrupt the order invariant.
			s.logger.Warn("dropping resource with reserved id", "resource", r.ID)
			continue
		}
		s.resources[r.ID] = r
	}

	s.items = make(map[string]*types.Item, len(data.Items))
	s.itemOrder = make([]string, 0, len(data.Items))
	s.active = make(map[types.ResourceID]struct{})
	for _, it := range data.Items {
		if it.Committed != types.Unassigned {
			if _, ok := s.resources[it.Committed]; !ok {
				// Integrity gap in the backing data. The working copy
				// shows the item in the unassigned pool; the persisted
				// field is only rewritten if the user reassigns it.
				s.logger.Warn("item references unknown resource",
					"item", it.ID, "resource", it.Committed)

				it.Committed = types.Unassigned
			}
		}
		it.Pending = it.Committed
		cp := it
		s.items[it.ID] = &cp
		s.itemOrder = append(s.itemOrder, it.ID)

		if it.Committed != types.Unassigned {
			s.active[it.Committed] = struct{}{}
		}
	}

	s.locks = make(map[types.ResourceID]types.LockRecord, len(data.Locks))
	s.lockTouched = make(map[types.ResourceID]struct{})
	for _, rec := range data.Locks {
		if _, ok := s.resources[rec.ResourceID]; !ok {
			s.logger.Debug("ignoring orphaned lock record", "resource", rec.ResourceID)
			continue
		}
		rec.Date = date
		s.locks[rec.ResourceID] = rec
		if !rec.IsZero() {
			s.active[rec.ResourceID] = struct{}{}
		}
	}

	s.order = newColumnOrder()
	for _, r := range data.Resources {
		if _, ok := s.active[r.ID]; ok {
			s.order.append(types.ColumnFor(r.ID))
		}
	}

	s.dirtyItems = 0
	s.cleanFP = s.fingerprintLocked()
	s.cleanFPKnown = true

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeReset})
}

// Loaded reports whether Initialize has run.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// CompanyID returns the company the store was loaded for.
func (s *Store) CompanyID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.companyID
}

// Date returns the activity date the store was loaded for.
func (s *Store) Date() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.date
}

// Items returns copies of all items in load order.
func (s *Store) Items() []types.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.itemsLocked()
}

func (s *Store) itemsLocked() []types.Item {
	out := make([]types.Item, 0, len(s.itemOrder))
	for _, id := range s.itemOrder {
		out = append(out, *s.items[id])
	}

	return out
}

// Item returns a copy of one item.
func (s *Store) Item(id string) (types.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return types.Item{}, false
	}

	return *it, true
}

// Resource returns one master-list resource.
func (s *Store) Resource(id types.ResourceID) (types.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]

	return r, ok
}

// ActiveResources returns the resources that currently have a column, in
// column order.
func (s *Store) ActiveResources() []types.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Resource, 0, len(s.active))
	for _, col := range s.order {
		if col == types.UnassignedColumn {
			continue
		}
		if r, ok := s.resources[types.ResourceID(col)]; ok {
			out = append(out, r)
		}
	}

	return out
}

// InactiveResources returns master-list resources without a column, in
// master-list-independent sorted order. This backs the "available to add"
// affordance.
func (s *Store) InactiveResources() []types.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Resource, 0, len(s.resources))
	for id, r := range s.resources {
		if _, ok := s.active[id]; !ok {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ColumnOrder returns a copy of the current column order.
func (s *Store) ColumnOrder() []types.ColumnID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.ColumnID, len(s.order))
	copy(out, s.order)

	return out
}

// Lock returns the lock/binding record for a resource. A resource without
// stored state yields a zero record carrying the resource id and date.
func (s *Store) Lock(id types.ResourceID) types.LockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lockLocked(id)
}

func (s *Store) lockLocked(id types.ResourceID) types.LockRecord {
	if rec, ok := s.locks[id]; ok {
		return rec
	}

	return types.LockRecord{ResourceID: id, Date: s.date}
}

// Activate gives a resource a board column. No-op if already active.
//
// Returns:
//   - error: types.ErrUnknownResource if the id is not in the master list
func (s *Store) Activate(id types.ResourceID) error {
	s.mu.Lock()

	if _, ok := s.resources[id]; !ok {
		s.mu.Unlock()

		return fmt.Errorf("activate %s: %w", id, types.ErrUnknownResource)
	}
	if _, ok := s.active[id]; ok {
		s.mu.Unlock()

		return nil
	}

	s.active[id] = struct{}{}
	s.order.append(types.ColumnFor(id))

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeActivation})

	return nil
}

// Deactivate removes a resource's column.
//
// Every item still assigned to the resource reverts to the unassigned pool
// (the UI-level guard only offers deactivation for empty columns; the
// store still reassigns orphans rather than erroring). The
// resource's lock/binding record is cleared so it does not re-activate the
// column on the next load.
//
// Returns:
//   - int: Number of items reverted to unassigned
//   - error: types.ErrUnknownResource if the id is not in the master list
func (s *Store) Deactivate(id types.ResourceID) (int, error) {
	s.mu.Lock()

	if _, ok := s.resources[id]; !ok {
		s.mu.Unlock()

		return 0, fmt.Errorf("deactivate %s: %w", id, types.ErrUnknownResource)
	}
	if _, ok := s.active[id]; !ok {
		s.mu.Unlock()

		return 0, nil
	}

	cleared := 0
	for _, itemID := range s.itemOrder {
		it := s.items[itemID]
		if it.Pending == id {
			s.setPendingLocked(it, types.Unassigned)
			cleared++
		}
	}

	delete(s.active, id)
	s.order.remove(types.ColumnFor(id))

	if rec := s.lockLocked(id); !rec.IsZero() {
		delete(s.locks, id)
		s.lockTouched[id] = struct{}{}
	}
	s.reconcileRevertLocked()

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeActivation})
	if cleared > 0 {
		s.publish(Event{Kind: ChangeAssignment})
	}

	return cleared, nil
}

// setPendingLocked mutates an item's working assignment and keeps the dirty
// counter consistent. Caller holds the write lock.
func (s *Store) setPendingLocked(it *types.Item, target types.ResourceID) {
	wasDirty := it.IsDirty()
	it.Pending = target
	if it.IsDirty() != wasDirty {
		if wasDirty {
			s.dirtyItems--
		} else {
			s.dirtyItems++
		}
	}
}

// Reassign applies a validated move of one item to a target resource (or to
// the unassigned pool).
//
// The constraint engine runs first; a rejecting decision leaves all state
// unchanged. Moving an item back to its committed assignment clears that
// item's contribution to the pending diff.
//
// Parameters:
//   - itemID: Item to move
//   - target: Destination resource, types.Unassigned for the pool
//
// Returns:
//   - types.Decision: Allowed, or the rejection reason
//   - error: types.ErrUnknownItem / types.ErrUnknownResource /
//     types.ErrResourceNotActive for malformed calls (never for a plain
//     user-level rejection)
func (s *Store) Reassign(itemID string, target types.ResourceID) (types.Decision, error) {
	s.mu.Lock()

	it, ok := s.items[itemID]
	if !ok {
		s.mu.Unlock()

		return types.Decision{}, fmt.Errorf("reassign %s: %w", itemID, types.ErrUnknownItem)
	}

	decision, err := s.canMoveLocked(it, target)
	if err != nil || !decision.Allowed {
		s.mu.Unlock()

		return decision, err
	}

	s.setPendingLocked(it, target)
	s.reconcileRevertLocked()

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeAssignment})

	return decision, nil
}

// CanMove runs the constraint engine for a proposed move without mutating
// anything.
func (s *Store) CanMove(itemID string, target types.ResourceID) (types.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[itemID]
	if !ok {
		return types.Decision{}, fmt.Errorf("can-move %s: %w", itemID, types.ErrUnknownItem)
	}

	return s.canMoveLocked(it, target)
}

// ToggleLock flips the lock flag of an active resource.
//
// Locking an over-capacity resource is rejected: the caller surfaces the
// rejection as a user-facing notification, state stays unchanged.
//
// Returns:
//   - bool: The new lock state
//   - error: types.ErrLockedOverCapacity on the rejected transition,
//     types.ErrUnknownResource / types.ErrResourceNotActive for malformed calls
func (s *Store) ToggleLock(id types.ResourceID) (bool, error) {
	s.mu.Lock()

	r, ok := s.resources[id]
	if !ok {
		s.mu.Unlock()

		return false, fmt.Errorf("toggle lock %s: %w", id, types.ErrUnknownResource)
	}
	if _, ok := s.active[id]; !ok {
		s.mu.Unlock()

		return false, fmt.Errorf("toggle lock %s: %w", id, types.ErrResourceNotActive)
	}

	rec := s.lockLocked(id)
	if !rec.Locked && capacity.IsOverCapacity(r, s.itemsLocked()) {
		s.mu.Unlock()

		return false, fmt.Errorf("toggle lock %s: %w", id, types.ErrLockedOverCapacity)
	}

	rec.Locked = !rec.Locked
	s.locks[id] = rec
	s.lockTouched[id] = struct{}{}
	s.reconcileRevertLocked()

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeLocks})

	return rec.Locked, nil
}

// SetProgramBinding sets or clears the program (compatibility) binding of a
// boat-style resource.
//
// Setting a non-empty binding different from the current one evicts every
// assigned item whose program key does not match; the evicted item ids are
// returned so the caller can notify the user. Clearing the binding never
// evicts.
//
// Returns:
//   - []string: Evicted item ids (nil when nothing was evicted)
//   - error: types.ErrBindingNotSupported for driver-style resources,
//     types.ErrUnknownResource / types.ErrResourceNotActive for malformed calls
func (s *Store) SetProgramBinding(id types.ResourceID, key string) ([]string, error) {
	s.mu.Lock()

	r, ok := s.resources[id]
	if !ok {
		s.mu.Unlock()

		return nil, fmt.Errorf("set program %s: %w", id, types.ErrUnknownResource)
	}
	if r.Kind != types.KindBoat {
		s.mu.Unlock()

		return nil, fmt.Errorf("set program %s: %w", id, types.ErrBindingNotSupported)
	}
	if _, ok := s.active[id]; !ok {
		s.mu.Unlock()

		return nil, fmt.Errorf("set program %s: %w", id, types.ErrResourceNotActive)
	}

	rec := s.lockLocked(id)
	if rec.ProgramBinding == key {
		s.mu.Unlock()

		return nil, nil
	}

	var evicted []string
	if key != "" {
		for _, itemID := range s.itemOrder {
			it := s.items[itemID]
			if it.Pending == id && it.ProgramKey != key {
				s.setPendingLocked(it, types.Unassigned)
				evicted = append(evicted, it.ID)
			}
		}
	}

	rec.ProgramBinding = key
	s.locks[id] = rec
	s.lockTouched[id] = struct{}{}
	s.reconcileRevertLocked()

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeLocks})
	if len(evicted) > 0 {
		s.publish(Event{Kind: ChangeAssignment})
	}

	return evicted, nil
}

// SetSecondaryBindings updates the guide/restaurant metadata of a
// boat-style resource. Pure metadata: never evicts, never constrains moves.
func (s *Store) SetSecondaryBindings(id types.ResourceID, b types.SecondaryBindings) error {
	s.mu.Lock()

	r, ok := s.resources[id]
	if !ok {
		s.mu.Unlock()

		return fmt.Errorf("set bindings %s: %w", id, types.ErrUnknownResource)
	}
	if r.Kind != types.KindBoat {
		s.mu.Unlock()

		return fmt.Errorf("set bindings %s: %w", id, types.ErrBindingNotSupported)
	}
	if _, ok := s.active[id]; !ok {
		s.mu.Unlock()

		return fmt.Errorf("set bindings %s: %w", id, types.ErrResourceNotActive)
	}

	rec := s.lockLocked(id)
	if rec.Bindings == b {
		s.mu.Unlock()

		return nil
	}

	rec.Bindings = b
	s.locks[id] = rec
	s.lockTouched[id] = struct{}{}
	s.reconcileRevertLocked()

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeLocks})

	return nil
}

// Reset clears the whole board: every pending assignment reverts to the
// unassigned pool, all resources deactivate, all locks and bindings clear
// and the column order shrinks to just the unassigned pseudo-column.
//
// This is a destructive bulk operation; the caller confirms with the user
// before invoking it.
func (s *Store) Reset() {
	s.mu.Lock()

	for _, itemID := range s.itemOrder {
		s.setPendingLocked(s.items[itemID], types.Unassigned)
	}

	for id, rec := range s.locks {
		if !rec.IsZero() {
			s.lockTouched[id] = struct{}{}
		}
	}
	s.locks = make(map[types.ResourceID]types.LockRecord)
	s.active = make(map[types.ResourceID]struct{})
	s.order = newColumnOrder()

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeReset})
}

// Dirty reports whether any unsaved change exists (item diff or touched
// lock records).
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirtyItems > 0 || len(s.lockTouched) > 0
}

// DirtyItemCount returns the number of items whose pending assignment
// differs from the committed one.
func (s *Store) DirtyItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirtyItems
}

// Diff returns the payload to persist: the changed items plus the current
// record for every lock touched since the last commit. Records that became
// zero signal a delete to the adapter.
//
// Only touched lock records are emitted, not the full lock map. Each
// record is an independent upsert keyed by (company, resource, date), so
// re-sending untouched records would write the same rows back; the
// narrower payload is equivalent and keeps partial-failure retries small.
func (s *Store) Diff() types.ChangeSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cs types.ChangeSet
	for _, id := range s.itemOrder {
		it := s.items[id]
		if it.IsDirty() {
			cs.Items = append(cs.Items, types.ItemChange{ItemID: it.ID, From: it.Committed, To: it.Pending})
		}
	}

	touched := make([]types.ResourceID, 0, len(s.lockTouched))
	for id := range s.lockTouched {
		touched = append(touched, id)
	}
	sort.Slice(touched, func(i, j int) bool { return touched[i] < touched[j] })
	for _, id := range touched {
		cs.Locks = append(cs.Locks, s.lockLocked(id))
	}

	return cs
}

// Commit reconciles committed = pending for every item and clears the
// touched-lock set. Called after a fully successful save batch.
func (s *Store) Commit() {
	s.mu.Lock()

	for _, id := range s.itemOrder {
		it := s.items[id]
		it.Committed = it.Pending
	}
	s.dirtyItems = 0
	s.lockTouched = make(map[types.ResourceID]struct{})
	for id, rec := range s.locks {
		if rec.IsZero() {
			delete(s.locks, id)
		}
	}
	s.cleanFP = s.fingerprintLocked()
	s.cleanFPKnown = true

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeCommit})
}

// CommitItems reconciles committed = pending for the given items only.
// Used after a partially failed batch so a retry re-sends only what failed.
// The clean fingerprint is dropped: with only part of the batch persisted
// there is no single state the whole store can revert to.
func (s *Store) CommitItems(ids []string) {
	s.mu.Lock()

	s.cleanFPKnown = false
	for _, id := range ids {
		it, ok := s.items[id]
		if !ok || !it.IsDirty() {
			continue
		}
		it.Committed = it.Pending
		s.dirtyItems--
	}

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeCommit})
}

// CommitLocks clears the touched set for the given resources after their
// records persisted.
func (s *Store) CommitLocks(ids []types.ResourceID) {
	s.mu.Lock()

	s.cleanFPKnown = false
	for _, id := range ids {
		delete(s.lockTouched, id)
	}

	s.mu.Unlock()
}

// Snapshot returns the committed, read-only view of the board in column
// order. Export adapters consume this; it reflects persisted state only.
func (s *Store) Snapshot() *types.BoardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &types.BoardSnapshot{
		CompanyID: s.companyID,
		Date:      s.date,
	}

	byResource := make(map[types.ResourceID][]types.Item)
	for _, id := range s.itemOrder {
		it := *s.items[id]
		if it.Committed == types.Unassigned {
			snap.Unassigned = append(snap.Unassigned, it)
			continue
		}
		byResource[it.Committed] = append(byResource[it.Committed], it)
	}

	for _, col := range s.order {
		if col == types.UnassignedColumn {
			continue
		}
		id := types.ResourceID(col)
		r, ok := s.resources[id]
		if !ok {
			continue
		}
		snap.Columns = append(snap.Columns, types.ColumnSnapshot{
			Resource: r,
			Lock:     s.lockLocked(id),
			Items:    byResource[id],
		})
	}

	return snap
}

// Fingerprint returns a stable hash of the pending assignment mapping and
// the non-zero lock records. Two boards with identical working state
// produce the same value; a record that reverted to zero hashes the same
// as one that never existed, so a toggle-on-toggle-off sequence lands back
// on the clean fingerprint and disarms the save cycle.
func (s *Store) Fingerprint() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.fingerprintLocked()
}

func (s *Store) fingerprintLocked() uint64 {
	var sb strings.Builder
	for _, id := range s.itemOrder {
		it := s.items[id]
		sb.WriteString(it.ID)
		sb.WriteByte(0x1f)
		sb.WriteString(string(it.Pending))
		sb.WriteByte(0x1e)
	}

	lockIDs := make([]types.ResourceID, 0, len(s.locks))
	for id := range s.locks {
		lockIDs = append(lockIDs, id)
	}
	sort.Slice(lockIDs, func(i, j int) bool { return lockIDs[i] < lockIDs[j] })
	for _, id := range lockIDs {
		rec := s.locks[id]
		if rec.IsZero() {
			continue
		}
		sb.WriteString(string(id))
		sb.WriteByte(0x1f)
		if rec.Locked {
			sb.WriteByte('L')
		}
		sb.WriteString(rec.ProgramBinding)
		sb.WriteByte(0x1f)
		sb.WriteString(rec.Bindings.GuideID)
		sb.WriteByte(0x1f)
		sb.WriteString(rec.Bindings.RestaurantID)
		sb.WriteByte(0x1e)
	}

	return xxh3.HashString(sb.String())
}

// reconcileRevertLocked drops the touched-lock set when the working state
// fingerprint matches the last fully persisted state. The item diff is
// exact on its own (the dirty counter tracks per-item reverts); lock
// records need the fingerprint because the touched set remembers the
// toggle, not whether it was undone. Caller holds the write lock.
func (s *Store) reconcileRevertLocked() {
	if s.dirtyItems > 0 || len(s.lockTouched) == 0 || !s.cleanFPKnown {
		return
	}
	if s.fingerprintLocked() != s.cleanFP {
		return
	}

	s.lockTouched = make(map[types.ResourceID]struct{})
	for id, rec := range s.locks {
		if rec.IsZero() {
			delete(s.locks, id)
		}
	}
}
