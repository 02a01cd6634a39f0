package testing

import (
	"context"
	"sync"

	"github.com/cruisedesk/boardkit/types"
)

// MemoryStore is an in-memory Loader/Saver for tests. It records every
// persisted assignment and lock record, and supports per-entry failure
// injection to exercise partial-save reconciliation.
//
// Safe for concurrent use; the autosave goroutine writes while tests read.
type MemoryStore struct {
	mu sync.Mutex

	board *types.BoardData

	assignments map[string]types.ResourceID
	locks       map[types.ResourceID]types.LockRecord

	loadErr  error
	itemErrs map[string]error
	lockErr  error

	saveCalls int
}

var (
	_ types.Loader = (*MemoryStore)(nil)
	_ types.Saver  = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store. Call SetBoard before using it as
// a Loader.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assignments: make(map[string]types.ResourceID),
		locks:       make(map[types.ResourceID]types.LockRecord),
		itemErrs:    make(map[string]error),
	}
}

// SetBoard sets the payload LoadBoard returns.
func (m *MemoryStore) SetBoard(data *types.BoardData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.board = data
}

// FailLoad makes LoadBoard return err (nil clears).
func (m *MemoryStore) FailLoad(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailItem makes SaveAssignment for the given item return err (nil clears).
func (m *MemoryStore) FailItem(itemID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.itemErrs, itemID)
	} else {
		m.itemErrs[itemID] = err
	}
}

// FailLocks makes every SaveLock call return err (nil clears).
func (m *MemoryStore) FailLocks(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockErr = err
}

// LoadBoard implements types.Loader.
func (m *MemoryStore) LoadBoard(_ context.Context, _, _ string) (*types.BoardData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}

	return m.board, nil
}

// MasterResources implements types.Loader.
func (m *MemoryStore) MasterResources(_ context.Context, _ string) ([]types.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.board == nil {
		return nil, nil
	}

	return append([]types.Resource(nil), m.board.Resources...), nil
}

// SaveAssignment implements types.Saver.
func (m *MemoryStore) SaveAssignment(_ context.Context, _, _, itemID string, target types.ResourceID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveCalls++
	if err := m.itemErrs[itemID]; err != nil {
		return err
	}

	m.assignments[itemID] = target

	return nil
}

// SaveLock implements types.Saver. A zero record deletes.
func (m *MemoryStore) SaveLock(_ context.Context, _ string, rec types.LockRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveCalls++
	if m.lockErr != nil {
		return m.lockErr
	}

	if rec.IsZero() {
		delete(m.locks, rec.ResourceID)
	} else {
		m.locks[rec.ResourceID] = rec
	}

	return nil
}

// Assignment returns the last persisted target for an item.
func (m *MemoryStore) Assignment(itemID string) (types.ResourceID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.assignments[itemID]

	return target, ok
}

// Lock returns the last persisted lock record for a resource.
func (m *MemoryStore) Lock(id types.ResourceID) (types.LockRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.locks[id]

	return rec, ok
}

// SaveCalls returns the total number of SaveAssignment and SaveLock calls.
func (m *MemoryStore) SaveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveCalls
}

// RecordingNotifier captures notifications for assertions.
type RecordingNotifier struct {
	mu    sync.Mutex
	notes []types.Notification
}

var _ types.Notifier = (*RecordingNotifier)(nil)

// NewRecordingNotifier creates an empty recorder.
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// Notify implements types.Notifier.
func (r *RecordingNotifier) Notify(n types.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

// All returns a copy of every captured notification in order.
func (r *RecordingNotifier) All() []types.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]types.Notification(nil), r.notes...)
}

// ByCode returns the captured notifications carrying the given code.
func (r *RecordingNotifier) ByCode(code types.Code) []types.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []types.Notification
	for _, n := range r.notes {
		if n.Code == code {
			out = append(out, n)
		}
	}

	return out
}

// Reset discards captured notifications.
func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}
