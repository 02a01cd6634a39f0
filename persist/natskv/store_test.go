package natskv

import (
	"testing"

	"github.com/stretchr/testify/require"

	boardtest "github.com/cruisedesk/boardkit/testing"
	"github.com/cruisedesk/boardkit/types"
)

func newTestStore(t *testing.T, provisionLocks bool) *Store {
	t.Helper()

	_, nc := boardtest.StartEmbeddedNATS(t)

	store, err := New(t.Context(), nc, Config{
		AssignmentBucket:    "test-assignment",
		LockBucket:          "test-locks",
		ProvisionLockBucket: provisionLocks,
	})
	require.NoError(t, err)

	return store
}

func TestAssignmentRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, true)
	ctx := t.Context()

	require.NoError(t, store.SaveAssignment(ctx, "acme", "2026-07-14", "bk-1", "driver-1"))
	require.NoError(t, store.SaveAssignment(ctx, "acme", "2026-07-14", "bk-2", "driver-2"))
	// Another tenant and another date must not leak into the board.
	require.NoError(t, store.SaveAssignment(ctx, "globex", "2026-07-14", "bk-9", "driver-9"))
	require.NoError(t, store.SaveAssignment(ctx, "acme", "2026-07-15", "bk-1", "driver-3"))

	got, err := store.LoadAssignments(ctx, "acme", "2026-07-14")
	require.NoError(t, err)
	require.Equal(t, map[string]types.ResourceID{
		"bk-1": "driver-1",
		"bk-2": "driver-2",
	}, got)
}

func TestUnassignDeletesMirrorEntry(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, true)
	ctx := t.Context()

	require.NoError(t, store.SaveAssignment(ctx, "acme", "2026-07-14", "bk-1", "driver-1"))
	require.NoError(t, store.SaveAssignment(ctx, "acme", "2026-07-14", "bk-1", types.Unassigned))

	got, err := store.LoadAssignments(ctx, "acme", "2026-07-14")
	require.NoError(t, err)
	require.Empty(t, got)

	// Deleting an entry that never existed is not an error (retried batch).
	require.NoError(t, store.SaveAssignment(ctx, "acme", "2026-07-14", "bk-ghost", types.Unassigned))
}

func TestLockRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, true)
	ctx := t.Context()

	rec := types.LockRecord{
		ResourceID:     "boat-1",
		Date:           "2026-07-14",
		Locked:         true,
		ProgramBinding: "reef",
		Bindings:       types.SecondaryBindings{GuideID: "guide-7"},
	}
	require.NoError(t, store.SaveLock(ctx, "acme", rec))

	locks, err := store.LoadLocks(ctx, "acme", "2026-07-14")
	require.NoError(t, err)
	require.Len(t, locks, 1)
	require.Equal(t, rec, locks[0])

	// Zeroing the record deletes it.
	require.NoError(t, store.SaveLock(ctx, "acme", types.LockRecord{ResourceID: "boat-1", Date: "2026-07-14"}))

	locks, err = store.LoadLocks(ctx, "acme", "2026-07-14")
	require.NoError(t, err)
	require.Empty(t, locks)
}

func TestMissingLockBucketDegrades(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, false)
	ctx := t.Context()

	// Assignments still work.
	require.NoError(t, store.SaveAssignment(ctx, "acme", "2026-07-14", "bk-1", "driver-1"))

	err := store.SaveLock(ctx, "acme", types.LockRecord{ResourceID: "driver-1", Date: "2026-07-14", Locked: true})
	require.Error(t, err)
	require.True(t, types.IsLockStoreMissingError(err))

	_, err = store.LoadLocks(ctx, "acme", "2026-07-14")
	require.True(t, types.IsLockStoreMissingError(err))
}
