package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cruisedesk/boardkit/capacity"
	"github.com/cruisedesk/boardkit/internal/logging"
	"github.com/cruisedesk/boardkit/types"
)

func newTestStore(t *testing.T, data *types.BoardData) *Store {
	t.Helper()

	s := New(logging.NewNop())
	s.Initialize("company-1", "2026-08-30", data)

	return s
}

func driverBoard() *types.BoardData {
	return &types.BoardData{
		Items: []types.Item{
			{ID: "x", Guests: types.GuestCount{Adults: 2}, GroupKey: "north"},
			{ID: "y", Guests: types.GuestCount{Adults: 1, Children: 1}, GroupKey: "north"},
			{ID: "z", Guests: types.GuestCount{Adults: 3}, GroupKey: "south"},
		},
		Resources: []types.Resource{
			{ID: "drv-1", Name: "Somchai", Capacity: 4, Kind: types.KindDriver},
			{ID: "drv-2", Name: "Anan", Capacity: 8, Kind: types.KindDriver},
		},
	}
}

func boatBoard() *types.BoardData {
	return &types.BoardData{
		Items: []types.Item{
			{ID: "p1", Guests: types.GuestCount{Adults: 2}, ProgramKey: "prog-a", Committed: "boat-1"},
			{ID: "p2", Guests: types.GuestCount{Adults: 2}, ProgramKey: "prog-b"},
		},
		Resources: []types.Resource{
			{ID: "boat-1", Name: "Island Dream", Capacity: 30, Kind: types.KindBoat},
			{ID: "boat-2", Name: "Sea Breeze", Capacity: 20, Kind: types.KindBoat},
		},
		Locks: []types.LockRecord{
			{ResourceID: "boat-1", Locked: false, ProgramBinding: "prog-a"},
		},
	}
}

func TestInitializeActiveSet(t *testing.T) {
	t.Parallel()

	// Active set is the union of committed references and lock records.
	s := newTestStore(t, &types.BoardData{
		Items: []types.Item{
			{ID: "a", Committed: "boat-1"},
			{ID: "b"},
		},
		Resources: []types.Resource{
			{ID: "boat-1", Capacity: 10, Kind: types.KindBoat},
			{ID: "boat-2", Capacity: 10, Kind: types.KindBoat},
			{ID: "boat-3", Capacity: 10, Kind: types.KindBoat},
		},
		Locks: []types.LockRecord{
			// boat-2 has a program but no passengers yet: still a column.
			{ResourceID: "boat-2", ProgramBinding: "prog-a"},
			// Orphaned record: ignored, never activates a column.
			{ResourceID: "boat-gone", Locked: true},
		},
	})

	active := s.ActiveResources()
	ids := make([]types.ResourceID, 0, len(active))
	for _, r := range active {
		ids = append(ids, r.ID)
	}
	require.ElementsMatch(t, []types.ResourceID{"boat-1", "boat-2"}, ids)

	require.Equal(t, []types.ColumnID{types.UnassignedColumn, "boat-1", "boat-2"}, s.ColumnOrder())
	require.False(t, s.Dirty())

	// Pending starts equal to committed for every item.
	a, _ := s.Item("a")
	require.Equal(t, types.ResourceID("boat-1"), a.Pending)

	inactive := s.InactiveResources()
	require.Len(t, inactive, 1)
	require.Equal(t, types.ResourceID("boat-3"), inactive[0].ID)
}

func TestReassignNoopIdempotence(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	// Moving an unassigned item "to unassigned" is a silent no-op.
	decision, err := s.Reassign("x", types.Unassigned)
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.Equal(t, types.ReasonNoop, decision.Reason)
	require.True(t, decision.Silent())
	require.False(t, s.Dirty())

	// Same for an item already on its target.
	_, err = s.Reassign("x", "drv-1")
	require.NoError(t, err)
	decision, err = s.Reassign("x", "drv-1")
	require.NoError(t, err)
	require.Equal(t, types.ReasonNoop, decision.Reason)
	require.Equal(t, 1, s.DirtyItemCount())
}

func TestReassignRevertClearsDirty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	_, err := s.Reassign("x", "drv-1")
	require.NoError(t, err)
	require.True(t, s.Dirty())

	// Moving back to the committed value reverts the pending diff.
	_, err = s.Reassign("x", types.Unassigned)
	require.NoError(t, err)
	require.False(t, s.Dirty())
	require.Empty(t, s.Diff().Items)
}

func TestCapacityConservation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))
	require.NoError(t, s.Activate("drv-2"))

	drv1, _ := s.Resource("drv-1")

	moves := []struct {
		item   string
		target types.ResourceID
	}{
		{"x", "drv-1"}, {"y", "drv-1"}, {"z", "drv-2"},
		{"y", "drv-2"}, {"y", "drv-1"}, {"x", types.Unassigned},
	}
	for _, mv := range moves {
		_, err := s.Reassign(mv.item, mv.target)
		require.NoError(t, err)

		// Used slots always equal the from-scratch sum over pending
		// assignments; nothing is maintained incrementally.
		want := 0
		for _, it := range s.Items() {
			if it.Pending == drv1.ID {
				want += it.Guests.Total()
			}
		}
		require.Equal(t, want, capacity.UsedSlots(drv1, s.Items()))
	}
}

func TestLockInvariantAndScenario(t *testing.T) {
	t.Parallel()

	// Driver board, capacity 4: X (2 adults) and Y (1 adult, 1 child).
	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	_, err := s.Reassign("x", "drv-1")
	require.NoError(t, err)
	_, err = s.Reassign("y", "drv-1")
	require.NoError(t, err)

	drv1, _ := s.Resource("drv-1")
	require.True(t, capacity.IsAtCapacity(drv1, s.Items()))

	// At capacity is lockable; only over capacity is not.
	locked, err := s.ToggleLock("drv-1")
	require.NoError(t, err)
	require.True(t, locked)

	// Z (3 adults) into the locked column: rejected, state unchanged.
	decision, err := s.Reassign("z", "drv-1")
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.Equal(t, types.ReasonTargetLocked, decision.Reason)

	z, _ := s.Item("z")
	require.Equal(t, types.Unassigned, z.Pending)
	require.Equal(t, 4, capacity.UsedSlots(drv1, s.Items()))
}

func TestToggleLockRejectedOverCapacity(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, &types.BoardData{
		Items: []types.Item{
			{ID: "a", Guests: types.GuestCount{Adults: 3}, Committed: "drv-1"},
			{ID: "b", Guests: types.GuestCount{Adults: 2}, Committed: "drv-1"},
		},
		Resources: []types.Resource{{ID: "drv-1", Capacity: 4, Kind: types.KindDriver}},
	})

	// Loaded over capacity (data drifted server-side): locking must fail.
	_, err := s.ToggleLock("drv-1")
	require.ErrorIs(t, err, types.ErrLockedOverCapacity)
	require.False(t, s.Lock("drv-1").Locked)

	// Unlocking an already-locked over-capacity resource stays allowed.
	_, err = s.Reassign("b", types.Unassigned)
	require.NoError(t, err)
	locked, err := s.ToggleLock("drv-1")
	require.NoError(t, err)
	require.True(t, locked)
	_, err = s.ToggleLock("drv-1")
	require.NoError(t, err)
}

func TestMoveRejectionSymmetry(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))
	require.NoError(t, s.Activate("drv-2"))

	_, err := s.Reassign("x", "drv-1")
	require.NoError(t, err)
	_, err = s.ToggleLock("drv-1")
	require.NoError(t, err)

	before := s.Fingerprint()

	// Nothing moves in...
	decision, err := s.Reassign("z", "drv-1")
	require.NoError(t, err)
	require.Equal(t, types.ReasonTargetLocked, decision.Reason)

	// ...and nothing moves out, in any direction.
	decision, err = s.Reassign("x", "drv-2")
	require.NoError(t, err)
	require.Equal(t, types.ReasonSourceLocked, decision.Reason)
	decision, err = s.Reassign("x", types.Unassigned)
	require.NoError(t, err)
	require.Equal(t, types.ReasonSourceLocked, decision.Reason)

	require.Equal(t, before, s.Fingerprint())
}

func TestProgramBindingEviction(t *testing.T) {
	t.Parallel()

	// Boat scenario: boat-1 bound to prog-a holds P1 (prog-a).
	s := newTestStore(t, boatBoard())

	evicted, err := s.SetProgramBinding("boat-1", "prog-b")
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, evicted)

	// Eviction completeness: nothing incompatible stays behind.
	for _, it := range s.Items() {
		if it.Pending == "boat-1" {
			require.Equal(t, "prog-b", it.ProgramKey)
		}
	}
	p1, _ := s.Item("p1")
	require.Equal(t, types.Unassigned, p1.Pending)
	require.True(t, s.Dirty())

	// Boat-1 now accepts only prog-b items.
	decision, err := s.Reassign("p2", "boat-1")
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	decision, err = s.Reassign("p1", "boat-1")
	require.NoError(t, err)
	require.Equal(t, types.ReasonIncompatible, decision.Reason)
}

func TestProgramBindingClearNeverEvicts(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, boatBoard())

	evicted, err := s.SetProgramBinding("boat-1", "")
	require.NoError(t, err)
	require.Empty(t, evicted)

	p1, _ := s.Item("p1")
	require.Equal(t, types.ResourceID("boat-1"), p1.Pending)
}

func TestProgramBindingDriverStyleRejected(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	_, err := s.SetProgramBinding("drv-1", "prog-a")
	require.ErrorIs(t, err, types.ErrBindingNotSupported)
}

func TestSecondaryBindingsMetadataOnly(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, boatBoard())

	b := types.SecondaryBindings{GuideID: "guide-7", RestaurantID: "rest-3"}
	require.NoError(t, s.SetSecondaryBindings("boat-1", b))
	require.Equal(t, b, s.Lock("boat-1").Bindings)

	// Metadata never evicts.
	p1, _ := s.Item("p1")
	require.Equal(t, types.ResourceID("boat-1"), p1.Pending)
}

func TestDeactivateClearsOwnership(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, boatBoard())

	cleared, err := s.Deactivate("boat-1")
	require.NoError(t, err)
	require.Equal(t, 1, cleared)

	for _, it := range s.Items() {
		require.NotEqual(t, types.ResourceID("boat-1"), it.Pending)
	}
	require.NotContains(t, s.ColumnOrder(), types.ColumnFor("boat-1"))

	// The binding record is cleared too, so the column does not come back
	// on the next load.
	diff := s.Diff()
	require.Len(t, diff.Locks, 1)
	require.True(t, diff.Locks[0].IsZero())
}

func TestDiffAndCommit(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	_, err := s.Reassign("x", "drv-1")
	require.NoError(t, err)
	_, err = s.Reassign("z", "drv-1")
	require.NoError(t, err)

	diff := s.Diff()
	require.Len(t, diff.Items, 2)
	require.Equal(t, types.ItemChange{ItemID: "x", From: types.Unassigned, To: "drv-1"}, diff.Items[0])

	s.Commit()
	require.False(t, s.Dirty())
	require.True(t, s.Diff().Empty())

	x, _ := s.Item("x")
	require.Equal(t, types.ResourceID("drv-1"), x.Committed)
}

func TestCommitItemsPartial(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	_, err := s.Reassign("x", "drv-1")
	require.NoError(t, err)
	_, err = s.Reassign("y", "drv-1")
	require.NoError(t, err)

	s.CommitItems([]string{"x"})
	require.Equal(t, 1, s.DirtyItemCount())

	diff := s.Diff()
	require.Len(t, diff.Items, 1)
	require.Equal(t, "y", diff.Items[0].ItemID)
}

func TestReset(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, boatBoard())
	require.NoError(t, s.Activate("boat-2"))
	_, err := s.Reassign("p2", "boat-2")
	require.NoError(t, err)

	s.Reset()

	for _, it := range s.Items() {
		require.Equal(t, types.Unassigned, it.Pending)
	}
	require.Empty(t, s.ActiveResources())
	require.Equal(t, []types.ColumnID{types.UnassignedColumn}, s.ColumnOrder())
	require.True(t, s.Lock("boat-1").IsZero())
	require.True(t, s.Dirty())
}

func TestSnapshotReflectsCommittedOnly(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, boatBoard())

	// Unsaved move: snapshot must not see it.
	_, err := s.Reassign("p1", types.Unassigned)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Equal(t, "company-1", snap.CompanyID)
	require.Equal(t, "2026-08-30", snap.Date)
	require.Len(t, snap.Columns, 1)
	require.Equal(t, types.ResourceID("boat-1"), snap.Columns[0].Resource.ID)
	require.Len(t, snap.Columns[0].Items, 1)
	require.Equal(t, "p1", snap.Columns[0].Items[0].ID)
	require.Len(t, snap.Unassigned, 1)

	s.Commit()
	snap = s.Snapshot()
	require.Empty(t, snap.Columns[0].Items)
	require.Len(t, snap.Unassigned, 2)
}

func TestFingerprintRevertDetection(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	base := s.Fingerprint()

	_, err := s.Reassign("x", "drv-1")
	require.NoError(t, err)
	require.NotEqual(t, base, s.Fingerprint())

	_, err = s.Reassign("x", types.Unassigned)
	require.NoError(t, err)
	require.Equal(t, base, s.Fingerprint())
}

func TestLockToggleRevertDisarms(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	base := s.Fingerprint()

	locked, err := s.ToggleLock("drv-1")
	require.NoError(t, err)
	require.True(t, locked)
	require.True(t, s.Dirty())

	locked, err = s.ToggleLock("drv-1")
	require.NoError(t, err)
	require.False(t, locked)

	// The toggle was undone: nothing to persist, same fingerprint as a
	// record that never existed.
	require.False(t, s.Dirty())
	require.True(t, s.Diff().Empty())
	require.Equal(t, base, s.Fingerprint())
}

func TestMixedRevertSequenceDisarms(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	_, err := s.Reassign("x", "drv-1")
	require.NoError(t, err)
	_, err = s.ToggleLock("drv-1")
	require.NoError(t, err)
	_, err = s.ToggleLock("drv-1")
	require.NoError(t, err)

	// The item edit is still pending, so the store stays dirty until the
	// move is undone too.
	require.True(t, s.Dirty())

	_, err = s.Reassign("x", types.Unassigned)
	require.NoError(t, err)

	require.False(t, s.Dirty())
	require.True(t, s.Diff().Empty())
}

func TestLockRevertAfterPartialCommitStillSaves(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	_, err := s.ToggleLock("drv-1")
	require.NoError(t, err)
	s.CommitLocks([]types.ResourceID{"drv-1"})
	require.False(t, s.Dirty())

	// The locked record is persisted now; toggling back is a new change
	// that must ship a delete, not a revert to skip.
	_, err = s.ToggleLock("drv-1")
	require.NoError(t, err)

	require.True(t, s.Dirty())
	diff := s.Diff()
	require.Len(t, diff.Locks, 1)
	require.Equal(t, types.ResourceID("drv-1"), diff.Locks[0].ResourceID)
	require.True(t, diff.Locks[0].IsZero())
}

func TestInitializeOrphanedAssignmentSurfacesUnassigned(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, &types.BoardData{
		Items: []types.Item{
			{ID: "a", Guests: types.GuestCount{Adults: 2}, Committed: "drv-gone"},
			{ID: "b", Guests: types.GuestCount{Adults: 1}, Committed: "drv-1"},
		},
		Resources: []types.Resource{
			{ID: "drv-1", Capacity: 4, Kind: types.KindDriver},
		},
	})

	// The orphan shows up in the pool instead of vanishing from every view.
	a, ok := s.Item("a")
	require.True(t, ok)
	require.Equal(t, types.Unassigned, a.Pending)

	snap := s.Snapshot()
	require.Len(t, snap.Unassigned, 1)
	require.Equal(t, "a", snap.Unassigned[0].ID)
	require.Equal(t, []types.ColumnID{types.UnassignedColumn, "drv-1"}, s.ColumnOrder())

	// The stored field is untouched until the user moves the item.
	require.False(t, s.Dirty())
	require.True(t, s.Diff().Empty())

	_, err := s.Reassign("a", "drv-1")
	require.NoError(t, err)

	diff := s.Diff()
	require.Len(t, diff.Items, 1)
	require.Equal(t, types.Unassigned, diff.Items[0].From)
	require.Equal(t, types.ResourceID("drv-1"), diff.Items[0].To)
}

func TestUnknownIDsAreErrorsNotRejections(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())
	require.NoError(t, s.Activate("drv-1"))

	_, err := s.Reassign("ghost", "drv-1")
	require.ErrorIs(t, err, types.ErrUnknownItem)

	_, err = s.Reassign("x", "drv-9")
	require.ErrorIs(t, err, types.ErrUnknownResource)

	_, err = s.Reassign("x", "drv-2")
	require.ErrorIs(t, err, types.ErrResourceNotActive)

	_, err = s.ToggleLock("drv-9")
	require.ErrorIs(t, err, types.ErrUnknownResource)

	_, err = s.ToggleLock("drv-2")
	require.ErrorIs(t, err, types.ErrResourceNotActive)
}

func TestSubscribePublishesChanges(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, driverBoard())

	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	require.NoError(t, s.Activate("drv-1"))

	ev := <-ch
	require.Equal(t, ChangeActivation, ev.Kind)

	_, err := s.Reassign("x", "drv-1")
	require.NoError(t, err)

	ev = <-ch
	require.Equal(t, ChangeAssignment, ev.Kind)
}
