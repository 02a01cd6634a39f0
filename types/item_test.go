package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuestCountTotal(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, GuestCount{}.Total())
	require.Equal(t, 4, GuestCount{Adults: 2, Children: 1, Infants: 1}.Total())
}

func TestItemIsDirty(t *testing.T) {
	t.Parallel()

	it := Item{ID: "b1", Committed: "boat-1", Pending: "boat-1"}
	require.False(t, it.IsDirty())

	it.Pending = Unassigned
	require.True(t, it.IsDirty())
}

func TestLockRecordIsZero(t *testing.T) {
	t.Parallel()

	require.True(t, LockRecord{ResourceID: "boat-1", Date: "2026-08-30"}.IsZero())
	require.False(t, LockRecord{Locked: true}.IsZero())
	require.False(t, LockRecord{ProgramBinding: "prog-a"}.IsZero())
	require.False(t, LockRecord{Bindings: SecondaryBindings{GuideID: "g1"}}.IsZero())
}

func TestSaveStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Idle", SaveIdle.String())
	require.Equal(t, "Dirty", SaveDirty.String())
	require.Equal(t, "Saving", SaveSaving.String())
	require.Equal(t, "Unknown", SaveState(99).String())
}

func TestDecisionSilent(t *testing.T) {
	t.Parallel()

	require.True(t, Reject(ReasonNoop).Silent())
	require.False(t, Reject(ReasonTargetLocked).Silent())
	require.False(t, Allow().Silent())
}

func TestDragSubjectConstructors(t *testing.T) {
	t.Parallel()

	col := ColumnSubject(UnassignedColumn)
	require.Equal(t, DragColumn, col.Kind)
	require.Equal(t, "unassigned", col.ID)

	item := ItemSubject("b42")
	require.Equal(t, DragItem, item.Kind)
	require.Equal(t, "b42", item.ID)

	require.Equal(t, DropNone, NoDrop().Kind)
}
