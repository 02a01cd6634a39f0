package grouping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cruisedesk/boardkit/types"
)

func poolItems() []types.Item {
	return []types.Item{
		{ID: "bk-1", Guests: types.GuestCount{Adults: 2}, GroupKey: "north"},
		{ID: "bk-2", Guests: types.GuestCount{Adults: 1}, GroupKey: "south", Pending: "driver-1"},
		{ID: "bk-3", Guests: types.GuestCount{Adults: 3}, GroupKey: "north"},
		{ID: "bk-4", Guests: types.GuestCount{Adults: 1, Children: 2}},
		{ID: "bk-5", Guests: types.GuestCount{Adults: 2}, GroupKey: "east"},
	}
}

func TestUnassignedFiltersAssignedItems(t *testing.T) {
	t.Parallel()

	groups := Unassigned(poolItems(), ByArea)

	for _, g := range groups {
		for _, it := range g.Items {
			require.NotEqual(t, "bk-2", it.ID, "assigned item leaked into the pool")
		}
	}
}

func TestGroupOrderAndMembership(t *testing.T) {
	t.Parallel()

	groups := Unassigned(poolItems(), ByArea)

	require.Len(t, groups, 3)
	require.Equal(t, "east", groups[0].Key)
	require.Equal(t, "north", groups[1].Key)
	require.Equal(t, Ungrouped, groups[2].Key)

	// Items keep their relative order inside a group.
	require.Equal(t, "bk-1", groups[1].Items[0].ID)
	require.Equal(t, "bk-3", groups[1].Items[1].ID)
}

func TestUngroupedSectionIsLast(t *testing.T) {
	t.Parallel()

	items := []types.Item{
		{ID: "a"},
		{ID: "b", GroupKey: "zzz"},
	}

	groups := ByKey(items, ByArea)
	require.Len(t, groups, 2)
	require.Equal(t, "zzz", groups[0].Key)
	require.Equal(t, Ungrouped, groups[1].Key)
}

func TestByProgram(t *testing.T) {
	t.Parallel()

	items := []types.Item{
		{ID: "a", ProgramKey: "reef"},
		{ID: "b", ProgramKey: "sunset"},
		{ID: "c", ProgramKey: "reef"},
	}

	groups := ByKey(items, ByProgram)
	require.Len(t, groups, 2)
	require.Equal(t, "reef", groups[0].Key)
	require.Len(t, groups[0].Items, 2)
}

func TestTotalGuests(t *testing.T) {
	t.Parallel()

	groups := Unassigned(poolItems(), ByArea)

	for _, g := range groups {
		if g.Key == "north" {
			require.Equal(t, 5, g.TotalGuests())
		}
	}
}

func TestEmptyPool(t *testing.T) {
	t.Parallel()

	require.Empty(t, Unassigned(nil, ByArea))
}
