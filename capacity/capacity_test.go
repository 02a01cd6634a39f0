package capacity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cruisedesk/boardkit/types"
)

func testItems() []types.Item {
	return []types.Item{
		{ID: "b1", Guests: types.GuestCount{Adults: 2}, Pending: "drv-1"},
		{ID: "b2", Guests: types.GuestCount{Adults: 1, Children: 1}, Pending: "drv-1"},
		{ID: "b3", Guests: types.GuestCount{Adults: 3}, Pending: types.Unassigned},
		{ID: "b4", Guests: types.GuestCount{Adults: 2, Infants: 1}, Pending: "drv-2"},
	}
}

func TestUsedSlots(t *testing.T) {
	t.Parallel()

	items := testItems()

	require.Equal(t, 4, UsedSlots(types.Resource{ID: "drv-1", Capacity: 4}, items))
	require.Equal(t, 3, UsedSlots(types.Resource{ID: "drv-2", Capacity: 8}, items))
	require.Equal(t, 0, UsedSlots(types.Resource{ID: "drv-9", Capacity: 8}, items))
}

func TestCapacityPredicates(t *testing.T) {
	t.Parallel()

	items := testItems()

	tests := []struct {
		name     string
		resource types.Resource
		over     bool
		at       bool
		under    bool
	}{
		{"at capacity", types.Resource{ID: "drv-1", Capacity: 4}, false, true, false},
		{"over capacity", types.Resource{ID: "drv-1", Capacity: 3}, true, false, false},
		{"under capacity", types.Resource{ID: "drv-2", Capacity: 8}, false, false, true},
		{"empty column", types.Resource{ID: "drv-9", Capacity: 8}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.over, IsOverCapacity(tt.resource, items))
			require.Equal(t, tt.at, IsAtCapacity(tt.resource, items))
			require.Equal(t, tt.under, IsUnderCapacity(tt.resource, items))
		})
	}
}

func TestUtilizationPercent(t *testing.T) {
	t.Parallel()

	items := testItems()

	require.InDelta(t, 100.0, UtilizationPercent(types.Resource{ID: "drv-1", Capacity: 4}, items), 0.001)
	require.InDelta(t, 37.5, UtilizationPercent(types.Resource{ID: "drv-2", Capacity: 8}, items), 0.001)

	// Unbounded above 100; caller clamps for display.
	require.InDelta(t, 200.0, UtilizationPercent(types.Resource{ID: "drv-1", Capacity: 2}, items), 0.001)

	// Zero capacity reports zero rather than dividing.
	require.Zero(t, UtilizationPercent(types.Resource{ID: "drv-1"}, items))
}
