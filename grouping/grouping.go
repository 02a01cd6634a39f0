// Package grouping arranges unassigned items into display groups by a
// secondary key (pickup area for driver-style boards, program for
// boat-style). It is a presentation adapter: the core never consults
// groups, but the unassigned column renders them as sub-sections.
package grouping

import (
	"sort"

	"github.com/cruisedesk/boardkit/types"
)

// Ungrouped is the display key for items without a secondary key.
const Ungrouped = "ungrouped"

// KeyFunc extracts the grouping key from an item.
type KeyFunc func(types.Item) string

// ByArea groups by the item's area/group key.
func ByArea(it types.Item) string { return it.GroupKey }

// ByProgram groups by the item's program key.
func ByProgram(it types.Item) string { return it.ProgramKey }

// Group is the set of items sharing one secondary key.
type Group struct {
	// Key is the shared secondary key, Ungrouped for items without one.
	Key string

	// Items keep their relative board order.
	Items []types.Item
}

// TotalGuests sums the party sizes of the group's items.
func (g Group) TotalGuests() int {
	total := 0
	for _, it := range g.Items {
		total += it.Guests.Total()
	}

	return total
}

// Unassigned selects the items currently in the unassigned pool and groups
// them by key.
//
// Groups are sorted by key with the Ungrouped section last; items keep
// their relative order inside each group. The result is deterministic for
// a given working set, so repeated renders do not shuffle sections.
func Unassigned(items []types.Item, key KeyFunc) []Group {
	pool := make([]types.Item, 0, len(items))
	for _, it := range items {
		if it.Pending == types.Unassigned {
			pool = append(pool, it)
		}
	}

	return ByKey(pool, key)
}

// ByKey groups the given items by key, without filtering.
func ByKey(items []types.Item, key KeyFunc) []Group {
	byKey := make(map[string][]types.Item)
	for _, it := range items {
		k := key(it)
		if k == "" {
			k = Ungrouped
		}
		byKey[k] = append(byKey[k], it)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == Ungrouped {
			return false
		}
		if keys[j] == Ungrouped {
			return true
		}

		return keys[i] < keys[j]
	})

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{Key: k, Items: byKey[k]})
	}

	return groups
}
