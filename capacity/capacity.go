package capacity

import "github.com/cruisedesk/boardkit/types"

// UsedSlots returns the total guest slots consumed on a resource: the sum of
// guest totals over items whose working assignment points at it.
//
// Parameters:
//   - resource: The resource to measure
//   - items: The full working set
//
// Returns:
//   - int: Consumed slots (0 for an empty column)
func UsedSlots(resource types.Resource, items []types.Item) int {
	used := 0
	for _, it := range items {
		if it.Pending == resource.ID {
			used += it.Guests.Total()
		}
	}

	return used
}

// IsOverCapacity reports whether the resource holds more guest slots than
// its capacity allows.
func IsOverCapacity(resource types.Resource, items []types.Item) bool {
	return UsedSlots(resource, items) > resource.Capacity
}

// IsAtCapacity reports whether the resource is exactly full.
func IsAtCapacity(resource types.Resource, items []types.Item) bool {
	return UsedSlots(resource, items) == resource.Capacity
}

// IsUnderCapacity reports whether the resource holds at least one guest but
// still has free slots.
func IsUnderCapacity(resource types.Resource, items []types.Item) bool {
	used := UsedSlots(resource, items)

	return used > 0 && used < resource.Capacity
}

// UtilizationPercent returns used slots as a percentage of capacity.
//
// The result is unbounded above 100; display layers clamp it. Capacity is a
// positive integer by construction upstream, so no division guard is needed
// beyond tolerating a zero from hand-built test data.
func UtilizationPercent(resource types.Resource, items []types.Item) float64 {
	if resource.Capacity <= 0 {
		return 0
	}

	return float64(UsedSlots(resource, items)) / float64(resource.Capacity) * 100
}
