package state

import (
	"fmt"
	"slices"

	"github.com/cruisedesk/boardkit/types"
)

// columnOrder is the ordered column sequence: exactly one unassigned
// pseudo-column plus one entry per active resource, each appearing once.
// Order is user-controlled and independent of resource id ordering.
type columnOrder []types.ColumnID

func newColumnOrder() columnOrder {
	return columnOrder{types.UnassignedColumn}
}

func (o *columnOrder) append(id types.ColumnID) {
	*o = append(*o, id)
}

func (o *columnOrder) remove(id types.ColumnID) {
	if i := slices.Index(*o, id); i >= 0 {
		*o = slices.Delete(*o, i, i+1)
	}
}

// move applies list-move semantics: remove the column and reinsert it at
// the given index; every column between the old and new position shifts by
// one. The unassigned pseudo-column moves like any other.
func (o *columnOrder) move(id types.ColumnID, to int) bool {
	from := slices.Index(*o, id)
	if from < 0 || to < 0 || to >= len(*o) {
		return false
	}
	if from == to {
		return true
	}

	*o = slices.Delete(*o, from, from+1)
	*o = slices.Insert(*o, to, id)

	return true
}

// swap exchanges the columns at two 1-based positions. This is a true
// two-element swap, not an insertion shift.
func (o columnOrder) swap(p, q int) bool {
	n := len(o)
	if p < 1 || p > n || q < 1 || q > n || p == q {
		return false
	}
	o[p-1], o[q-1] = o[q-1], o[p-1]

	return true
}

// MoveColumn reorders a dragged column to the dropped-over index (0-based).
func (s *Store) MoveColumn(id types.ColumnID, to int) error {
	s.mu.Lock()

	if !s.order.move(id, to) {
		s.mu.Unlock()

		return fmt.Errorf("move column %s to %d: %w", id, to, types.ErrInvalidPosition)
	}

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeOrder})

	return nil
}

// SwapColumns exchanges the columns at two 1-based positions. This is the
// manual numeric "position swap" affordance; positions outside
// [1, column count] or equal to each other are rejected with no state
// change.
func (s *Store) SwapColumns(p, q int) error {
	s.mu.Lock()

	if !s.order.swap(p, q) {
		s.mu.Unlock()

		return fmt.Errorf("swap columns %d and %d: %w", p, q, types.ErrInvalidPosition)
	}

	s.mu.Unlock()

	s.publish(Event{Kind: ChangeOrder})

	return nil
}
