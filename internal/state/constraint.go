package state

import (
	"fmt"

	"github.com/cruisedesk/boardkit/types"
)

// canMoveLocked runs the constraint chain for a proposed move. Caller holds
// at least the read lock.
//
// Check order (first hit wins):
//  1. no-op target (same as current pending assignment)
//  2. target resource locked
//  3. source resource locked (a locked column is frozen in both directions)
//  4. program binding mismatch (boat-style only; driver resources never
//     carry a binding, so the check passes through for that variant)
//
// The chain runs synchronously on every drop attempt, before any mutation.
// A rejection is a normal outcome of user action and is returned as a
// value; errors are reserved for malformed calls (unknown or inactive
// target resource).
func (s *Store) canMoveLocked(it *types.Item, target types.ResourceID) (types.Decision, error) {
	if target == it.Pending {
		return types.Reject(types.ReasonNoop), nil
	}

	if target != types.Unassigned {
		if _, ok := s.resources[target]; !ok {
			return types.Decision{}, fmt.Errorf("move target %s: %w", target, types.ErrUnknownResource)
		}
		if _, ok := s.active[target]; !ok {
			return types.Decision{}, fmt.Errorf("move target %s: %w", target, types.ErrResourceNotActive)
		}
		if s.lockLocked(target).Locked {
			return types.Reject(types.ReasonTargetLocked), nil
		}
	}

	if it.Pending != types.Unassigned && s.lockLocked(it.Pending).Locked {
		return types.Reject(types.ReasonSourceLocked), nil
	}

	if target != types.Unassigned {
		if binding := s.lockLocked(target).ProgramBinding; binding != "" && it.ProgramKey != binding {
			return types.Reject(types.ReasonIncompatible), nil
		}
	}

	return types.Allow(), nil
}
