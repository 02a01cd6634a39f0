// Package hooks provides default hook implementations.
package hooks

import "github.com/cruisedesk/boardkit/types"

// NewNop returns a Hooks value whose callbacks are all nil.
//
// The board treats nil callbacks as disabled, so a nop value simply gives
// callers a non-nil *Hooks to avoid nil checks at every invocation site.
func NewNop() types.Hooks {
	return types.Hooks{}
}
