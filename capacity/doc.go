// Package capacity provides the pure capacity model for assignment boards.
//
// All functions compute from the full working set on every call; nothing is
// cached or maintained incrementally, so the results can never drift from
// their definition.
package capacity
