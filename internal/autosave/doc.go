// Package autosave implements the debounced save scheduler for assignment
// boards.
//
// The scheduler owns timing and state reconciliation only; the persistence
// batch itself is a callback supplied by the owning board. States follow
// Idle → Dirty → Saving → Idle, with a failed batch falling back to Dirty
// so no change is ever lost.
package autosave
