// Package state implements the assignment store: the single source of
// mutable truth for one board.
//
// The store owns the working copy of every item (pending vs committed
// assignment), the active resource set, the column order and the
// lock/binding records. All mutation funnels through its methods so that
// capacity and constraint checks always see a consistent snapshot.
//
// The store is deliberately UI-free: the root boardkit package wires it to
// notifications, metrics and the autosave scheduler, and a rendering layer
// subscribes to change events instead of owning the state.
package state
