package state

import "sync"

// ChangeKind classifies a store change event.
type ChangeKind int

const (
	// ChangeAssignment: one or more item assignments changed.
	ChangeAssignment ChangeKind = iota

	// ChangeOrder: the column order changed.
	ChangeOrder

	// ChangeLocks: a lock or binding record changed.
	ChangeLocks

	// ChangeActivation: a resource column appeared or disappeared.
	ChangeActivation

	// ChangeReset: the store was reinitialized or bulk-reset.
	ChangeReset

	// ChangeCommit: committed state was reconciled after a save.
	ChangeCommit
)

// Event is one store change notification.
type Event struct {
	Kind ChangeKind
}

// subscriber is a helper for managing change subscriptions.
type subscriber struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

// trySend delivers an event without blocking. A slow subscriber misses the
// event and picks up current state on its next read; events carry no
// payload precisely so that dropping one is harmless.
func (s *subscriber) trySend(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- ev:
	default:
	}
}

// close safely closes the subscriber's channel.
func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// Subscribe returns a channel that receives store change events.
//
// The channel is buffered (size 8) to absorb bursts of rapid edits without
// blocking mutations. Events are signals, not state: subscribers re-read
// the store on receipt.
//
// Returns:
//   - <-chan Event: Channel receiving change events
//   - func(): Unsubscribe function to clean up resources
func (s *Store) Subscribe() (<-chan Event, func()) {
	id := s.nextSubscriberID.Add(1)

	sub := &subscriber{ch: make(chan Event, 8)}
	s.subscribers.Store(id, sub)

	unsubscribe := func() {
		if sub, ok := s.subscribers.LoadAndDelete(id); ok {
			sub.close()
		}
	}

	return sub.ch, unsubscribe
}

// publish fans an event out to all subscribers. Called after the store lock
// is released so subscribers can immediately re-read.
func (s *Store) publish(ev Event) {
	s.subscribers.Range(func(_ uint64, sub *subscriber) bool {
		sub.trySend(ev)

		return true
	})
}

// CloseSubscribers closes every subscriber channel. Called when the owning
// board shuts down.
func (s *Store) CloseSubscribers() {
	s.subscribers.Range(func(id uint64, sub *subscriber) bool {
		s.subscribers.Delete(id)
		sub.close()

		return true
	})
}
