package autosave

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cruisedesk/boardkit/types"
)

// SaveFunc persists the current pending diff. manual is true on the
// explicit "save now" path, which surfaces outcomes to the user; the
// debounced path stays silent.
type SaveFunc func(ctx context.Context, manual bool) error

// Scheduler debounces board mutations into save batches.
//
// Rules:
//   - every dirtying mutation (re)arms a fixed debounce timer; rapid
//     successive edits collapse into one save
//   - a manual save cancels the pending timer and persists immediately;
//     it waits behind an in-flight autosave instead of double-submitting
//   - a failed batch returns the state to Dirty with no automatic retry;
//     the next edit or manual save re-arms the cycle
//
// The scheduler never inspects board state directly: the owning board
// supplies a dirty predicate so the two components stay independently
// testable.
type Scheduler struct {
	debounce time.Duration

	save  SaveFunc
	dirty func() bool

	// onTransition is invoked for every state change, outside any lock.
	onTransition func(from, to types.SaveState)

	logger  types.Logger
	metrics types.SaveMetrics

	current atomic.Int32 // types.SaveState

	timerMu sync.Mutex
	timer   *time.Timer

	// saveMu serializes batches; manual saves block on it rather than
	// overlapping an in-flight autosave.
	saveMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
	wg     sync.WaitGroup
}

// New creates a scheduler in the Idle state.
//
// Parameters:
//   - debounce: Quiet period before a dirtying edit triggers a save
//   - save: Persistence batch callback
//   - dirty: Predicate consulted before and after batches
//   - onTransition: State change callback (may be nil)
//   - logger: Logger for batch outcomes
//   - metrics: Metrics collector for save timings and transitions
//
// Returns:
//   - *Scheduler: Initialized scheduler; callers must Close it
func New(
	debounce time.Duration,
	save SaveFunc,
	dirty func() bool,
	onTransition func(from, to types.SaveState),
	logger types.Logger,
	metrics types.SaveMetrics,
) *Scheduler {
	s := &Scheduler{
		debounce:     debounce,
		save:         save,
		dirty:        dirty,
		onTransition: onTransition,
		logger:       logger,
		metrics:      metrics,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.current.Store(int32(types.SaveIdle))

	return s
}

// State returns the current save state.
func (s *Scheduler) State() types.SaveState {
	return types.SaveState(s.current.Load())
}

// MarkDirty records that a dirtying mutation happened and (re)arms the
// debounce timer. Safe to call from any goroutine.
func (s *Scheduler) MarkDirty() {
	if s.closed.Load() {
		return
	}

	// An edit during an in-flight batch keeps Saving visible; the batch
	// completion re-checks the dirty predicate and lands on Dirty.
	if s.State() != types.SaveSaving {
		s.transition(types.SaveDirty)
	}

	s.timerMu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fire)
	s.timerMu.Unlock()
}

// MarkClean records that edits reverted the board to its committed state
// (detected via the store fingerprint). Cancels the pending timer; a batch
// already in flight is unaffected.
func (s *Scheduler) MarkClean() {
	s.stopTimer()

	if s.State() == types.SaveDirty {
		s.transition(types.SaveIdle)
	}
}

// SaveNow cancels the pending timer and persists immediately.
//
// Mutually exclusive with an in-flight autosave: if one is running, SaveNow
// waits for it rather than issuing an overlapping batch for the same board.
// No optimistic-concurrency check is performed against the backing store;
// across sessions, last write wins.
//
// Parameters:
//   - ctx: Context for cancellation and deadline of the batch
//
// Returns:
//   - error: The batch error; nil when nothing was pending
func (s *Scheduler) SaveNow(ctx context.Context) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	s.stopTimer()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if !s.dirty() {
		if s.State() == types.SaveDirty {
			s.transition(types.SaveIdle)
		}

		return nil
	}

	return s.run(ctx, true)
}

// fire is the debounce timer callback.
func (s *Scheduler) fire() {
	// The closed check and the Add must be one atomic step with respect
	// to Close: Close flips closed before taking timerMu, so a fire that
	// sees closed==false under timerMu registers with the WaitGroup
	// before Close can reach Wait.
	s.timerMu.Lock()
	if s.closed.Load() {
		s.timerMu.Unlock()

		return
	}
	s.wg.Add(1)
	s.timerMu.Unlock()
	defer s.wg.Done()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if !s.dirty() {
		if s.State() == types.SaveDirty {
			s.transition(types.SaveIdle)
		}

		return
	}

	// Autosave failures are logged by the batch itself; the board stays
	// dirty and the next edit re-arms the cycle. No retry timer here.
	_ = s.run(s.ctx, false)
}

// run executes one batch. Caller holds saveMu.
func (s *Scheduler) run(ctx context.Context, manual bool) error {
	s.transition(types.SaveSaving)

	start := time.Now()
	err := s.save(ctx, manual)
	s.metrics.RecordSaveDuration(time.Since(start).Seconds(), manual, err == nil)

	if err != nil {
		s.logger.Error("save batch failed", "manual", manual, "error", err)
		s.transition(types.SaveDirty)

		return err
	}

	if s.dirty() {
		// Edits arrived while the batch was in flight.
		s.transition(types.SaveDirty)
	} else {
		s.transition(types.SaveIdle)
	}

	return nil
}

func (s *Scheduler) transition(to types.SaveState) {
	from := types.SaveState(s.current.Swap(int32(to)))
	if from == to {
		return
	}

	s.logger.Debug("save state transition", "from", from.String(), "to", to.String())
	s.metrics.RecordSaveStateTransition(from, to)

	if s.onTransition != nil {
		s.onTransition(from, to)
	}
}

func (s *Scheduler) stopTimer() {
	s.timerMu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerMu.Unlock()
}

// Close stops the timer, cancels any autosave context and waits for an
// in-flight timer callback to finish. Pending unsaved changes are left in
// the store; they are not flushed.
func (s *Scheduler) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	s.stopTimer()
	s.cancel()
	s.wg.Wait()
}
