package boardkit

import "github.com/cruisedesk/boardkit/types"

// Option configures optional Board behavior.
type Option func(*Board)

// WithLogger sets a custom logger implementation.
//
// If not provided, logging is disabled.
func WithLogger(logger types.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics sets a metrics collector for board instrumentation.
//
// If not provided, metrics collection is disabled.
func WithMetrics(collector types.MetricsCollector) Option {
	return func(b *Board) {
		if collector != nil {
			b.metrics = collector
		}
	}
}

// WithHooks sets lifecycle callback hooks.
//
// Hooks with nil callbacks are simply skipped, so callers only populate
// the events they care about.
func WithHooks(hooks types.Hooks) Option {
	return func(b *Board) {
		b.hooks = hooks
	}
}

// WithNotifier sets the sink for user-facing notifications (toasts).
//
// If not provided, notifications are dropped.
func WithNotifier(notifier types.Notifier) Option {
	return func(b *Board) {
		if notifier != nil {
			b.notifier = notifier
		}
	}
}
