package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cruisedesk/boardkit/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	moveResults    *prometheus.CounterVec
	columnReorders prometheus.Counter
	dirtyItems     prometheus.Gauge

	saveTransitions *prometheus.CounterVec
	saveDuration    *prometheus.HistogramVec

	lockToggles    *prometheus.CounterVec
	lockRejections prometheus.Counter
	evictions      prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector registered on the given registerer.
//
// Parameters:
//   - reg: Prometheus registerer (use prometheus.DefaultRegisterer for the
//     process-global registry)
//   - namespace: Metric namespace prefix (e.g. "boardkit")
//
// Returns:
//   - *PrometheusCollector: Registered collector
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	c := &PrometheusCollector{
		moveResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "move_attempts_total",
			Help:      "Drop attempts by outcome reason (none = accepted).",
		}, []string{"reason"}),
		columnReorders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "column_reorders_total",
			Help:      "Column drag reorders and position swaps.",
		}),
		dirtyItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dirty_items",
			Help:      "Items with unsaved assignment changes.",
		}),
		saveTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_state_transitions_total",
			Help:      "Autosave state machine transitions.",
		}, []string{"from", "to"}),
		saveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_batch_duration_seconds",
			Help:      "Save batch latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "result"}),
		lockToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lock_toggles_total",
			Help:      "Successful lock state changes.",
		}, []string{"state"}),
		lockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lock_rejections_total",
			Help:      "Lock toggles rejected over capacity.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "program_evictions_total",
			Help:      "Items evicted by program binding changes.",
		}),
	}

	reg.MustRegister(
		c.moveResults, c.columnReorders, c.dirtyItems,
		c.saveTransitions, c.saveDuration,
		c.lockToggles, c.lockRejections, c.evictions,
	)

	return c
}

// RecordMove records a drop attempt outcome.
func (c *PrometheusCollector) RecordMove(reason types.RejectReason) {
	c.moveResults.WithLabelValues(reason.String()).Inc()
}

// RecordColumnReorder records a column reorder or position swap.
func (c *PrometheusCollector) RecordColumnReorder() {
	c.columnReorders.Inc()
}

// RecordDirtyItems sets the unsaved-item gauge.
func (c *PrometheusCollector) RecordDirtyItems(count int) {
	c.dirtyItems.Set(float64(count))
}

// RecordSaveStateTransition records an autosave transition.
func (c *PrometheusCollector) RecordSaveStateTransition(from, to types.SaveState) {
	c.saveTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordSaveDuration records one save batch.
func (c *PrometheusCollector) RecordSaveDuration(duration float64, manual, success bool) {
	path := "auto"
	if manual {
		path = "manual"
	}
	result := "ok"
	if !success {
		result = "error"
	}
	c.saveDuration.WithLabelValues(path, result).Observe(duration)
}

// RecordLockToggle records a successful lock state change.
func (c *PrometheusCollector) RecordLockToggle(locked bool) {
	state := "unlocked"
	if locked {
		state = "locked"
	}
	c.lockToggles.WithLabelValues(state).Inc()
}

// RecordLockRejection records a lock toggle rejected over capacity.
func (c *PrometheusCollector) RecordLockRejection() {
	c.lockRejections.Inc()
}

// RecordEviction records items evicted by a binding change.
func (c *PrometheusCollector) RecordEviction(count int) {
	c.evictions.Add(float64(count))
}
