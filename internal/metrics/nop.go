// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/cruisedesk/boardkit/types"

// NopMetrics is a MetricsCollector that records nothing. Used as the
// default when no collector is configured, so components never need nil
// checks around metrics calls.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a metrics collector that discards all measurements.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordMove discards the measurement.
func (*NopMetrics) RecordMove(types.RejectReason) {}

// RecordColumnReorder discards the measurement.
func (*NopMetrics) RecordColumnReorder() {}

// RecordDirtyItems discards the measurement.
func (*NopMetrics) RecordDirtyItems(int) {}

// RecordSaveStateTransition discards the measurement.
func (*NopMetrics) RecordSaveStateTransition(types.SaveState, types.SaveState) {}

// RecordSaveDuration discards the measurement.
func (*NopMetrics) RecordSaveDuration(float64, bool, bool) {}

// RecordLockToggle discards the measurement.
func (*NopMetrics) RecordLockToggle(bool) {}

// RecordLockRejection discards the measurement.
func (*NopMetrics) RecordLockRejection() {}

// RecordEviction discards the measurement.
func (*NopMetrics) RecordEviction(int) {}
