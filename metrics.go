package boardkit

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cruisedesk/boardkit/internal/metrics"
	"github.com/cruisedesk/boardkit/types"
)

// NewPrometheusMetrics returns a MetricsCollector backed by Prometheus,
// registering its collectors on reg under the given namespace.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) types.MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewNopMetrics returns a MetricsCollector that discards everything. This
// is the default when no WithMetrics option is given.
func NewNopMetrics() types.MetricsCollector {
	return metrics.NewNop()
}
