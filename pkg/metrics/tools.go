package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ToolCallMetrics records counts and latency for tool invocations.
type ToolCallMetrics struct {
	duration *prometheus.HistogramVec
	calls    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewToolCallMetrics registers the tool-call metrics on the provided registerer.
func NewToolCallMetrics(reg prometheus.Registerer) *ToolCallMetrics {
	if reg == nil {
		return &ToolCallMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tool_call_duration_seconds",
		Help:    "Duration of tool invocations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tool_calls_total",
		Help: "Tool invocations by tool name and outcome code.",
	}, []string{"tool", "code"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tool_call_failures_total",
		Help: "Tool invocations that returned an error code.",
	}, []string{"tool"})
	reg.MustRegister(duration, calls, failures)
	return &ToolCallMetrics{
		duration: duration,
		calls:    calls,
		failures: failures,
	}
}

// ObserveDuration records the duration for the named tool.
func (m *ToolCallMetrics) ObserveDuration(tool string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(tool)).Observe(duration.Seconds())
}

// IncCall counts one invocation with its outcome code ("ok" or an error code).
func (m *ToolCallMetrics) IncCall(tool, code string) {
	if m == nil || m.calls == nil {
		return
	}
	m.calls.WithLabelValues(normalizeLabel(tool), normalizeLabel(code)).Inc()
}

// IncFailure counts one failed invocation for the named tool.
func (m *ToolCallMetrics) IncFailure(tool string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(tool)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
