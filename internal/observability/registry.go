package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics
// so components do not touch the global Prometheus collectors directly.
type MetricsRegistry interface {
	// Tool call metrics
	IncrementToolCalls(tool, outcome string)
	RecordToolLatency(tool string, duration time.Duration)

	// Graph API metrics
	IncrementGraphRequests(method, status string)
	RecordGraphLatency(method string, duration time.Duration)

	// Prompt metrics
	IncrementPromptFills(template, outcome string)
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementToolCalls(tool, outcome string) {
	ToolCalls.WithLabelValues(tool, outcome).Inc()
}

func (r *PrometheusRegistry) RecordToolLatency(tool string, duration time.Duration) {
	ToolLatency.WithLabelValues(tool).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementGraphRequests(method, status string) {
	GraphRequests.WithLabelValues(method, status).Inc()
}

func (r *PrometheusRegistry) RecordGraphLatency(method string, duration time.Duration) {
	GraphLatency.WithLabelValues(method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementPromptFills(template, outcome string) {
	PromptFills.WithLabelValues(template, outcome).Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementToolCalls(tool, outcome string)                  {}
func (r *NoOpRegistry) RecordToolLatency(tool string, duration time.Duration)    {}
func (r *NoOpRegistry) IncrementGraphRequests(method, status string)             {}
func (r *NoOpRegistry) RecordGraphLatency(method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementPromptFills(template, outcome string)            {}
