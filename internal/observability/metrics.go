package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// tool invocations labelled by tool name and outcome (ok, failed, invalid_params)
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbads_tool_calls_total",
			Help: "Total MCP tool calls",
		},
		[]string{"tool", "outcome"},
	)

	// tool handler latency in seconds
	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fbads_tool_duration_seconds",
			Help:    "Histogram of MCP tool call latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	// outbound Graph API requests labelled by HTTP method and status
	GraphRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbads_graph_requests_total",
			Help: "Total Graph API requests",
		},
		[]string{"method", "status"},
	)

	// Graph API round-trip latency
	GraphLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fbads_graph_request_duration_seconds",
			Help:    "Duration of Graph API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// prompt templates filled, labelled by template and outcome
	PromptFills = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbads_prompt_fills_total",
			Help: "Total prompt template fills",
		},
		[]string{"template", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		ToolCalls,
		ToolLatency,
		GraphRequests,
		GraphLatency,
		PromptFills,
	)
}
