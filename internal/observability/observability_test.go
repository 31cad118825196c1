package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPrometheusRegistry_ToolCalls(t *testing.T) {
	ToolCalls.Reset()
	r := NewPrometheusRegistry()

	r.IncrementToolCalls("get_campaigns", "ok")
	r.IncrementToolCalls("get_campaigns", "ok")
	r.IncrementToolCalls("get_campaigns", "failed")
	r.RecordToolLatency("get_campaigns", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(ToolCalls.WithLabelValues("get_campaigns", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ToolCalls.WithLabelValues("get_campaigns", "failed")))
}

func TestPrometheusRegistry_GraphRequests(t *testing.T) {
	GraphRequests.Reset()
	r := NewPrometheusRegistry()

	r.IncrementGraphRequests("GET", "200")
	r.RecordGraphLatency("GET", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(GraphRequests.WithLabelValues("GET", "200")))
}

func TestNoOpRegistry(t *testing.T) {
	var r MetricsRegistry = NewNoOpRegistry()
	r.IncrementToolCalls("x", "ok")
	r.IncrementPromptFills("y", "ok")
}

func TestGetLogLevel(t *testing.T) {
	cases := []struct {
		env, level string
		want       zapcore.Level
	}{
		{"", "", zap.InfoLevel},
		{"dev", "", zap.DebugLevel},
		{"dev", "warn", zap.WarnLevel},
		{"production", "ERROR", zap.ErrorLevel},
		{"", "bogus", zap.InfoLevel},
	}
	for _, c := range cases {
		t.Setenv("ENV", c.env)
		t.Setenv("LOG_LEVEL", c.level)
		assert.Equal(t, c.want, getLogLevel(), "ENV=%q LOG_LEVEL=%q", c.env, c.level)
	}
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	LoggerFromContext(context.Background(), base).Info("plain")
	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{2},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	LoggerFromContext(ctx, base).Info("traced")
	fields := logs.All()[1].ContextMap()
	assert.Equal(t, sc.TraceID().String(), fields["trace_id"])
	assert.Equal(t, sc.SpanID().String(), fields["span_id"])
}
