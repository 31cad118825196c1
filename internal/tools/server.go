// Package tools publishes the ads operations as MCP tools and the prompt
// templates as MCP prompts. Handlers check parameters, call into
// internal/ads and render the structured result as Czech display text.
package tools

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/fbads-mcp/internal/ads"
	"github.com/patrickwarner/fbads-mcp/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Tool call outcomes recorded in metrics.
const (
	OutcomeOK            = "ok"
	OutcomeFailed        = "failed"
	OutcomeInvalidParams = "invalid_params"
)

// Server holds the dependencies shared by all tool handlers.
type Server struct {
	campaigns *ads.Campaigns
	audiences *ads.Audiences
	analytics *ads.Analytics
	logger    *zap.Logger
	metrics   observability.MetricsRegistry
	tracer    trace.Tracer
}

// New creates the tool server. A nil metrics registry disables metrics.
func New(campaigns *ads.Campaigns, audiences *ads.Audiences, analytics *ads.Analytics, logger *zap.Logger, metrics observability.MetricsRegistry) *Server {
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Server{
		campaigns: campaigns,
		audiences: audiences,
		analytics: analytics,
		logger:    logger,
		metrics:   metrics,
		tracer:    observability.Tracer("fbads-mcp/tools"),
	}
}

// Register adds every tool and prompt to server.
func (s *Server) Register(server *mcp.Server) {
	s.registerCampaignTools(server)
	s.registerAnalyticsTools(server)
	s.registerAudienceTools(server)
	s.registerPromptTools(server)
	s.registerPrompts(server)
}

// handlerFunc is the shape of every tool implementation. It returns the
// display text and whether the text reports a failed operation. A non-nil
// error is reserved for invalid parameters.
type handlerFunc[In any] func(ctx context.Context, log *zap.Logger, in In) (text string, failed bool, err error)

// instrument adapts h to the MCP SDK and wraps it with a span, a call-scoped
// logger and metrics.
func instrument[In any](s *Server, name string, h handlerFunc[In]) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		ctx, span := s.tracer.Start(ctx, "tool."+name, trace.WithAttributes(attribute.String("mcp.tool", name)))
		defer span.End()

		log := observability.LoggerFromContext(ctx, s.logger).With(
			zap.String("tool", name),
			zap.String("call_id", uuid.NewString()),
		)
		log.Debug("tool call started")

		text, failed, err := h(ctx, log, in)

		outcome := OutcomeOK
		switch {
		case err != nil && errors.Is(err, ErrInvalidParams):
			outcome = OutcomeInvalidParams
		case err != nil || failed:
			outcome = OutcomeFailed
		}
		s.metrics.IncrementToolCalls(name, outcome)
		s.metrics.RecordToolLatency(name, time.Since(start))
		span.SetAttributes(attribute.String("mcp.outcome", outcome))

		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			log.Warn("tool call rejected", zap.Error(err))
			return nil, nil, err
		}
		if failed {
			span.SetStatus(codes.Error, text)
		}
		log.Info("tool call finished",
			zap.String("outcome", outcome),
			zap.Duration("duration", time.Since(start)))
		return textResult(text, failed), nil, nil
	}
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

// objectSchema builds a JSON schema for a tool's input object.
func objectSchema(props map[string]interface{}, additional bool, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": additional,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

// numberProp accepts a JSON number or a numeric string.
func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": []string{"number", "string"}, "description": description}
}
