package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/fbads-mcp/internal/config"
	"github.com/patrickwarner/fbads-mcp/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Server groups dependencies for the HTTP side surface: health, metrics and,
// in HTTP transport mode, the MCP endpoint.
type Server struct {
	Logger *zap.Logger
	MCP    *mcp.Server
	Config config.Config
}

// NewServer constructs a Server.
func NewServer(logger *zap.Logger, mcpServer *mcp.Server, cfg config.Config) *Server {
	return &Server{
		Logger: logger,
		MCP:    mcpServer,
		Config: cfg,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.WithTraceLogger(s.Logger))

	r.HandleFunc("/health", s.HealthHandler).Methods("GET")

	if s.Config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	if s.MCP != nil && s.Config.Transport == config.TransportHTTP {
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.MCP
		}, nil)
		r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(handler, "mcp"))
	}

	return r
}
