package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/fbads-mcp/internal/ads"
	"github.com/patrickwarner/fbads-mcp/internal/api"
	"github.com/patrickwarner/fbads-mcp/internal/config"
	"github.com/patrickwarner/fbads-mcp/internal/graph"
	"github.com/patrickwarner/fbads-mcp/internal/observability"
	"github.com/patrickwarner/fbads-mcp/internal/tools"
	"go.uber.org/zap"
)

const (
	serverName    = "facebook-ads-mcp-server"
	serverVersion = "1.0.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fbads-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.InitLogger(cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Validate(logger) {
		return fmt.Errorf("invalid config: %w", cfg.Check())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRate)
		if err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
		} else {
			defer shutdown()
		}
	}

	var metrics observability.MetricsRegistry = observability.NewNoOpRegistry()
	if cfg.MetricsEnabled {
		metrics = observability.NewPrometheusRegistry()
	}

	client := graph.NewClient(graph.Options{
		BaseURL:     cfg.Graph.BaseURL,
		Version:     cfg.Graph.Version,
		AccessToken: cfg.Facebook.AccessToken,
		AppSecret:   cfg.Facebook.AppSecret,
		Timeout:     cfg.Graph.Timeout,
	}, logger.Named("graph"), metrics)
	logger.Info("Facebook Graph client initialized",
		zap.String("version", cfg.Graph.Version),
		zap.String("account_id", graph.AccountID(cfg.Facebook.AccountID)))

	server := newMCPServer(cfg, client, logger, metrics)

	return serve(ctx, cfg, server, logger, &mcp.StdioTransport{})
}

// serve runs the configured transport until ctx is cancelled or the stdio
// client disconnects. The side HTTP server carries /health and /metrics; in
// stdio mode it is optional and a listen failure only logs a warning, in
// http mode it carries /mcp and a listen failure is fatal.
func serve(ctx context.Context, cfg config.Config, server *mcp.Server, logger *zap.Logger, stdio mcp.Transport) error {
	errCh := make(chan error, 2)

	var httpSrv *http.Server
	if cfg.Transport == config.TransportHTTP || cfg.MetricsEnabled {
		httpSrv = &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           api.NewServer(logger, server, cfg).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		fatal := cfg.Transport == config.TransportHTTP
		go func() {
			logger.Info("HTTP server running", zap.String("addr", httpSrv.Addr), zap.String("transport", cfg.Transport))
			err := httpSrv.ListenAndServe()
			if err == nil || errors.Is(err, http.ErrServerClosed) {
				return
			}
			if !fatal {
				logger.Warn("side HTTP server unavailable, continuing over stdio",
					zap.String("addr", httpSrv.Addr), zap.Error(err))
				return
			}
			errCh <- fmt.Errorf("listen: %w", err)
		}()
	}

	if cfg.Transport == config.TransportStdio {
		go func() {
			errCh <- runStdio(ctx, server, logger, stdio)
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		logger.Info("Ukončování serveru...")
	case err = <-errCh:
	}

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := httpSrv.Shutdown(shutdownCtx); serr != nil {
			return fmt.Errorf("server shutdown failed: %w", serr)
		}
	}
	if err != nil {
		return err
	}
	logger.Info("Server byl úspěšně ukončen.")
	return nil
}

// newMCPServer wires the Graph client into the ads operations and publishes
// them as MCP tools and prompts.
func newMCPServer(cfg config.Config, client graph.API, logger *zap.Logger, metrics observability.MetricsRegistry) *mcp.Server {
	account := cfg.Facebook.AccountID
	opsLogger := logger.Named("ads")

	toolServer := tools.New(
		ads.NewCampaigns(client, account, opsLogger),
		ads.NewAudiences(client, account, opsLogger),
		ads.NewAnalytics(client, account, opsLogger),
		logger.Named("tools"),
		metrics,
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)
	toolServer.Register(server)
	return server
}

// runStdio serves MCP over the stdio transport until the client disconnects
// or ctx is cancelled. Wire traffic goes to the debug log.
func runStdio(ctx context.Context, server *mcp.Server, logger *zap.Logger, stdio mcp.Transport) error {
	wireLog, err := zap.NewStdLogAt(logger.Named("mcp-wire"), zap.DebugLevel)
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}
	transport := &mcp.LoggingTransport{
		Transport: stdio,
		Writer:    wireLog.Writer(),
	}

	logger.Info("MCP server running via stdio")
	if err = server.Run(ctx, transport); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
