package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// ErrMissingCredentials is returned by Check when any Facebook credential is absent.
var ErrMissingCredentials = errors.New("missing facebook credentials")

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Facebook holds the Marketing API credentials.
type Facebook struct {
	AppID       string `env:"APP_ID"`
	AppSecret   string `env:"APP_SECRET"`
	AccessToken string `env:"ACCESS_TOKEN"`
	AccountID   string `env:"ACCOUNT_ID"`
}

// Graph configures the outbound Graph API client.
type Graph struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://graph.facebook.com"`
	Version string        `env:"API_VERSION" envDefault:"v21.0"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Tracing configures OpenTelemetry export.
type Tracing struct {
	Enabled    bool    `env:"ENABLED" envDefault:"false"`
	Endpoint   string  `env:"ENDPOINT" envDefault:"tempo:4317"`
	SampleRate float64 `env:"SAMPLE_RATE" envDefault:"1.0"`
}

// Config holds application configuration derived from environment variables.
type Config struct {
	Facebook Facebook `envPrefix:"FACEBOOK_"`
	Graph    Graph    `envPrefix:"GRAPH_"`
	Tracing  Tracing  `envPrefix:"TRACING_"`

	Port           string `env:"PORT" envDefault:"3000"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"fbads-mcp"`
	Transport      string `env:"MCP_TRANSPORT" envDefault:"stdio"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load parses environment variables and returns a Config populated with
// defaults when variables are absent. Credentials are not checked here; see Validate.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	if cfg.Transport != TransportStdio && cfg.Transport != TransportHTTP {
		return cfg, fmt.Errorf("unsupported MCP_TRANSPORT %q", cfg.Transport)
	}
	return cfg, nil
}

// MissingCredentials lists the environment variables of every absent credential.
func (c Config) MissingCredentials() []string {
	var missing []string
	if c.Facebook.AppID == "" {
		missing = append(missing, "FACEBOOK_APP_ID")
	}
	if c.Facebook.AppSecret == "" {
		missing = append(missing, "FACEBOOK_APP_SECRET")
	}
	if c.Facebook.AccessToken == "" {
		missing = append(missing, "FACEBOOK_ACCESS_TOKEN")
	}
	if c.Facebook.AccountID == "" {
		missing = append(missing, "FACEBOOK_ACCOUNT_ID")
	}
	return missing
}

// Check returns ErrMissingCredentials naming the absent variables, or nil.
func (c Config) Check() error {
	if missing := c.MissingCredentials(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// Validate reports whether all four platform credentials are present and
// logs the specific variables that are not.
func (c Config) Validate(logger *zap.Logger) bool {
	missing := c.MissingCredentials()
	if len(missing) == 0 {
		return true
	}
	logger.Error("Chybí některé povinné Facebook proměnné prostředí",
		zap.Strings("missing", missing))
	return false
}
