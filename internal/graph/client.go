// Package graph is a minimal client for the Facebook Graph (Marketing) API.
// It covers the four request shapes the ads operations need: read an object,
// read an edge, post to an object or edge, and delete an object. Only the
// first page of an edge is ever read.
package graph

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickwarner/fbads-mcp/internal/observability"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// API is the Marketing API surface used by the ads operations.
type API interface {
	// Get reads fields of a single object.
	Get(ctx context.Context, id string, fields []string) (Node, error)
	// Edge reads the first page of an edge such as campaigns or insights.
	Edge(ctx context.Context, id, edge string, fields []string, params Params) ([]Node, error)
	// Post creates an object on an edge, or updates the object itself when edge is empty.
	Post(ctx context.Context, id, edge string, params Params) (Node, error)
	// Delete removes an object.
	Delete(ctx context.Context, id string) error
}

var _ API = (*Client)(nil)

// Options configures a Client.
type Options struct {
	BaseURL     string
	Version     string
	AccessToken string
	AppSecret   string
	Timeout     time.Duration
}

// Client talks to the Graph API over HTTP.
type Client struct {
	baseURL     string
	accessToken string
	proof       string
	httpClient  *http.Client
	logger      *zap.Logger
	metrics     observability.MetricsRegistry
}

// NewClient creates a Graph API client. When an app secret is configured every
// request carries an appsecret_proof derived from the access token.
func NewClient(opts Options, logger *zap.Logger, metrics observability.MetricsRegistry) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if opts.Version != "" {
		base += "/" + strings.Trim(opts.Version, "/")
	}
	c := &Client{
		baseURL:     base,
		accessToken: opts.AccessToken,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:  logger,
		metrics: metrics,
	}
	if opts.AppSecret != "" && opts.AccessToken != "" {
		c.proof = appSecretProof(opts.AppSecret, opts.AccessToken)
	}
	return c
}

// appSecretProof is hex(HMAC-SHA256(secret, token)).
func appSecretProof(secret, token string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// Get reads fields of a single object.
func (c *Client) Get(ctx context.Context, id string, fields []string) (Node, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	q, err := c.encode(nil, fields)
	if err != nil {
		return nil, err
	}
	var node Node
	if err := c.do(ctx, http.MethodGet, id, q, &node); err != nil {
		return nil, err
	}
	return node, nil
}

// Edge reads the first page of an edge.
func (c *Client) Edge(ctx context.Context, id, edge string, fields []string, params Params) ([]Node, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	q, err := c.encode(params, fields)
	if err != nil {
		return nil, err
	}
	var page struct {
		Data []Node `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, id+"/"+edge, q, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Post creates on an edge, or updates id itself when edge is empty.
func (c *Client) Post(ctx context.Context, id, edge string, params Params) (Node, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	form, err := c.encode(params, nil)
	if err != nil {
		return nil, err
	}
	path := id
	if edge != "" {
		path += "/" + edge
	}
	var node Node
	if err := c.do(ctx, http.MethodPost, path, form, &node); err != nil {
		return nil, err
	}
	return node, nil
}

// Delete removes an object.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	q, err := c.encode(nil, nil)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, id, q, nil)
}

// encode builds the query or form values including credentials.
func (c *Client) encode(params Params, fields []string) (url.Values, error) {
	v := url.Values{}
	for key, val := range params {
		s, err := encodeValue(val)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		v.Set(key, s)
	}
	if len(fields) > 0 {
		v.Set("fields", strings.Join(fields, ","))
	}
	v.Set("access_token", c.accessToken)
	if c.proof != "" {
		v.Set("appsecret_proof", c.proof)
	}
	return v, nil
}

func encodeValue(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case json.RawMessage:
		return string(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// do performs one request and decodes the JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, values url.Values, out any) error {
	start := time.Now()
	status := "error"
	defer func() {
		c.metrics.RecordGraphLatency(method, time.Since(start))
		c.metrics.IncrementGraphRequests(method, status)
	}()

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	var body io.Reader
	if method == http.MethodPost {
		body = bytes.NewBufferString(values.Encode())
	} else {
		endpoint += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", zap.Error(err))
		}
	}()
	status = strconv.Itoa(resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error *Error `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != nil {
			envelope.Error.StatusCode = resp.StatusCode
			return envelope.Error
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(raw))
	}

	c.logger.Debug("graph request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if out == nil || len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
