// Package httpclient is the thin JSON-over-HTTP layer under the catalog API clients.
//
// Contract:
//   - non-2xx responses become *apierror.HTTPError (with or without a parsed body)
//   - 204 and empty bodies resolve to no value
//   - transport failures become *apierror.NetworkError
//   - no retries, no timeout unless Config.Timeout is set
//
// Every request carries an X-Request-ID header, an OpenTelemetry client span
// (via otelhttp) and is counted in the storefront_client_* metrics.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/Haleralex/storefront/internal/pkg/apierror"
	"github.com/Haleralex/storefront/internal/pkg/logger"
	"github.com/Haleralex/storefront/internal/pkg/metrics"
)

const (
	// RequestIDHeader - заголовок для Request ID
	RequestIDHeader = "X-Request-ID"

	maxBodySize = 4 << 20
)

// ErrInvalidBaseURL is returned by New for a missing or non-http(s) base URL.
var ErrInvalidBaseURL = errors.New("httpclient: base URL must be an absolute http(s) URL")

// ============================================
// Configuration
// ============================================

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8080".
	BaseURL string

	// Timeout is the whole-request timeout. Zero leaves timing to the caller's context.
	Timeout time.Duration

	// HTTPClient supplies the base transport. If nil, http.DefaultTransport is used.
	HTTPClient *http.Client

	// TracerProvider overrides the global provider (tests use a span recorder).
	TracerProvider trace.TracerProvider

	Logger    *slog.Logger
	UserAgent string
}

// ============================================
// Query parameters
// ============================================

// Query holds request query parameters. A nil value means the key is left out.
type Query map[string]*string

// NewQuery returns an empty query.
func NewQuery() Query {
	return Query{}
}

// Set sets key to value.
func (q Query) Set(key, value string) Query {
	q[key] = &value
	return q
}

// SetInt sets key to the decimal form of v.
func (q Query) SetInt(key string, v int) Query {
	return q.Set(key, strconv.Itoa(v))
}

// SetIfNotEmpty sets key only when value is non-empty; otherwise the key is left out.
func (q Query) SetIfNotEmpty(key, value string) Query {
	if value == "" {
		q[key] = nil
		return q
	}
	return q.Set(key, value)
}

// Encode serializes the query, skipping keys whose value is nil.
func (q Query) Encode() string {
	values := url.Values{}
	for key, value := range q {
		if value == nil {
			continue
		}
		values.Set(key, *value)
	}
	return values.Encode()
}

// RequestOptions carries the optional parts of a request.
type RequestOptions struct {
	Query Query
	Body  any
	// Route is the path template used for span names and metric labels
	// (e.g. "/api/v3/products/{id}"). Defaults to the request path.
	Route string
}

// ============================================
// Client
// ============================================

// Client performs JSON requests against the catalog API.
type Client struct {
	baseURL   string
	http      *http.Client
	logger    *slog.Logger
	userAgent string
}

type routeKey struct{}

// New creates a new Client.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	var base http.RoundTripper = http.DefaultTransport
	var jar http.CookieJar
	if cfg.HTTPClient != nil {
		if cfg.HTTPClient.Transport != nil {
			base = cfg.HTTPClient.Transport
		}
		jar = cfg.HTTPClient.Jar
	}

	otelOpts := []otelhttp.Option{otelhttp.WithSpanNameFormatter(spanName)}
	if cfg.TracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(cfg.TracerProvider))
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "storefront"
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(base, otelOpts...),
			Timeout:   cfg.Timeout,
			Jar:       jar,
		},
		logger:    log.With(slog.String("component", "httpclient")),
		userAgent: userAgent,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query Query, out any) error {
	return c.Do(ctx, http.MethodGet, path, RequestOptions{Query: query}, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, RequestOptions{Body: body}, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, RequestOptions{Body: body}, out)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, RequestOptions{Body: body}, out)
}

// Delete performs a DELETE request. A 204 response resolves to nil.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, RequestOptions{}, nil)
}

// Do performs a request and decodes a 2xx JSON body into out (when out is non-nil
// and the body is non-empty).
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions, out any) error {
	route := opts.Route
	if route == "" {
		route = path
	}

	requestID := logger.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.WithRequestID(ctx, requestID)
	}
	ctx = context.WithValue(ctx, routeKey{}, route)

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if encoded := opts.Query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	metrics.ClientRequestsInFlight.Inc()
	defer metrics.ClientRequestsInFlight.Dec()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordClientRequest(method, route, 0, time.Since(start))
		c.logger.WarnContext(ctx, "api request failed",
			slog.String("method", method),
			slog.String("route", route),
			slog.String("error", err.Error()),
		)
		return apierror.NewNetworkError(err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	duration := time.Since(start)
	metrics.RecordClientRequest(method, route, resp.StatusCode, duration)

	c.logger.DebugContext(ctx, "api request",
		slog.String("method", method),
		slog.String("route", route),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	if readErr != nil {
		return apierror.NewNetworkError(fmt.Errorf("read response body: %w", readErr))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp, data)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response json: %w", err)
	}
	return nil
}

// newHTTPError builds the typed error; an unparsable body yields Body == nil.
func newHTTPError(resp *http.Response, data []byte) *apierror.HTTPError {
	var body *apierror.ErrorResponse
	if len(bytes.TrimSpace(data)) > 0 {
		var parsed apierror.ErrorResponse
		if err := json.Unmarshal(data, &parsed); err == nil {
			body = &parsed
		}
	}
	return apierror.NewHTTPError(resp.StatusCode, statusText(resp), body)
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func spanName(_ string, r *http.Request) string {
	route, _ := r.Context().Value(routeKey{}).(string)
	if route == "" {
		route = r.URL.Path
	}
	return r.Method + " " + route
}
