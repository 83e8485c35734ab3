// Package proxy implements the gateway relay that lets the client talk
// to a single fixed origin while the real data service stays
// configurable behind it.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/southmarket/storefront/internal/domain"
)

const defaultTimeout = 10 * time.Second

// unavailableBody is the fixed failure envelope. Callers of the proxy
// see exactly two outcomes: the backend's own answer, or this.
var unavailableBody = json.RawMessage(`{"error":"Backend unavailable"}`)

// Option configures the forwarder.
type Option func(*Forwarder)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(f *Forwarder) {
		f.httpClient = httpClient
	}
}

// WithTimeout bounds each relayed call. Ignored when a custom HTTP
// client is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Forwarder) {
		f.timeout = timeout
	}
}

// Forwarder relays requests to the configured backend origin. It is
// stateless; the origin is fixed for the process lifetime.
type Forwarder struct {
	origin     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a forwarder for the given backend origin.
func New(origin string, logger *slog.Logger, opts ...Option) *Forwarder {
	f := &Forwarder{
		origin:  origin,
		timeout: defaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{Timeout: f.timeout}
	}
	return f
}

// Forward relays req to the backend and returns either the backend's
// status and JSON body unchanged, or the 503 unavailable envelope. It
// never returns an error: every transport-level failure (connection
// refused, timeout, non-JSON payload) collapses into the envelope.
//
// The query string is relayed verbatim for GET and dropped for POST.
// The asymmetry is inherited, documented behavior; do not unify it
// without a compatibility reason.
func (f *Forwarder) Forward(ctx context.Context, req domain.ForwardedRequest) domain.ForwardedResponse {
	if req.TargetPath == "" {
		return unavailable()
	}

	var httpReq *http.Request
	var err error

	switch req.Method {
	case http.MethodGet:
		target := f.origin + "/" + req.TargetPath
		if req.RawQuery != "" {
			target += "?" + req.RawQuery
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	case http.MethodPost:
		// A body we cannot parse is not relayed partially; it is a
		// transport failure like any other.
		if !gjson.ValidBytes(req.Body) {
			return unavailable()
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, f.origin+"/"+req.TargetPath, bytes.NewReader(req.Body))
		if httpReq != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
	default:
		return unavailable()
	}
	if err != nil {
		f.logger.Warn("proxy request build failed",
			slog.String("path", req.TargetPath),
			slog.String("error", err.Error()))
		return unavailable()
	}

	resp, err := f.httpClient.Do(httpReq)
	if err != nil {
		f.logger.Warn("backend unreachable",
			slog.String("path", req.TargetPath),
			slog.String("error", err.Error()))
		return unavailable()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable()
	}
	if !gjson.ValidBytes(body) {
		return unavailable()
	}

	return domain.ForwardedResponse{StatusCode: resp.StatusCode, Body: body}
}

func unavailable() domain.ForwardedResponse {
	return domain.ForwardedResponse{
		StatusCode: http.StatusServiceUnavailable,
		Body:       unavailableBody,
	}
}
