// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"micromatch/cli/internal/config"
	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/logging"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

// userAgent is sent with every request.
const userAgent = "micromatch-cli/1.0"

// HTTP implements API over the REST endpoints.
// It holds no per-user state and is safe for concurrent use.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://127.0.0.1:8000")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints config.Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	log    *pterm.Logger
}

// Option customizes the HTTP client.
type Option func(*HTTP)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) { h.client = c }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *pterm.Logger) Option {
	return func(h *HTTP) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHTTP creates a REST client for baseURL. A zero timeout means none.
func NewHTTP(baseURL string, endpoints config.Endpoints, timeout time.Duration, opts ...Option) *HTTP {
	return newHTTP(baseURL, endpoints, timeout, opts...)
}

func newHTTP(baseURL string, endpoints config.Endpoints, timeout time.Duration, opts ...Option) *HTTP {
	h := &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Status calls GET / and returns the banner message.
func (h *HTTP) Status(ctx context.Context) (string, error) {
	req, err := h.newRequest(ctx, http.MethodGet, h.endpoints.Status, nil)
	if err != nil {
		return "", err
	}
	resp, err := h.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if !isSuccess(resp.StatusCode) {
		return "", newStatusError(resp)
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// newRequest builds a request with the standard headers set.
func (h *HTTP) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	h.setStandardHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// setStandardHeaders applies headers shared by all requests.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// do sends req, wrapping transport failures so callers can tell them apart
// from non-success responses.
func (h *HTTP) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Debug("request failed", h.log.Args(
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get("X-Request-ID"),
			"error", logging.Mask(err.Error()),
		))
		return nil, apperr.Wrap(apperr.Transport, "request failed", err)
	}
	h.log.Debug("request completed", h.log.Args(
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	))
	return resp, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
