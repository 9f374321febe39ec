// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

// Package gateway is the single HTTP client every domain service client
// routes through.
//
// It owns the base URL, the 30s timeout, the JSON default headers and the
// bearer credential. Every call is single-shot: no retries, no queueing.
// A 401 is returned as a KindAuthExpired *Error; the gateway never touches
// the session or navigation, the caller decides what to do.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/metrics"
	"github.com/tomtom215/pawshop/internal/models"
)

// DefaultTimeout is the fixed per-call timeout.
const DefaultTimeout = 30 * time.Second

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 10 << 20

// TokenSource supplies the bearer credential. It is read before every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Breaker    BreakerConfig
}

// Client is the API gateway client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	tokens     TokenSource
	breaker    *breaker
}

// Request describes one API call. At most one of Body and Form is set.
type Request struct {
	Method string
	Path   string
	Query  models.Query
	Body   any
	Form   *Form
}

// New creates a gateway client. tokens may be nil for unauthenticated use.
func New(cfg Config, tokens TokenSource) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "pawshop-client"
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		userAgent:  userAgent,
		tokens:     tokens,
	}
	if cfg.Breaker.Enabled {
		c.breaker = newBreaker("pawshop-api", cfg.Breaker)
	}
	return c, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a JSON GET.
func (c *Client) Get(ctx context.Context, path string, query models.Query, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post performs a JSON POST.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put performs a JSON PUT.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch performs a JSON PATCH.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Do performs req and decodes a 2xx body into out (when out is non-nil).
// Every failure is an *Error.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	start := time.Now()

	var body []byte
	var err error
	if c.breaker != nil {
		body, err = c.breaker.execute(func() ([]byte, error) { return c.roundTrip(ctx, req) })
		if errors.Is(err, errBreakerOpen) {
			err = newError(KindUnavailable, 0, req.Method, req.Path, "", err)
		}
	} else {
		body, err = c.roundTrip(ctx, req)
	}

	if err == nil && out != nil && len(bytes.TrimSpace(body)) > 0 {
		if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
			err = newError(KindServer, 0, req.Method, req.Path, "", fmt.Errorf("decode response: %w", decodeErr))
		}
	}

	c.record(ctx, req, err, time.Since(start))
	return err
}

// roundTrip sends the request and returns the 2xx body or an *Error.
func (c *Client) roundTrip(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, newError(KindNetwork, 0, req.Method, req.Path, "", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(req, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, transportError(req, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := classifyStatus(resp.StatusCode)
		return nil, newError(kind, resp.StatusCode, req.Method, req.Path, serverMessage(body),
			fmt.Errorf("API returned status %d", resp.StatusCode))
	}
	return body, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	endpoint := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := "application/json"
	switch {
	case req.Form != nil:
		buf, ct, err := req.Form.encode()
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("User-Agent", c.userAgent)

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Could not read credential, sending request without it")
		} else if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

// transportError classifies a failure that produced no response.
func transportError(req Request, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return newError(KindTimeout, 0, req.Method, req.Path, "", err)
	}
	return newError(KindNetwork, 0, req.Method, req.Path, "", err)
}

func (c *Client) record(ctx context.Context, req Request, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	metrics.RecordGatewayRequest(req.Method, outcome, elapsed)

	logger := logging.Ctx(ctx)
	switch {
	case err == nil:
		logger.Debug().Str("method", req.Method).Str("path", req.Path).Dur("duration", elapsed).Msg("API call")
	case KindOf(err) == KindAuthExpired:
		logger.Warn().Str("method", req.Method).Str("path", req.Path).Msg("API rejected credential")
	default:
		logger.Warn().Err(err).Str("method", req.Method).Str("path", req.Path).
			Str("kind", outcome).Dur("duration", elapsed).Msg("API call failed")
	}
}
