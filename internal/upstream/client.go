// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/challengerec/internal/config"
	"github.com/tomtom215/challengerec/internal/metrics"
	"github.com/tomtom215/challengerec/internal/recommend"
)

const (
	actionsPath = "/data"
	catalogPath = "/data/id"

	// maxErrorBodySize bounds how much of an error response is kept for the
	// error message.
	maxErrorBodySize = 4 * 1024

	// maxResponseSize bounds a successful response body.
	maxResponseSize = 256 << 20
)

// Client talks to the challenge service. It implements recommend.Upstream
// and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	maxTries   uint
	retryDelay time.Duration
	logger     zerolog.Logger
}

var _ recommend.Upstream = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client. Its Timeout is used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBreakerSettings replaces the default breaker, mainly so tests can trip
// it quickly.
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(c *Client) { c.breaker = newBreaker(st) }
}

// New builds a client from cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.UpstreamConfig, logger zerolog.Logger, opts ...Option) *Client {
	limit := rate.Inf
	burst := 1
	if cfg.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.RateLimitRPS)
		burst = max(1, int(cfg.RateLimitRPS))
	}

	tries := cfg.RetryAttempts
	if tries < 1 {
		tries = 1
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		maxTries:   uint(tries),
		retryDelay: cfg.RetryDelay,
		logger:     logger.With().Str("component", "upstream").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = newBreaker(defaultBreakerSettings(c.logger))
	}
	return c
}

// FetchActions downloads the full action log.
func (c *Client) FetchActions(ctx context.Context) ([]recommend.UserAction, error) {
	body, err := c.get(ctx, actionsPath, "actions")
	if err != nil {
		return nil, err
	}
	actions, unknown, err := decodeActions(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode actions: %w", recommend.ErrUpstreamFetch, err)
	}
	if unknown > 0 {
		metrics.UnknownCategories.Add(float64(unknown))
		c.logger.Warn().Int("count", unknown).Msg("Mapped unrecognized categories to ETC")
	}
	return actions, nil
}

// FetchCatalog downloads every challenge id in catalog order.
func (c *Client) FetchCatalog(ctx context.Context) ([]int64, error) {
	body, err := c.get(ctx, catalogPath, "catalog")
	if err != nil {
		return nil, err
	}
	ids, err := decodeCatalog(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %w", recommend.ErrUpstreamFetch, err)
	}
	return ids, nil
}

// statusError is a non-2xx response.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// clientFault reports whether the request itself is wrong, so repeating it
// cannot help.
func (e *statusError) clientFault() bool {
	return e.Code >= 400 && e.Code < 500 && e.Code != http.StatusTooManyRequests
}

// get fetches path with retries and returns the raw body.
func (c *Client) get(ctx context.Context, path, endpoint string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	if c.retryDelay > 0 {
		bo.InitialInterval = c.retryDelay
	}

	attempt := 0
	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}

		body, err := c.breaker.Execute(func() ([]byte, error) {
			return c.do(ctx, path, endpoint)
		})
		if err == nil {
			return body, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordUpstreamRequest(endpoint, "rejected", 0)
			return nil, backoff.Permanent(err)
		}
		var se *statusError
		if errors.As(err, &se) {
			if se.clientFault() {
				return nil, backoff.Permanent(err)
			}
			if ra := retryAfter(se); ra > 0 {
				return nil, backoff.RetryAfter(ra)
			}
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Int("attempt", attempt).
				Dur("retry_in", next).
				Msg("Upstream request failed, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", recommend.ErrUpstreamFetch, path, err)
	}
	return body, nil
}

// do performs one HTTP attempt.
func (c *Client) do(ctx context.Context, path, endpoint string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.RecordUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &statusError{Code: resp.StatusCode, Body: readBodyForError(resp.Body)}
		if resp.StatusCode == http.StatusTooManyRequests {
			se.Body = resp.Header.Get("Retry-After")
		}
		return nil, se
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// retryAfter returns the Retry-After seconds carried by a 429, or 0.
func retryAfter(se *statusError) int {
	if se.Code != http.StatusTooManyRequests || se.Body == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(se.Body))
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}

func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return strings.TrimSpace(string(body))
}
