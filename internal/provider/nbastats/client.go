// Package nbastats provides HTTP client infrastructure for the stats.nba.com
// style provider: tabular result-set payloads, header-based access control,
// and aggressive throttling requirements.
//
// Rate limiting is handled via a token bucket limiter. Transient failures at
// the game-discovery endpoint are retried with capped, jittered exponential
// backoff; box-score fetches get a single fixed-delay retry (see boxscore.go).
package nbastats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	retryBaseDelay       = 500 * time.Millisecond
	retryMaxDelay        = 30 * time.Second
	discoveryMaxAttempts = 4
)

// ClientConfig is the explicit per-client configuration. Headers are part of
// the constructor contract rather than process-wide mutable defaults: two
// clients with different header sets can coexist in one process.
type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	Headers           map[string]string
}

// DefaultHeaders returns the header set the provider expects on every
// request. Without these the provider serves empty payloads or hangs.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		"Referer":            "https://stats.nba.com/",
		"Origin":             "https://stats.nba.com",
		"Accept":             "application/json, text/plain, */*",
		"x-nba-stats-origin": "stats",
		"x-nba-stats-token":  "true",
	}
}

// Client is the shared HTTP client for all provider endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a provider client with rate limiting.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	headers := cfg.Headers
	if headers == nil {
		headers = DefaultHeaders()
	}
	rps := float64(cfg.RequestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		headers:    headers,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// resultSet is one named tabular record set inside a provider response.
type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// statsResponse is the common provider response envelope.
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

// statusError reports a non-200 response. 429 and 5xx classes count as
// transient for retry purposes.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.status, e.body)
}

// isTransient classifies an error as a timeout/connection-class failure that
// retrying may fix. Anything else propagates immediately.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.status == http.StatusTooManyRequests || se.status >= 500
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		// Connection refused/reset and DNS failures arrive wrapped here.
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

// get performs one rate-limited GET request against a provider endpoint.
// An empty body decodes to ErrUnavailable-compatible emptiness upstream;
// here it is reported as a response with no result sets.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*statsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode, body: truncate(body, 200)}
	}

	if len(body) == 0 {
		return &statsResponse{}, nil
	}

	var result statsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// getWithBackoff retries transient failures with jittered exponential
// backoff: base × 2^attempt, capped at retryMaxDelay, bounded attempts.
// Non-transient errors propagate immediately.
func (c *Client) getWithBackoff(ctx context.Context, path string, params url.Values, maxAttempts int) (*statsResponse, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := c.get(ctx, path, params)
		if err == nil {
			return resp, nil
		}
		if !isTransient(err) {
			return nil, err
		}
		lastErr = err

		if attempt == maxAttempts-1 {
			break
		}

		delay := retryBaseDelay * (1 << uint(attempt))
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
		// Jitter spreads retries from concurrent runs apart.
		delay += time.Duration(rand.Int63n(int64(retryBaseDelay)))

		c.logger.Warn("transient provider error, backing off",
			"path", path, "attempt", attempt+1, "delay", delay, "error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%s failed after %d attempts: %w", path, maxAttempts, lastErr)
}

// namedResultSet returns the result set with the given name, or the set at
// the fallback index when the provider omits names.
func (r *statsResponse) namedResultSet(name string, fallbackIdx int) *resultSet {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i]
		}
	}
	if fallbackIdx >= 0 && fallbackIdx < len(r.ResultSets) {
		return &r.ResultSets[fallbackIdx]
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
