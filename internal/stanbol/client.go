// Package stanbol talks to an Apache Stanbol enhancer: it submits text for
// enhancement and can manage a local enhancer container.
package stanbol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	DefaultURL        = "http://localhost:8081/enhancer"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultMaxBytes   = 10 << 20
)

// Sentinel errors for the stanbol package.
var (
	// ErrUpstreamTimeout is returned when the enhancer does not answer in time.
	ErrUpstreamTimeout = errors.New("stanbol enhancer timed out")

	// ErrUnhealthy is returned when the enhancer health check fails.
	ErrUnhealthy = errors.New("stanbol health check failed")

	// ErrTooLarge is returned when a response exceeds the configured limit.
	ErrTooLarge = errors.New("stanbol response too large")
)

// StatusError is returned for non-2xx enhancer responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stanbol error (status %d): %s", e.Code, e.Body)
}

// Config configures a Client.
type Config struct {
	// URL is the enhancer endpoint (default: http://localhost:8081/enhancer)
	URL string
	// Timeout bounds a single request attempt (default: 30s)
	Timeout time.Duration
	// MaxRetries is the number of attempts for transient failures (default: 3)
	MaxRetries uint
	// RetryDelay is the base backoff delay (default: 500ms)
	RetryDelay time.Duration
	// MaxBytes caps the response body (default: 10MiB)
	MaxBytes int64
	// HTTPClient overrides the HTTP client (tests)
	HTTPClient *http.Client
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// Client submits text to a Stanbol enhancer.
type Client struct {
	url        string
	timeout    time.Duration
	maxRetries uint
	retryDelay time.Duration
	maxBytes   int64
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new enhancer client.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		url:        strings.TrimSuffix(cfg.URL, "/"),
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		maxBytes:   cfg.MaxBytes,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
}

// URL returns the enhancer endpoint.
func (c *Client) URL() string {
	return c.url
}

// Timeout returns the per-attempt timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Enhance posts text to the enhancer and returns the raw JSON-LD response.
// Network errors, 429 and 5xx responses are retried. A timed out attempt
// fails immediately with ErrUpstreamTimeout.
func (c *Client) Enhance(ctx context.Context, text string) ([]byte, error) {
	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.post(ctx, text)
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetries),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(10*time.Second),
		retry.LastErrorOnly(true),
		retry.RetryIf(shouldRetry),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying stanbol request", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %s: %v", ErrUpstreamTimeout, c.timeout, err)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=UTF-8")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(respBody)) > c.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, c.maxBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(respBody), 512)}
	}

	c.logger.Debug("stanbol enhancement complete",
		"bytes_in", len(text),
		"bytes_out", len(respBody),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return respBody, nil
}

// HealthCheck checks that the enhancer answers GET requests.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// shouldRetry returns true for errors worth another attempt.
func shouldRetry(err error) bool {
	if isTimeout(err) || errors.Is(err, context.Canceled) || errors.Is(err, ErrTooLarge) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	return true
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
