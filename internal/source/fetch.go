// Package source fetches conversion input from remote URLs and prepares
// plain text for enhancement.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 10 << 20
)

// Sentinel errors for the source package.
var (
	ErrInvalidURL             = errors.New("invalid URL")
	ErrUpstreamTimeout        = errors.New("URL fetch timed out")
	ErrMissingContentType     = errors.New("response has no content type")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrUpstreamStatus         = errors.New("URL returned an error status")
	ErrTooLarge               = errors.New("response body too large")
)

// Kind is what a fetched document contains.
type Kind int

const (
	// KindText is plain text that still needs enhancement.
	KindText Kind = iota
	// KindEnhancement is enhancer JSON output, ready for reconciliation.
	KindEnhancement
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEnhancement:
		return "enhancement"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Content is a fetched document.
type Content struct {
	URL         string
	ContentType string
	Kind        Kind
	Body        []byte
}

// Config configures a Fetcher.
type Config struct {
	// Timeout bounds the whole fetch (default: 10s)
	Timeout time.Duration
	// MaxBytes caps the response body (default: 10 MiB)
	MaxBytes int64
	// HTTPClient overrides the HTTP client (tests)
	HTTPClient *http.Client
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// Fetcher downloads text or enhancement JSON from a URL.
type Fetcher struct {
	timeout    time.Duration
	maxBytes   int64
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
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
	return &Fetcher{
		timeout:    cfg.Timeout,
		maxBytes:   cfg.MaxBytes,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
}

// Timeout returns the fetch timeout.
func (f *Fetcher) Timeout() time.Duration {
	return f.timeout
}

// Fetch downloads rawURL and classifies it by Content-Type:
// application/json and application/ld+json are enhancement output,
// text/plain is fulltext. Anything else is ErrUnsupportedContentType.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Content, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Accept", "application/json, application/ld+json, text/plain")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %s", ErrUpstreamTimeout, f.timeout)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	header := resp.Header.Get("Content-Type")
	if header == "" {
		return nil, ErrMissingContentType
	}
	mediaType := mediaTypeOf(header)

	var kind Kind
	switch mediaType {
	case "application/json", "application/ld+json":
		kind = KindEnhancement
	case "text/plain":
		kind = KindText
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, mediaType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %s", ErrUpstreamTimeout, f.timeout)
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, f.maxBytes)
	}

	f.logger.Debug("fetched source", "url", rawURL, "content_type", mediaType, "bytes", len(body))
	return &Content{
		URL:         rawURL,
		ContentType: mediaType,
		Kind:        kind,
		Body:        body,
	}, nil
}

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}

// mediaTypeOf strips parameters from a Content-Type header value.
func mediaTypeOf(header string) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(strings.Split(header, ";")[0]))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
