// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/distanbol/internal/home"
	"github.com/jackzampolin/distanbol/internal/report"
	"github.com/jackzampolin/distanbol/internal/source"
	"github.com/jackzampolin/distanbol/internal/stanbol"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
//
// A Services value is never mutated after it is attached to a request.
// Config reloads build a new one.
type Services struct {
	Enhancer          *stanbol.Client
	Fetcher           *source.Fetcher
	Renderer          *report.Renderer
	StanbolManager    *stanbol.DockerManager
	DefaultConfidence float64
	Logger            *slog.Logger
	Home              *home.Dir
}

type servicesKey struct{}

type loggerKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// EnhancerFrom extracts the Stanbol client from context.
func EnhancerFrom(ctx context.Context) *stanbol.Client {
	if s := ServicesFrom(ctx); s != nil {
		return s.Enhancer
	}
	return nil
}

// FetcherFrom extracts the URL fetcher from context.
func FetcherFrom(ctx context.Context) *source.Fetcher {
	if s := ServicesFrom(ctx); s != nil {
		return s.Fetcher
	}
	return nil
}

// RendererFrom extracts the report renderer from context.
func RendererFrom(ctx context.Context) *report.Renderer {
	if s := ServicesFrom(ctx); s != nil {
		return s.Renderer
	}
	return nil
}

// StanbolManagerFrom extracts the Stanbol container manager from context.
// Nil unless the server manages its own container.
func StanbolManagerFrom(ctx context.Context) *stanbol.DockerManager {
	if s := ServicesFrom(ctx); s != nil {
		return s.StanbolManager
	}
	return nil
}

// DefaultConfidenceFrom returns the configured default threshold, or
// fallback when no services are attached.
func DefaultConfidenceFrom(ctx context.Context, fallback float64) float64 {
	if s := ServicesFrom(ctx); s != nil {
		return s.DefaultConfidence
	}
	return fallback
}

// WithLogger attaches a request-scoped logger that takes precedence over
// Services.Logger.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom extracts the logger from context, falling back to slog.Default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}
