package svcctx

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackzampolin/distanbol/internal/source"
	"github.com/jackzampolin/distanbol/internal/stanbol"
)

func TestExtractors(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		if ServicesFrom(ctx) != nil {
			t.Error("expected nil services")
		}
		if EnhancerFrom(ctx) != nil || FetcherFrom(ctx) != nil || RendererFrom(ctx) != nil {
			t.Error("expected nil services from empty context")
		}
		if StanbolManagerFrom(ctx) != nil || HomeFrom(ctx) != nil {
			t.Error("expected nil optional services")
		}
		if got := DefaultConfidenceFrom(ctx, 0.7); got != 0.7 {
			t.Errorf("DefaultConfidenceFrom() = %v, want fallback", got)
		}
		if LoggerFrom(ctx) == nil {
			t.Error("LoggerFrom() should fall back to the default logger")
		}
	})

	t.Run("populated context", func(t *testing.T) {
		logger := slog.New(slog.DiscardHandler)
		s := &Services{
			Enhancer:          stanbol.NewClient(stanbol.Config{}),
			Fetcher:           source.NewFetcher(source.Config{}),
			DefaultConfidence: 0.4,
			Logger:            logger,
		}
		ctx := WithServices(context.Background(), s)

		if ServicesFrom(ctx) != s {
			t.Error("ServicesFrom() returned a different value")
		}
		if EnhancerFrom(ctx) != s.Enhancer || FetcherFrom(ctx) != s.Fetcher {
			t.Error("extractors returned different services")
		}
		if got := DefaultConfidenceFrom(ctx, 0.7); got != 0.4 {
			t.Errorf("DefaultConfidenceFrom() = %v, want 0.4", got)
		}
		if LoggerFrom(ctx) != logger {
			t.Error("LoggerFrom() returned a different logger")
		}

		scoped := logger.With("request_id", "abc")
		if LoggerFrom(WithLogger(ctx, scoped)) != scoped {
			t.Error("request-scoped logger should take precedence")
		}
	})
}
