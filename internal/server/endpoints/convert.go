package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackzampolin/distanbol/internal/enhance"
	"github.com/jackzampolin/distanbol/internal/report"
	"github.com/jackzampolin/distanbol/internal/source"
	"github.com/jackzampolin/distanbol/internal/svcctx"
)

// DefaultConfidence is the threshold used when neither the request nor the
// configuration supplies one.
const DefaultConfidence = 0.7

// conversion is one finished run of the pipeline.
type conversion struct {
	Mode      report.Mode
	SourceURL string
	Input     string
	Result    *enhance.Reconciliation
}

// resolveConfidence reads a form or query threshold. Empty or unparseable
// values fall back to the default; range checking happens in the core.
func resolveConfidence(ctx context.Context, raw string) float64 {
	def := svcctx.DefaultConfidenceFrom(ctx, DefaultConfidence)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	c, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return c
}

// convertInput runs text or enhancer JSON typed into the form. Input that
// parses as JSON is reconciled directly; anything else goes to Stanbol.
func convertInput(ctx context.Context, input string, threshold float64) (*conversion, error) {
	if err := enhance.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		return nil, errMissingInput
	}

	var (
		rec *enhance.Reconciliation
		err error
	)
	if source.LooksLikeJSON(input) {
		rec, err = enhance.Enhance([]byte(input), threshold, nil, svcctx.LoggerFrom(ctx))
	} else {
		rec, err = enhanceText(ctx, input, threshold)
	}
	if err != nil {
		return nil, err
	}
	return &conversion{Mode: report.ModeText, Input: input, Result: rec}, nil
}

// convertURL fetches rawURL and runs whatever it points at.
func convertURL(ctx context.Context, rawURL string, threshold float64) (*conversion, error) {
	if err := enhance.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if strings.TrimSpace(rawURL) == "" {
		return nil, errMissingInput
	}

	fetcher := svcctx.FetcherFrom(ctx)
	if fetcher == nil {
		return nil, errors.New("fetcher not available")
	}
	content, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var rec *enhance.Reconciliation
	switch content.Kind {
	case source.KindEnhancement:
		rec, err = enhance.Enhance(content.Body, threshold, nil, svcctx.LoggerFrom(ctx))
	case source.KindText:
		rec, err = enhanceText(ctx, string(content.Body), threshold)
	default:
		err = fmt.Errorf("%w: %s", source.ErrUnsupportedContentType, content.Kind)
	}
	if err != nil {
		return nil, err
	}
	return &conversion{Mode: report.ModeURL, SourceURL: rawURL, Result: rec}, nil
}

// enhanceText counts words, submits the normalised text to Stanbol and
// reconciles the answer.
func enhanceText(ctx context.Context, text string, threshold float64) (*enhance.Reconciliation, error) {
	client := svcctx.EnhancerFrom(ctx)
	if client == nil {
		return nil, errors.New("enhancer not available")
	}
	words := source.WordCount(text)
	payload, err := client.Enhance(ctx, source.Normalize(text))
	if err != nil {
		return nil, fmt.Errorf("enhancement failed: %w", err)
	}
	return enhance.Enhance(payload, threshold, &words, svcctx.LoggerFrom(ctx))
}

// failureFor collects what convertStatus needs to describe an error.
func failureFor(ctx context.Context, threshold float64, rawURL string) failure {
	f := failure{Threshold: threshold, URL: rawURL}
	if fetcher := svcctx.FetcherFrom(ctx); fetcher != nil {
		f.FetchTimeout = fetcher.Timeout()
	}
	if client := svcctx.EnhancerFrom(ctx); client != nil {
		f.EnhanceTimeout = client.Timeout()
	}
	return f
}

// writeConvertError logs server faults and writes a plain-text error page.
func writeConvertError(w http.ResponseWriter, r *http.Request, err error, f failure) {
	status, msg, expected := convertStatus(err, f)
	logger := svcctx.LoggerFrom(r.Context())
	if expected {
		logger.Info("conversion rejected", "status", status, "error", err)
	} else {
		logger.Error("conversion failed", "error", err)
	}
	http.Error(w, msg, status)
}

// writeReport renders a successful conversion. The page is sent with 202
// Accepted.
func writeReport(w http.ResponseWriter, r *http.Request, c *conversion) {
	renderer := svcctx.RendererFrom(r.Context())
	if renderer == nil {
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}
	var sb strings.Builder
	if err := renderer.Render(&sb, report.NewView(c.Mode, c.Result, c.Input, c.SourceURL)); err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to render report", "error", err)
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(sb.String()))
}
