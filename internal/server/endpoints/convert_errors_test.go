package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackzampolin/distanbol/internal/enhance"
	"github.com/jackzampolin/distanbol/internal/source"
	"github.com/jackzampolin/distanbol/internal/stanbol"
)

func TestConvertStatus(t *testing.T) {
	f := failure{
		Threshold:      0.7,
		URL:            "http://example.org/doc",
		FetchTimeout:   10 * time.Second,
		EnhanceTimeout: 30 * time.Second,
	}

	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantMessage  string
		wantExpected bool
	}{
		{"threshold", &enhance.ThresholdOutOfRangeError{Threshold: 2}, http.StatusBadRequest, msgThresholdOutOfRange, true},
		{"no entities", &enhance.NoEntitiesAboveThresholdError{Threshold: 1}, http.StatusBadRequest, "There are no entities above the given threshold: 1.0", true},
		{"malformed json", enhance.ErrMalformedJSON, http.StatusBadRequest, msgMalformedJSON, true},
		{"invalid payload", fmt.Errorf("%w: not an array", enhance.ErrInvalidPayload), http.StatusBadRequest, msgInvalidOutput, true},
		{"unknown subtype", &enhance.UnrecognizedEnhancementTypeError{Index: 1, Type: "x"}, http.StatusBadRequest, msgInvalidOutput, true},
		{"fetch timeout", fmt.Errorf("%w after 10s", source.ErrUpstreamTimeout), http.StatusGatewayTimeout, "The request to the URL provided exceeded the timeout: 10s", true},
		{"enhance timeout", fmt.Errorf("enhancement failed: %w", stanbol.ErrUpstreamTimeout), http.StatusGatewayTimeout, "The request to the URL provided exceeded the timeout: 30s", true},
		{"missing content type", source.ErrMissingContentType, http.StatusBadRequest, "The given URL: 'http://example.org/doc' doesn't have a content-type field", true},
		{"unsupported content type", source.ErrUnsupportedContentType, http.StatusBadRequest, "doesn't point to a text, json or jsonld file", true},
		{"stanbol response too large", fmt.Errorf("enhancement failed: %w", stanbol.ErrTooLarge), http.StatusBadGateway, msgEnhancerTooLarge, false},
		{"stanbol status", &stanbol.StatusError{Code: 500}, http.StatusInternalServerError, msgInternal, false},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, msgInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg, expected := convertStatus(tt.err, f)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if !strings.Contains(msg, tt.wantMessage) {
				t.Errorf("message = %q, want %q", msg, tt.wantMessage)
			}
			if expected != tt.wantExpected {
				t.Errorf("expected = %v, want %v", expected, tt.wantExpected)
			}
		})
	}
}

func TestFormatThreshold(t *testing.T) {
	for in, want := range map[float64]string{0: "0.0", 1: "1.0", 0.7: "0.7", 0.95: "0.95"} {
		if got := formatThreshold(in); got != want {
			t.Errorf("formatThreshold(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveConfidence(t *testing.T) {
	ctx := t.Context()
	tests := map[string]float64{
		"":      DefaultConfidence,
		"  ":    DefaultConfidence,
		"abc":   DefaultConfidence,
		"0.25":  0.25,
		" 0.5 ": 0.5,
		"1.5":   1.5,
	}
	for raw, want := range tests {
		if got := resolveConfidence(ctx, raw); got != want {
			t.Errorf("resolveConfidence(%q) = %v, want %v", raw, got, want)
		}
	}
}
