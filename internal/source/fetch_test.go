package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantKind    Kind
		wantErr     error
	}{
		{"json", "application/json", `[]`, KindEnhancement, nil},
		{"json with charset", "application/json; charset=utf-8", `[]`, KindEnhancement, nil},
		{"json-ld", "application/ld+json", `[]`, KindEnhancement, nil},
		{"plain text", "text/plain;charset=UTF-8", "Paris is lovely", KindText, nil},
		{"html rejected", "text/html", "<p>hi</p>", 0, ErrUnsupportedContentType},
		{"pdf rejected", "application/pdf", "%PDF", 0, ErrUnsupportedContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			content, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL+"/doc")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if content.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", content.Kind, tt.wantKind)
			}
			if string(content.Body) != tt.body {
				t.Errorf("Body = %q, want %q", content.Body, tt.body)
			}
			if strings.Contains(content.ContentType, ";") {
				t.Errorf("ContentType = %q, want parameters stripped", content.ContentType)
			}
		})
	}
}

func TestFetcher_MissingContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// An explicit empty header stops net/http from sniffing one.
		w.Header()["Content-Type"] = nil
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrMissingContentType) {
		t.Fatalf("Fetch() error = %v, want ErrMissingContentType", err)
	}
}

func TestFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrUpstreamStatus) {
		t.Fatalf("Fetch() error = %v, want ErrUpstreamStatus", err)
	}
}

func TestFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := NewFetcher(Config{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrUpstreamTimeout) {
		t.Fatalf("Fetch() error = %v, want ErrUpstreamTimeout", err)
	}
	if f.Timeout() != 50*time.Millisecond {
		t.Errorf("Timeout() = %v", f.Timeout())
	}
}

func TestFetcher_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer srv.Close()

	_, err := NewFetcher(Config{MaxBytes: 10}).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Fetch() error = %v, want ErrTooLarge", err)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://example.org/doc.json", false},
		{"https://example.org", false},
		{"", true},
		{"   ", true},
		{"ftp://example.org/file", true},
		{"file:///etc/passwd", true},
		{"example.org/doc", true},
		{"http://", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ValidateURL(%q) error = %v, want ErrInvalidURL", tt.url, err)
		}
	}
}

func TestTextHelpers(t *testing.T) {
	if got := WordCount("  Paris is\tthe capital\nof France. "); got != 6 {
		t.Errorf("WordCount() = %d, want 6", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("WordCount(\"\") = %d, want 0", got)
	}

	decomposed := "Wie\u0301n"
	if got := Normalize(decomposed); got != "Wi\u00e9n" {
		t.Errorf("Normalize() = %q, want composed form", got)
	}

	for input, want := range map[string]bool{
		`[{"@id":"x"}]`: true,
		` {"a": 1} `:    true,
		"Paris":         false,
		"":              false,
		"Paris [1]":     false,
	} {
		if got := LooksLikeJSON(input); got != want {
			t.Errorf("LooksLikeJSON(%q) = %v, want %v", input, got, want)
		}
	}
}
