package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Confidence != 0.7 {
		t.Errorf("expected default confidence 0.7, got %v", cfg.Defaults.Confidence)
	}
	if cfg.Stanbol.URL != "http://localhost:8081/enhancer" {
		t.Errorf("unexpected default stanbol url: %s", cfg.Stanbol.URL)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("unexpected default addr: %s", cfg.Server.Addr())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"confidence above one", func(c *Config) { c.Defaults.Confidence = 1.5 }, "defaults.confidence"},
		{"negative confidence", func(c *Config) { c.Defaults.Confidence = -0.1 }, "defaults.confidence"},
		{"zero stanbol timeout", func(c *Config) { c.Stanbol.TimeoutSeconds = 0 }, "stanbol.timeout_seconds"},
		{"zero fetch timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }, "fetch.timeout_seconds"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_STANBOL_HOST", "stanbol.internal")

		result := ResolveEnvVars("http://${TEST_STANBOL_HOST}/enhancer")
		if result != "http://stanbol.internal/enhancer" {
			t.Errorf("expected expanded URL, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestConfig_Converters(t *testing.T) {
	t.Setenv("TEST_ENHANCER_URL", "http://remote:9000/enhancer")

	cfg := DefaultConfig()
	cfg.Stanbol.URL = "${TEST_ENHANCER_URL}"
	cfg.Stanbol.TimeoutSeconds = 5
	cfg.Fetch.TimeoutSeconds = 3

	sc := cfg.ToStanbolConfig()
	if sc.URL != "http://remote:9000/enhancer" {
		t.Errorf("stanbol URL = %s", sc.URL)
	}
	if sc.Timeout != 5*time.Second {
		t.Errorf("stanbol timeout = %v", sc.Timeout)
	}
	if sc.MaxBytes != cfg.Stanbol.MaxBytes || sc.MaxBytes == 0 {
		t.Errorf("stanbol max bytes = %d", sc.MaxBytes)
	}

	cfg.Stanbol.Managed = true
	cfg.Stanbol.HostPort = "9999"
	if got := cfg.ToStanbolConfig().URL; got != "http://localhost:9999/enhancer" {
		t.Errorf("managed stanbol URL = %s", got)
	}
	if got := cfg.ToDockerConfig().HostPort; got != "9999" {
		t.Errorf("docker host port = %s", got)
	}

	fc := cfg.ToSourceConfig()
	if fc.Timeout != 3*time.Second || fc.MaxBytes != cfg.Fetch.MaxBytes {
		t.Errorf("source config = %+v", fc)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
stanbol:
  url: http://stanbol.example:8080/enhancer
defaults:
  confidence: 0.5
`)

		mgr, err := NewManager(configFile, "")
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Stanbol.URL != "http://stanbol.example:8080/enhancer" {
			t.Errorf("expected configured url, got %s", cfg.Stanbol.URL)
		}
		if cfg.Defaults.Confidence != 0.5 {
			t.Errorf("expected 0.5, got %v", cfg.Defaults.Confidence)
		}
		// Unset keys keep their defaults.
		if cfg.Fetch.TimeoutSeconds != 10 {
			t.Errorf("expected default fetch timeout, got %d", cfg.Fetch.TimeoutSeconds)
		}
		if mgr.File() != configFile {
			t.Errorf("File() = %s, want %s", mgr.File(), configFile)
		}
	})

	t.Run("falls back to defaults without a file", func(t *testing.T) {
		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.Get().Defaults.Confidence != 0.7 {
			t.Errorf("expected default confidence, got %v", mgr.Get().Defaults.Confidence)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("DISTANBOL_DEFAULTS_CONFIDENCE", "0.25")
		configFile := writeConfig(t, "defaults:\n  confidence: 0.5\n")

		mgr, err := NewManager(configFile, "")
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.Get().Defaults.Confidence != 0.25 {
			t.Errorf("expected env override 0.25, got %v", mgr.Get().Defaults.Confidence)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		configFile := writeConfig(t, "defaults:\n  confidence: 3\n")
		if _, err := NewManager(configFile, ""); err == nil {
			t.Error("expected error for confidence out of range")
		}
	})
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "server:\n  port: \"9000\"\n"), "")
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "server:\n  port: \"9000\"\n"), "")
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = mgr.Get().Server.Port
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	configFile := writeConfig(t, "defaults:\n  confidence: 0.5\n")

	mgr, err := NewManager(configFile, "")
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Value

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.Defaults.Confidence)
	})

	mgr.WatchConfig(nil)

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("defaults:\n  confidence: 0.9\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().Defaults.Confidence; got != 0.9 {
		t.Errorf("config not updated: expected 0.9, got %v", got)
	}
	if v := lastValue.Load(); v != 0.9 {
		t.Errorf("callback received wrong value: expected 0.9, got %v", v)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	mgr, err := NewManager(path, "")
	if err != nil {
		t.Fatalf("written default should load: %v", err)
	}
	if *mgr.Get() != *DefaultConfig() {
		t.Errorf("round-tripped config = %+v, want defaults", mgr.Get())
	}
}
