package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackzampolin/distanbol/internal/api"
	"github.com/jackzampolin/distanbol/internal/config"
	"github.com/jackzampolin/distanbol/internal/home"
	"github.com/jackzampolin/distanbol/internal/report"
	"github.com/jackzampolin/distanbol/internal/server/endpoints"
	"github.com/jackzampolin/distanbol/internal/source"
	"github.com/jackzampolin/distanbol/internal/stanbol"
	"github.com/jackzampolin/distanbol/internal/svcctx"
)

// Server is the main Distanbol HTTP server.
// When the enhancer is managed it starts the Stanbol container on server
// start and stops it on shutdown.
type Server struct {
	httpServer     *http.Server
	stanbolManager *stanbol.DockerManager
	configMgr      *config.Manager
	renderer       *report.Renderer
	home           *home.Dir
	logger         *slog.Logger
	managed        bool

	// services is replaced wholesale on config reload. Requests load it once.
	services atomic.Pointer[svcctx.Services]

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (overrides the config file when set)
	Host string
	// Port is the port to listen on (overrides the config file when set)
	Port string
	// ConfigManager provides configuration with hot-reload support.
	// Defaults are used when nil.
	ConfigManager *config.Manager
	// ManagedStanbol runs the enhancer in a Docker container
	// (also enabled by stanbol.managed in the config file)
	ManagedStanbol bool
	// Home is the distanbol home directory
	Home *home.Dir
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		configMgr: cfg.ConfigManager,
		home:      cfg.Home,
		logger:    cfg.Logger,
		managed:   cfg.ManagedStanbol,
	}
	current := s.currentConfig()

	host, port := current.Server.Host, current.Server.Port
	if cfg.Host != "" {
		host = cfg.Host
	}
	if cfg.Port != "" {
		port = cfg.Port
	}

	var err error
	s.renderer, err = report.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	if current.Stanbol.Managed {
		s.stanbolManager, err = stanbol.NewDockerManager(current.ToDockerConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create stanbol manager: %w", err)
		}
	} else {
		// An external enhancer needs no startup, so requests are served at once.
		s.services.Store(s.buildServices(current))
	}

	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(func(*config.Config) {
			c := s.currentConfig()
			if s.stanbolManager != nil && s.services.Load() == nil {
				s.logger.Info("config changed before stanbol was ready, deferring")
				return
			}
			s.services.Store(s.buildServices(c))
			s.logger.Info("services reloaded from config",
				"stanbol_url", c.ToStanbolConfig().URL,
				"confidence", c.Defaults.Confidence,
			)
		})
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(host, port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// buildServices creates the per-config service set.
func (s *Server) buildServices(c *config.Config) *svcctx.Services {
	stanbolCfg := c.ToStanbolConfig()
	stanbolCfg.Logger = s.logger
	sourceCfg := c.ToSourceConfig()
	sourceCfg.Logger = s.logger

	return &svcctx.Services{
		Enhancer:          stanbol.NewClient(stanbolCfg),
		Fetcher:           source.NewFetcher(sourceCfg),
		Renderer:          s.renderer,
		StanbolManager:    s.stanbolManager,
		DefaultConfidence: c.Defaults.Confidence,
		Logger:            s.logger,
		Home:              s.home,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)
	return s.requestIDMiddleware(logMiddleware(recoveryMiddleware(s.withServices(mux))))
}

// Start starts the server and, when managed, the Stanbol container.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.stanbolManager != nil {
		if err := s.startStanbol(ctx); err != nil {
			s.stopStanbol()
			s.setNotRunning()
			return err
		}
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// startStanbol brings up the managed container and installs services once
// the enhancer answers.
func (s *Server) startStanbol(ctx context.Context) error {
	if err := s.stanbolManager.ValidateExisting(ctx); err != nil {
		return fmt.Errorf("existing Stanbol container incompatible: %w", err)
	}

	s.logger.Info("starting Stanbol")
	if err := s.stanbolManager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start Stanbol: %w", err)
	}

	if err := s.stanbolManager.WaitReady(ctx, 3*time.Minute); err != nil {
		return fmt.Errorf("Stanbol not ready: %w", err)
	}
	s.logger.Info("Stanbol is ready", "url", s.stanbolManager.URL())

	s.services.Store(s.buildServices(s.currentConfig()))
	return nil
}

// currentConfig returns a copy of the active config with server overrides applied.
func (s *Server) currentConfig() *config.Config {
	c := *config.DefaultConfig()
	if s.configMgr != nil {
		c = *s.configMgr.Get()
	}
	if s.managed {
		c.Stanbol.Managed = true
	}
	return &c
}

// shutdown performs graceful shutdown of the HTTP server and the managed container.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.stopStanbol()

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) stopStanbol() {
	if s.stanbolManager == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.logger.Info("stopping Stanbol")
	if err := s.stanbolManager.Stop(ctx); err != nil {
		s.logger.Error("Stanbol stop error", "error", err)
	}
	if err := s.stanbolManager.Close(); err != nil {
		s.logger.Error("Stanbol manager close error", "error", err)
	}
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Services returns the current service set, or nil before initialization.
func (s *Server) Services() *svcctx.Services {
	return s.services.Load()
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if services := s.services.Load(); services != nil {
			ctx = svcctx.WithServices(ctx, services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until the enhancer services are installed.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcctx.ServicesFrom(r.Context()) == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "server not fully initialized",
			})
			return
		}
		next(w, r)
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
