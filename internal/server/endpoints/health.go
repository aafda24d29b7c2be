package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/distanbol/internal/api"
	"github.com/jackzampolin/distanbol/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Stanbol string `json:"stanbol,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Health check
//	@Description	Returns ok when the HTTP server is responding
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Readiness check
//	@Description	Returns ok only when the Stanbol enhancer answers its health check
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Stanbol: "ok"}

	client := svcctx.EnhancerFrom(r.Context())
	if client == nil {
		resp.Status = "degraded"
		resp.Stanbol = "not_initialized"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	if err := client.HealthCheck(r.Context()); err != nil {
		svcctx.LoggerFrom(r.Context()).Warn("stanbol not ready", "url", client.URL(), "error", err)
		resp.Status = "degraded"
		resp.Stanbol = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (includes the Stanbol enhancer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status:  %s\n", resp.Status)
			if resp.Stanbol != "" {
				fmt.Fprintf(out, "Stanbol: %s\n", resp.Stanbol)
			}
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server   string         `json:"server"`
	Stanbol  StanbolStatus  `json:"stanbol"`
	Defaults DefaultsStatus `json:"defaults"`
}

// StanbolStatus shows the enhancer endpoint and, when managed, its container.
type StanbolStatus struct {
	URL       string `json:"url"`
	Health    string `json:"health"`
	Managed   bool   `json:"managed"`
	Container string `json:"container,omitempty"`
}

// DefaultsStatus shows the request defaults currently in effect.
type DefaultsStatus struct {
	Confidence float64 `json:"confidence"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Enhancer URL and health, managed container state and request defaults
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := StatusResponse{
		Server: "running",
		Defaults: DefaultsStatus{
			Confidence: svcctx.DefaultConfidenceFrom(ctx, DefaultConfidence),
		},
	}

	if client := svcctx.EnhancerFrom(ctx); client != nil {
		resp.Stanbol.URL = client.URL()
		if err := client.HealthCheck(ctx); err != nil {
			resp.Stanbol.Health = "unhealthy"
		} else {
			resp.Stanbol.Health = "healthy"
		}
	} else {
		resp.Stanbol.Health = "not_initialized"
	}

	if mgr := svcctx.StanbolManagerFrom(ctx); mgr != nil {
		resp.Stanbol.Managed = true
		status, err := mgr.Status(ctx)
		if err != nil {
			resp.Stanbol.Container = "error"
		} else {
			resp.Stanbol.Container = string(status)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server: %s\n", resp.Server)
			fmt.Fprintf(out, "Stanbol:\n")
			fmt.Fprintf(out, "  URL:       %s\n", resp.Stanbol.URL)
			fmt.Fprintf(out, "  Health:    %s\n", resp.Stanbol.Health)
			if resp.Stanbol.Managed {
				fmt.Fprintf(out, "  Container: %s\n", resp.Stanbol.Container)
			}
			fmt.Fprintf(out, "Defaults:\n")
			fmt.Fprintf(out, "  Confidence: %v\n", resp.Defaults.Confidence)
			return nil
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
