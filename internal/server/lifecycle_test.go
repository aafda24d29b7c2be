package server

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jackzampolin/distanbol/internal/config"
	"github.com/jackzampolin/distanbol/internal/stanbol"
	"github.com/jackzampolin/distanbol/internal/testutil"
)

func startOnFreePort(t *testing.T) (*Server, string) {
	t.Helper()
	port, err := testutil.FindFreePort()
	if err != nil {
		t.Fatalf("FindFreePort() error = %v", err)
	}
	srv, err := New(Config{Host: "127.0.0.1", Port: port, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv, "http://127.0.0.1:" + port
}

func TestServer_ContextCancellation(t *testing.T) {
	srv, baseURL := startOnFreePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()

	if err := testutil.WaitForServer(context.Background(), baseURL, 5*time.Second); err != nil {
		cancel()
		t.Fatalf("server did not start: %v", err)
	}
	if !srv.IsRunning() {
		t.Error("IsRunning() = false while serving")
	}

	cancel()
	if err := testutil.WaitForShutdown(done, 10*time.Second); err != nil {
		t.Fatalf("Start() returned error = %v", err)
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}

	if _, err := http.Get(baseURL + "/health"); err == nil {
		t.Error("server still answering after shutdown")
	}
}

func TestServer_DoubleStart(t *testing.T) {
	srv, baseURL := startOnFreePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()

	if err := testutil.WaitForServer(context.Background(), baseURL, 5*time.Second); err != nil {
		t.Fatalf("server did not start: %v", err)
	}

	if err := srv.Start(ctx); err == nil {
		t.Error("second Start() should fail while running")
	}

	cancel()
	if err := testutil.WaitForShutdown(done, 10*time.Second); err != nil {
		t.Fatalf("Start() returned error = %v", err)
	}
}

// TestServer_ManagedLifecycle starts a real Stanbol container. It needs Docker
// and pulls a large image, so it only runs when DISTANBOL_STANBOL_TESTS is set.
func TestServer_ManagedLifecycle(t *testing.T) {
	if testing.Short() || os.Getenv("DISTANBOL_STANBOL_TESTS") == "" {
		t.Skip("set DISTANBOL_STANBOL_TESTS=1 to run managed Stanbol tests")
	}
	testutil.DockerClient(t)

	hostPort, err := testutil.FindFreePort()
	if err != nil {
		t.Fatalf("FindFreePort() error = %v", err)
	}
	containerName := testutil.UniqueContainerName(t, "stanbol")
	mgr, err := config.NewManager(writeConfig(t,
		"stanbol:\n  managed: true\n  container_name: "+containerName+"\n  host_port: \""+hostPort+"\"\n"), "")
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	port, err := testutil.FindFreePort()
	if err != nil {
		t.Fatalf("FindFreePort() error = %v", err)
	}
	srv, err := New(Config{Port: port, ConfigManager: mgr, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	serverCtx, serverCancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(serverCtx)
	}()

	baseURL := "http://127.0.0.1:" + port
	if err := testutil.WaitForServer(ctx, baseURL, 4*time.Minute); err != nil {
		serverCancel()
		t.Fatalf("server did not start: %v", err)
	}

	resp, err := http.Get(baseURL + "/ready")
	if err != nil {
		t.Fatalf("ready check failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("ready status = %d, want 200", resp.StatusCode)
	}

	serverCancel()
	if err := testutil.WaitForShutdown(done, 60*time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	check, err := stanbol.NewDockerManager(stanbol.DockerConfig{ContainerName: containerName})
	if err != nil {
		t.Fatalf("NewDockerManager() error = %v", err)
	}
	defer check.Close()
	defer check.Remove(ctx)

	status, err := check.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status == stanbol.StatusRunning {
		t.Error("Stanbol still running after server shutdown")
	}
}
