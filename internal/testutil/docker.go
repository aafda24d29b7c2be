package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// CleanupLabel marks containers created by tests.
const CleanupLabel = "distanbol-test"

// TestingT is the subset of testing.T used for Docker setup.
type TestingT interface {
	Name() string
	Cleanup(func())
	Logf(format string, args ...any)
	Skipf(format string, args ...any)
	Helper()
}

// DockerClient returns a Docker client and removes this test's labelled
// containers when the test ends. The test is skipped when Docker is not
// reachable.
func DockerClient(t TestingT) *client.Client {
	t.Helper()

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		t.Skipf("docker client unavailable: %v", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		cli.Close()
		t.Skipf("docker is not running: %v", err)
		return nil
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		label := fmt.Sprintf("%s=%s", CleanupLabel, t.Name())
		if err := removeLabelled(ctx, cli, label, t.Logf); err != nil {
			t.Logf("container cleanup: %v", err)
		}
		cli.Close()
	})

	return cli
}

// UniqueContainerName returns distanbol-test-<prefix>-<testname>-<random>.
func UniqueContainerName(t TestingT, prefix string) string {
	t.Helper()
	return fmt.Sprintf("distanbol-test-%s-%s-%s", prefix, sanitizeName(t.Name()), randString(4))
}

// ContainerLabels returns the labels DockerClient cleans up by.
func ContainerLabels(t TestingT) map[string]string {
	return map[string]string{
		CleanupLabel: t.Name(),
	}
}

// CleanupAllTestContainers removes every container carrying CleanupLabel,
// for example after an interrupted run.
func CleanupAllTestContainers(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create docker client: %w", err)
	}
	defer cli.Close()

	return removeLabelled(ctx, cli, CleanupLabel, func(string, ...any) {})
}

// removeLabelled stops and removes containers matching a label filter.
func removeLabelled(ctx context.Context, cli *client.Client, label string, logf func(string, ...any)) error {
	args := filters.NewArgs()
	args.Add("label", label)

	containers, err := cli.ContainerList(ctx, container.ListOptions{All: true, Filters: args})
	if err != nil {
		return fmt.Errorf("failed to list containers: %w", err)
	}

	for _, c := range containers {
		name := c.ID
		if len(c.Names) > 0 {
			name = c.Names[0]
		}
		timeout := 10
		_ = cli.ContainerStop(ctx, c.ID, container.StopOptions{Timeout: &timeout})
		if err := cli.ContainerRemove(ctx, c.ID, container.RemoveOptions{Force: true, RemoveVolumes: true}); err != nil {
			return fmt.Errorf("failed to remove container %s: %w", name, err)
		}
		logf("removed test container %s", name)
	}
	return nil
}

func randString(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// sanitizeName keeps alphanumerics, maps separators to '-' and caps the length.
func sanitizeName(name string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '/', r == '_', r == '-':
			return '-'
		default:
			return -1
		}
	}, name)
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}
