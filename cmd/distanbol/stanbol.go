package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/distanbol/internal/stanbol"
)

var stanbolCmd = &cobra.Command{
	Use:   "stanbol",
	Short: "Manage a local Stanbol enhancer container",
	Long: `Manage the local Apache Stanbol container lifecycle.

Use this when no external enhancer is available. The container settings
come from the stanbol section of the config file.

Examples:
  distanbol stanbol start   # Start the Stanbol container
  distanbol stanbol stop    # Stop the container
  distanbol stanbol status  # Check container and enhancer status
  distanbol stanbol logs    # View container logs`,
}

var stanbolStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Stanbol container",
	Long: `Start the Stanbol container.

If the container doesn't exist, it will be created and started (pulling the
image on first use). If it exists but is stopped, it will be started.
If it's already running, this is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		mgr, err := getStanbolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.ValidateExisting(ctx); err != nil {
			return err
		}

		fmt.Fprintln(out, "Starting Stanbol...")
		if err := mgr.Start(ctx); err != nil {
			return fmt.Errorf("failed to start Stanbol: %w", err)
		}

		wait, _ := cmd.Flags().GetDuration("wait")
		if wait > 0 {
			fmt.Fprintf(out, "Waiting for the enhancer (timeout: %s)...\n", wait)
			if err := mgr.WaitReady(ctx, wait); err != nil {
				return fmt.Errorf("Stanbol not ready: %w", err)
			}
		}

		fmt.Fprintf(out, "Stanbol is running at %s\n", mgr.URL())
		return nil
	},
}

var stanbolStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the Stanbol container",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		mgr, err := getStanbolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		fmt.Fprintln(out, "Stopping Stanbol...")
		if err := mgr.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop Stanbol: %w", err)
		}

		fmt.Fprintln(out, "Stanbol stopped")
		return nil
	},
}

var stanbolRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the Stanbol container",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := getStanbolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.Remove(ctx); err != nil {
			return fmt.Errorf("failed to remove container: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Stanbol container removed")
		return nil
	},
}

var stanbolStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Stanbol container status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		mgr, err := getStanbolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		status, err := mgr.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}

		switch status {
		case stanbol.StatusRunning:
			fmt.Fprintf(out, "Status: %s\n", status)
			fmt.Fprintf(out, "URL: %s\n", mgr.URL())

			client := stanbol.NewClient(stanbol.Config{URL: mgr.URL()})
			if err := client.HealthCheck(ctx); err != nil {
				fmt.Fprintf(out, "Health: unhealthy (%v)\n", err)
			} else {
				fmt.Fprintln(out, "Health: healthy")
			}
		case stanbol.StatusStopped:
			fmt.Fprintf(out, "Status: %s (use 'distanbol stanbol start' to start)\n", status)
		case stanbol.StatusNotFound:
			fmt.Fprintf(out, "Status: %s (use 'distanbol stanbol start' to create)\n", status)
		default:
			fmt.Fprintf(out, "Status: %s\n", status)
		}

		return nil
	},
}

var logsTail string

var stanbolLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show Stanbol container logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := getStanbolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		logs, err := mgr.Logs(cmd.Context(), logsTail)
		if err != nil {
			return fmt.Errorf("failed to get logs: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), logs)
		return nil
	},
}

func init() {
	stanbolCmd.AddCommand(stanbolStartCmd)
	stanbolCmd.AddCommand(stanbolStopCmd)
	stanbolCmd.AddCommand(stanbolRemoveCmd)
	stanbolCmd.AddCommand(stanbolStatusCmd)
	stanbolCmd.AddCommand(stanbolLogsCmd)

	stanbolStartCmd.Flags().Duration("wait", 3*time.Minute, "Wait for the enhancer to answer (0 to skip)")
	stanbolLogsCmd.Flags().StringVar(&logsTail, "tail", "100", "Number of lines to show from the end")

	rootCmd.AddCommand(stanbolCmd)
}

// getStanbolManager creates a DockerManager from the configured container settings.
func getStanbolManager() (*stanbol.DockerManager, error) {
	h, err := getHome()
	if err != nil {
		return nil, err
	}
	cfgMgr, err := loadConfig(h)
	if err != nil {
		return nil, err
	}
	return stanbol.NewDockerManager(cfgMgr.Get().ToDockerConfig())
}
