package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/distanbol/internal/api"
	"github.com/jackzampolin/distanbol/internal/config"
	"github.com/jackzampolin/distanbol/internal/home"
	"github.com/jackzampolin/distanbol/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "distanbol",
	Short: "Turn Apache Stanbol enhancements into a readable entity report",
	Long: `Distanbol submits text to an Apache Stanbol enhancer, reconciles the
entity and text annotations it returns, and renders the entities above a
confidence threshold as an HTML report.

Input can be:
  - Plain text typed into the form or passed with --text
  - Stanbol enhancement JSON (JSON-LD) pasted, uploaded or fetched by URL
  - A URL serving text/plain, which is enhanced first`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.distanbol/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "distanbol home directory (default: ~/.distanbol)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "output format: text, yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// getHome returns the home directory manager, creating the directory if needed.
func getHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	return h, nil
}

// loadConfig reads --config, ./config.yaml or the home config, falling back to defaults.
func loadConfig(h *home.Dir) (*config.Manager, error) {
	mgr, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return mgr, nil
}
