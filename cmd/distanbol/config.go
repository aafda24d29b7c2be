package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/distanbol/internal/api"
	"github.com/jackzampolin/distanbol/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration file commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to the home directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}

		path := h.ConfigPath()
		force, _ := cmd.Flags().GetBool("force")
		if h.ConfigExists() && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}
		mgr, err := loadConfig(h)
		if err != nil {
			return err
		}

		if file := mgr.File(); file != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "# %s\n", file)
		}
		format := api.GetOutputFormat()
		if !api.IsStructuredOutput() {
			format = api.OutputFormatYAML
		}
		return api.OutputTo(cmd.OutOrStdout(), format, mgr.Get())
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
