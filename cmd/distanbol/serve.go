package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/distanbol/internal/server"
)

var (
	serveHost      string
	servePort      string
	managedStanbol bool
	serveDebug     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Distanbol server",
	Long: `Start the Distanbol HTTP server.

The server expects an Apache Stanbol enhancer at stanbol.url. With
--managed-stanbol it starts a local Stanbol container first and stops it
when the server shuts down (via Ctrl+C or SIGTERM).

The server provides:
  - /                 - Input form
  - /convert          - Convert text (POST) or a URL (GET) to an HTML report
  - /api/convert      - Same conversion, JSON result
  - /health, /ready   - Health checks (ready includes Stanbol)
  - /swagger          - API documentation

Environment variables from a .env file in the working directory are loaded
first. Config changes are picked up without a restart.

Examples:
  distanbol serve                     # Start on default port 8080
  distanbol serve --port 3000         # Start on custom port
  distanbol serve --host 0.0.0.0      # Bind to all interfaces
  distanbol serve --managed-stanbol   # Run Stanbol in Docker too`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		level := slog.LevelInfo
		if serveDebug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		h, err := getHome()
		if err != nil {
			return err
		}

		cfgMgr, err := loadConfig(h)
		if err != nil {
			return err
		}
		if file := cfgMgr.File(); file != "" {
			logger.Info("loaded config", "file", file)
			cfgMgr.WatchConfig(func(err error) {
				logger.Error("config reload rejected, keeping previous config", "error", err)
			})
		} else {
			logger.Info("no config file found, using defaults")
		}

		srv, err := server.New(server.Config{
			Host:           serveHost,
			Port:           servePort,
			ConfigManager:  cfgMgr,
			ManagedStanbol: managedStanbol,
			Home:           h,
			Logger:         logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config: 127.0.0.1)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config: 8080)")
	serveCmd.Flags().BoolVar(&managedStanbol, "managed-stanbol", false, "Start and stop a local Stanbol container with the server")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
}
