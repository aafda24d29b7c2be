package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/distanbol/internal/api"
	"github.com/jackzampolin/distanbol/internal/config"
	"github.com/jackzampolin/distanbol/internal/enhance"
	"github.com/jackzampolin/distanbol/internal/home"
	"github.com/jackzampolin/distanbol/internal/report"
	"github.com/jackzampolin/distanbol/internal/server/endpoints"
	"github.com/jackzampolin/distanbol/internal/source"
	"github.com/jackzampolin/distanbol/internal/stanbol"
)

// convertOptions are the flags of the offline convert command.
type convertOptions struct {
	File       string
	Text       string
	Confidence *float64
	StanbolURL string
	Format     string
	Out        string
	Save       bool
}

var convertOpts convertOptions

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Reconcile a Stanbol JSON file or enhance text without a server",
	Long: `Convert runs the reconciliation locally.

With a file argument the file must hold Stanbol enhancement JSON. With
--text the text is sent to the configured Stanbol enhancer first (or the one
given by --stanbol-url).

The HTML report is written to stdout unless --out names a file or --save
stores it under ~/.distanbol/reports/. --format json or yaml prints the
reconciled entities instead of HTML.

Examples:
  distanbol convert enhancement.json > report.html
  distanbol convert enhancement.json --confidence 0.5 --save
  distanbol convert --text "Paris is the capital of France." --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertOpts
		if len(args) == 1 {
			opts.File = args[0]
		}
		if cmd.Flags().Changed("confidence") {
			c, _ := cmd.Flags().GetFloat64("confidence")
			opts.Confidence = &c
		}

		h, err := getHome()
		if err != nil {
			return err
		}
		cfgMgr, err := loadConfig(h)
		if err != nil {
			return err
		}
		return runConvert(cmd, opts, cfgMgr.Get(), h)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertOpts.Text, "text", "", "Text to enhance through Stanbol")
	convertCmd.Flags().Float64("confidence", endpoints.DefaultConfidence, "Confidence threshold between 0 and 1 (default from config)")
	convertCmd.Flags().StringVar(&convertOpts.StanbolURL, "stanbol-url", "", "Stanbol enhancer URL (default from config)")
	convertCmd.Flags().StringVar(&convertOpts.Format, "format", "html", "Report format: html, json or yaml")
	convertCmd.Flags().StringVar(&convertOpts.Out, "out", "", "Write the report to this file")
	convertCmd.Flags().BoolVar(&convertOpts.Save, "save", false, "Write the report to the home reports directory")
	convertCmd.MarkFlagsMutuallyExclusive("out", "save")

	rootCmd.AddCommand(convertCmd)
}

// runConvert reconciles the input described by opts and writes the report.
func runConvert(cmd *cobra.Command, opts convertOptions, cfg *config.Config, h *home.Dir) error {
	if opts.File == "" && opts.Text == "" {
		return errors.New("a file argument or --text is required")
	}
	if opts.File != "" && opts.Text != "" {
		return errors.New("use either a file argument or --text, not both")
	}

	threshold := cfg.Defaults.Confidence
	if opts.Confidence != nil {
		threshold = *opts.Confidence
	}
	if err := enhance.ValidateThreshold(threshold); err != nil {
		return err
	}

	var (
		input string
		rec   *enhance.Reconciliation
	)
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", opts.File, err)
		}
		input = string(data)
		rec, err = enhance.Enhance(data, threshold, nil, nil)
		if err != nil {
			return fmt.Errorf("%s: %w", opts.File, err)
		}
	} else {
		input = opts.Text
		stanbolCfg := cfg.ToStanbolConfig()
		if opts.StanbolURL != "" {
			stanbolCfg.URL = opts.StanbolURL
		}
		words := source.WordCount(opts.Text)
		payload, err := stanbol.NewClient(stanbolCfg).Enhance(cmd.Context(), source.Normalize(opts.Text))
		if err != nil {
			return fmt.Errorf("enhancement failed: %w", err)
		}
		rec, err = enhance.Enhance(payload, threshold, &words, nil)
		if err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	dest := opts.Out
	if opts.Save {
		name := opts.File
		if name == "" {
			name = "text"
		}
		dest = h.ReportPath(name)
		if opts.Format != "html" {
			dest = strings.TrimSuffix(dest, ".html") + "." + opts.Format
		}
	}
	if dest != "" {
		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", dest, err)
		}
		defer f.Close()
		w = f
	}

	if err := writeConvertReport(w, opts.Format, rec, input); err != nil {
		return err
	}
	if dest != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d of %d entities above %v)\n",
			dest, rec.Stats.MatchedEntities, rec.Stats.TotalEntities, threshold)
	}
	return nil
}

// writeConvertReport writes rec as an HTML page or as structured data.
func writeConvertReport(w io.Writer, format string, rec *enhance.Reconciliation, input string) error {
	switch format {
	case "html":
		renderer, err := report.NewRenderer()
		if err != nil {
			return err
		}
		return renderer.Render(w, report.NewView(report.ModeText, rec, input, ""))
	case "json", "yaml":
		return api.OutputTo(w, api.OutputFormat(format), endpoints.ConvertResponse{
			Mode:      string(report.ModeText),
			Threshold: rec.Threshold,
			Fulltext:  rec.Fulltext,
			Stats:     rec.Stats,
			Results:   rec.Results,
		})
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}
}
