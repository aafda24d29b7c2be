package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/distanbol/internal/api"
	"github.com/jackzampolin/distanbol/internal/enhance"
	"github.com/jackzampolin/distanbol/internal/svcctx"
)

// ConvertRequest is the body of POST /api/convert. Exactly one of Input and
// URL is set.
type ConvertRequest struct {
	Input      string   `json:"input,omitempty"`
	URL        string   `json:"url,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ConvertResponse is a reconciliation as returned by the JSON API.
type ConvertResponse struct {
	Mode      string           `json:"mode"`
	SourceURL string           `json:"source_url,omitempty"`
	Threshold float64          `json:"threshold"`
	Fulltext  *string          `json:"fulltext,omitempty"`
	Stats     enhance.Stats    `json:"stats"`
	Results   []enhance.Result `json:"results"`
}

// APIConvertEndpoint handles POST /api/convert.
type APIConvertEndpoint struct{}

func (e *APIConvertEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/convert", e.handler
}

func (e *APIConvertEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Convert and return JSON
//	@Description	Same pipeline as /convert, with the reconciliation returned as JSON
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ConvertRequest	true	"Text, Stanbol JSON or a URL"
//	@Success		200		{object}	ConvertResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		504		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/convert [post]
func (e *APIConvertEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Input != "" && req.URL != "" {
		writeError(w, http.StatusBadRequest, "set either input or url, not both")
		return
	}

	threshold := svcctx.DefaultConfidenceFrom(ctx, DefaultConfidence)
	if req.Confidence != nil {
		threshold = *req.Confidence
	}

	var (
		c   *conversion
		err error
	)
	if req.URL != "" {
		c, err = convertURL(ctx, req.URL, threshold)
	} else {
		c, err = convertInput(ctx, req.Input, threshold)
	}
	if err != nil {
		status, msg, expected := convertStatus(err, failureFor(ctx, threshold, req.URL))
		if !expected {
			svcctx.LoggerFrom(ctx).Error("conversion failed", "error", err)
		}
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Mode:      string(c.Mode),
		SourceURL: c.SourceURL,
		Threshold: c.Result.Threshold,
		Fulltext:  c.Result.Fulltext,
		Stats:     c.Result.Stats,
		Results:   c.Result.Results,
	})
}

func (e *APIConvertEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		text       string
		file       string
		url        string
		confidence float64
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Enhance and reconcile text, Stanbol JSON or a URL",
		Example: `  distanbol api convert --text "Paris is the capital of France."
  distanbol api convert --file enhancement.json --confidence 0.5
  distanbol api convert --url http://example.org/doc.txt -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ConvertRequest{Input: text, URL: url}
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				req.Input = string(data)
			}
			if req.Input == "" && req.URL == "" {
				return errors.New("one of --text, --file or --url is required")
			}
			if cmd.Flags().Changed("confidence") {
				req.Confidence = &confidence
			}

			client := api.NewClient(getServerURL())
			var resp ConvertResponse
			if err := client.Post(cmd.Context(), "/api/convert", req, &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			PrintSummary(cmd.OutOrStdout(), &resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Text or Stanbol JSON to convert")
	cmd.Flags().StringVar(&file, "file", "", "Read the input from a file")
	cmd.Flags().StringVar(&url, "url", "", "Convert the document at this URL")
	cmd.Flags().Float64Var(&confidence, "confidence", DefaultConfidence, "Confidence threshold between 0 and 1")
	cmd.MarkFlagsMutuallyExclusive("text", "file", "url")
	return cmd
}

// PrintSummary writes a coloured, human-readable summary of a conversion.
func PrintSummary(w io.Writer, resp *ConvertResponse) {
	heading := color.New(color.FgCyan, color.Bold)
	name := color.New(color.FgGreen, color.Bold)
	dim := color.New(color.FgHiBlack)

	if resp.SourceURL != "" {
		heading.Fprintf(w, "Source: ")
		fmt.Fprintln(w, resp.SourceURL)
	}
	heading.Fprintf(w, "Threshold: ")
	fmt.Fprintf(w, "%v\n", resp.Threshold)
	if resp.Stats.WordCount != nil && *resp.Stats.WordCount > 0 {
		heading.Fprintf(w, "Word count: ")
		fmt.Fprintf(w, "%d\n", *resp.Stats.WordCount)
	}
	heading.Fprintf(w, "Entities: ")
	fmt.Fprintf(w, "%d found, %d above threshold\n\n", resp.Stats.TotalEntities, resp.Stats.MatchedEntities)

	for _, r := range resp.Results {
		name.Fprintf(w, "%s", r.Entity.DisplayName())
		fmt.Fprintf(w, "  %.2f\n", r.Annotation.Confidence)
		dim.Fprintf(w, "  %s\n", r.Entity.ID)
		if r.Entity.HasCoordinates() {
			fmt.Fprintf(w, "  at %s, %s\n", *r.Entity.Latitude, *r.Entity.Longitude)
		}
		for _, ta := range r.Context {
			if ta.SelectedText != nil {
				fmt.Fprintf(w, "  %q\n", *ta.SelectedText)
			}
		}
	}
}
