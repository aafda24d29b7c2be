package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/distanbol/internal/report"
	"github.com/jackzampolin/distanbol/internal/svcctx"
)

// FormEndpoint handles GET / with the empty input form.
type FormEndpoint struct{}

func (e *FormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{$}", e.handler
}

func (e *FormEndpoint) RequiresInit() bool { return true }

func (e *FormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	renderer := svcctx.RendererFrom(r.Context())
	view := report.View{
		Mode:       report.ModeForm,
		Confidence: svcctx.DefaultConfidenceFrom(r.Context(), DefaultConfidence),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.Render(w, view); err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to render form", "error", err)
		http.Error(w, msgInternal, http.StatusInternalServerError)
	}
}

func (e *FormEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// ConvertFormEndpoint handles POST /convert from the text form.
type ConvertFormEndpoint struct{}

func (e *ConvertFormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/convert", e.handler
}

func (e *ConvertFormEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Convert text or Stanbol JSON
//	@Description	Form input that parses as JSON is reconciled as Stanbol output, anything else is enhanced first
//	@Tags			convert
//	@Accept			x-www-form-urlencoded
//	@Produce		html
//	@Param			input		formData	string	true	"Plain text or Stanbol JSON-LD output"
//	@Param			confidence	formData	number	false	"Confidence threshold between 0 and 1 (default 0.7)"
//	@Success		202	{string}	string	"HTML report"
//	@Failure		400	{string}	string
//	@Failure		504	{string}	string
//	@Failure		500	{string}	string
//	@Router			/convert [post]
func (e *ConvertFormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	threshold := resolveConfidence(ctx, r.PostFormValue("confidence"))

	c, err := convertInput(ctx, r.PostFormValue("input"), threshold)
	if err != nil {
		writeConvertError(w, r, err, failureFor(ctx, threshold, ""))
		return
	}
	writeReport(w, r, c)
}

func (e *ConvertFormEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// ConvertURLEndpoint handles GET /convert?URL=...&confidence=....
type ConvertURLEndpoint struct{}

func (e *ConvertURLEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/convert", e.handler
}

func (e *ConvertURLEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Convert a remote document
//	@Description	Fetches URL and reconciles it: application/json and application/ld+json are Stanbol output, text/plain is enhanced first
//	@Tags			convert
//	@Produce		html
//	@Param			URL			query	string	true	"Document URL"
//	@Param			confidence	query	number	false	"Confidence threshold between 0 and 1 (default 0.7)"
//	@Success		202	{string}	string	"HTML report"
//	@Failure		400	{string}	string
//	@Failure		504	{string}	string
//	@Failure		500	{string}	string
//	@Router			/convert [get]
func (e *ConvertURLEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	rawURL := query.Get("URL")
	threshold := resolveConfidence(ctx, query.Get("confidence"))

	c, err := convertURL(ctx, rawURL, threshold)
	if err != nil {
		writeConvertError(w, r, err, failureFor(ctx, threshold, rawURL))
		return
	}
	writeReport(w, r, c)
}

func (e *ConvertURLEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}
