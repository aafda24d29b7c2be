// Package report renders reconciliation results as HTML pages.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strconv"
	"strings"

	"github.com/jackzampolin/distanbol/internal/enhance"
	"github.com/jackzampolin/distanbol/web"
)

// Mode selects which input form a page shows.
type Mode string

const (
	// ModeForm is the empty landing page with both forms.
	ModeForm Mode = "form"
	// ModeText renders results for text or JSON pasted into the form.
	ModeText Mode = "text"
	// ModeURL renders results for a document fetched from a URL.
	ModeURL Mode = "url"
)

// View is the data a page is rendered from.
type View struct {
	Mode       Mode
	SourceURL  string
	InputText  string
	Fulltext   string
	Confidence float64
	Results    []enhance.Result
	Stats      enhance.Stats
}

// NewView builds a View from a reconciliation. In text mode the textarea
// is refilled with the enhancer's fulltext when present, otherwise with the
// raw input.
func NewView(mode Mode, r *enhance.Reconciliation, input, sourceURL string) View {
	v := View{
		Mode:       mode,
		SourceURL:  sourceURL,
		Confidence: r.Threshold,
		Results:    r.Results,
		Stats:      r.Stats,
	}
	if r.Fulltext != nil {
		v.Fulltext = *r.Fulltext
	}
	if mode == ModeText {
		v.InputText = input
		if v.Fulltext != "" {
			v.InputText = v.Fulltext
		}
	}
	return v
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	templates, err := web.TemplatesFS()
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}
	return NewRendererFS(templates)
}

// NewRendererFS parses every *.html file in fsys.
func NewRendererFS(fsys fs.FS) (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(funcs).ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if tmpl.Lookup("page") == nil {
		return nil, fmt.Errorf("template %q not defined", "page")
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full page for v. Output is buffered so a template error
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, v View) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", v); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"deref":      deref,
	"confidence": formatConfidence,
	"mapURL":     mapURL,
	"highlight":  highlight,
	"join":       strings.Join,
	"wordCount":  wordCount,
	"anchor":     anchor,
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func wordCount(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// anchor turns an entity ID into a fragment-safe element id.
func anchor(id string) string {
	var sb strings.Builder
	sb.WriteString("entity-")
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func formatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

// mapURL links an entity's coordinates to OpenStreetMap.
func mapURL(e *enhance.Entity) string {
	if !e.HasCoordinates() {
		return ""
	}
	lat, lon := url.QueryEscape(*e.Latitude), url.QueryEscape(*e.Longitude)
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s#map=12/%s/%s", lat, lon, lat, lon)
}

// highlight renders a text annotation's selection context with the selected
// text marked. Falls back to the selected text alone.
func highlight(ta *enhance.TextAnnotation) template.HTML {
	selected := deref(ta.SelectedText)
	context := deref(ta.SelectionContext)
	if context == "" {
		return template.HTML(template.HTMLEscapeString(selected))
	}
	if selected == "" {
		return template.HTML(template.HTMLEscapeString(context))
	}
	i := strings.Index(context, selected)
	if i < 0 {
		return template.HTML(template.HTMLEscapeString(context))
	}
	return template.HTML(template.HTMLEscapeString(context[:i]) +
		"<mark>" + template.HTMLEscapeString(selected) + "</mark>" +
		template.HTMLEscapeString(context[i+len(selected):]))
}
