// Package web provides the embedded HTML templates and static assets for the
// Distanbol report pages.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFS embed.FS

//go:embed templates/*.html
var templatesFS embed.FS

// StaticFS returns the static assets with "static" as the root, so files are
// accessed directly (e.g., "style.css" not "static/style.css").
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}

// TemplatesFS returns the report templates with "templates" as the root.
func TemplatesFS() (fs.FS, error) {
	return fs.Sub(templatesFS, "templates")
}
