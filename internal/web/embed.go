// Package web provides the embedded HTML pages served by the conversion
// server emulator.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Page names.
const (
	UploadPage     = "upload.html"
	ProcessingPage = "processing.html"
)

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every embedded page.
func NewRenderer() (*Renderer, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, err
	}
	t, err := template.ParseFS(sub, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// MustRenderer is NewRenderer for package initialisation; the templates
// are compiled in, so a failure is a build defect.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render writes the named page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Pages lists the embedded page names.
func (r *Renderer) Pages() []string {
	var names []string
	for _, t := range r.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}
