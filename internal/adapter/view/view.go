// Package view turns a rendered document into a standalone HTML page whose
// #resume-preview node is the capture target of the exporter.
package view

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"regexp"
	"strings"

	"resume-builder/internal/domain"
)

// RootSelector addresses the node that holds the whole resume.
const RootSelector = "#resume-preview"

// DefaultWidth is the surface width in CSS pixels.
const DefaultWidth = 800

const fallbackAccent = "#333333"

//go:embed templates/template.html templates/style.css
var files embed.FS

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// HTML renders documents through the embedded page template with the
// stylesheet inlined, so the output has no external references.
type HTML struct {
	tpl   *template.Template
	css   template.CSS
	width int
}

type page struct {
	Doc    *domain.Document
	CSS    template.CSS
	Accent template.CSS
	Width  int
}

func New(width int) (*HTML, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	css, err := files.ReadFile("templates/style.css")
	if err != nil {
		return nil, err
	}
	tpl, err := template.New("template.html").Funcs(template.FuncMap{
		"photoURI": photoURI,
		"color":    color,
	}).ParseFS(files, "templates/template.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &HTML{tpl: tpl, css: template.CSS(css), width: width}, nil
}

// Width returns the surface width in CSS pixels.
func (v *HTML) Width() int { return v.width }

// Write renders doc as a full HTML page to w.
func (v *HTML) Write(w io.Writer, doc *domain.Document) error {
	if doc == nil {
		return fmt.Errorf("view: nil document")
	}
	return v.tpl.Execute(w, page{
		Doc:    doc,
		CSS:    v.css,
		Accent: color(doc.Accent),
		Width:  v.width,
	})
}

// Render renders doc to a string.
func (v *HTML) Render(doc *domain.Document) (string, error) {
	var buf bytes.Buffer
	if err := v.Write(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// photoURI returns a data URI for the badge photo, or "" when there is none
// or its bytes are not an image.
func photoURI(b domain.Badge) template.URL {
	if !b.HasPhoto() {
		return ""
	}
	p := b.Photo
	mime := http.DetectContentType(p)
	if !strings.HasPrefix(mime, "image/") {
		return ""
	}
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(p))
}

func color(c string) template.CSS {
	if hexColor.MatchString(c) {
		return template.CSS(c)
	}
	return fallbackAccent
}
