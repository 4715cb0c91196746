// Package web holds the HTML page templates, embedded into the binary.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap is available to every page.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"photoURL": PhotoURL,
		"stars":    Stars,
	}
}

// Templates parses the embedded page set. Pages are looked up by file name,
// e.g. "barber_detail.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

// PhotoURL turns a stored photo path into a link. Local paths are served from
// the site root, absolute URLs are returned unchanged.
func PhotoURL(stored *string) string {
	if stored == nil || *stored == "" {
		return ""
	}
	p := *stored
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// Stars renders a 1-5 score as filled and empty stars.
func Stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
