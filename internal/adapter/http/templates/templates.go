package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every page together with the shared layout blocks.
func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
