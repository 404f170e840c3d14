// Package templates embeds the server-rendered pages so the binary
// ships self-contained.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

func Load() *template.Template {
	return template.Must(template.ParseFS(files, "*.html"))
}
