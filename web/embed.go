// Package web provides the embedded HTML templates for the public site.
package web

import "embed"

// TemplateFS embeds the web/templates/ directory tree.
//
//go:embed templates/*.html
var TemplateFS embed.FS
