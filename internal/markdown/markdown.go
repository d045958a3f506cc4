// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown renders product descriptions written in Markdown to HTML
// using goldmark. Raw HTML in the source is dropped, so the output is safe
// to embed in public pages.
package markdown

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// ToHTML converts Markdown source into HTML. Raw HTML blocks and inline
// tags are replaced by goldmark's omission comment.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Template is a template function that renders source as trusted HTML.
// A conversion error yields an empty fragment.
func Template(source string) template.HTML {
	if source == "" {
		return ""
	}
	out, err := ToHTML(source)
	if err != nil {
		slog.Warn("render markdown failed", "error", err)
		return ""
	}
	return template.HTML(out) //nolint:gosec // goldmark drops raw HTML without WithUnsafe
}
