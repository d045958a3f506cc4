// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"toolshop/internal/cache"
	"toolshop/internal/markdown"
	"toolshop/internal/models"
	"toolshop/web"
)

// CatalogLister lists the products shown on the public catalog page.
type CatalogLister interface {
	ListInStock(ctx context.Context) ([]models.Product, error)
}

// PageCache stores rendered public pages. *cache.PageCache implements it.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

// Public serves the public catalog listing. It checks the Valkey page cache
// before querying products, and stores the rendered page on miss.
type Public struct {
	products CatalogLister
	pages    PageCache
	maxAge   time.Duration
	tmpl     *template.Template
}

// NewPublic creates the public handler group. pages may be nil, in which
// case every request renders from the database. maxAge sets the
// Cache-Control max-age and should match the page cache TTL.
func NewPublic(products CatalogLister, pages PageCache, maxAge time.Duration) (*Public, error) {
	tmpl, err := template.New("catalog.html").
		Funcs(template.FuncMap{"markdown": markdown.Template}).
		ParseFS(web.TemplateFS, "templates/catalog.html")
	if err != nil {
		return nil, fmt.Errorf("parse catalog template: %w", err)
	}
	if maxAge <= 0 {
		maxAge = cache.CatalogTTL
	}
	return &Public{products: products, pages: pages, maxAge: maxAge, tmpl: tmpl}, nil
}

// Catalog renders every in-stock product ordered by sort order then name.
// The response may be cached publicly for maxAge.
func (p *Public) Catalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if p.pages != nil {
		if cached, ok := p.pages.Get(ctx, cache.CatalogKey); ok {
			p.writePage(w, cached)
			return
		}
	}

	products, err := p.products.ListInStock(ctx)
	if err != nil {
		slog.Error("list in-stock products failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, map[string]any{"Products": products}); err != nil {
		slog.Error("render catalog failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pages != nil {
		p.pages.Set(ctx, cache.CatalogKey, buf.Bytes())
	}
	p.writePage(w, buf.Bytes())
}

func (p *Public) writePage(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(p.maxAge.Seconds())))
	w.Write(html)
}
