// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the toolshop backend.
// Handlers are grouped by concern (admin JSON API, public catalog page) and
// receive their dependencies through the handler struct.
package handlers

import (
	"context"
	"database/sql"
	"net/http"

	"toolshop/internal/models"
	"toolshop/internal/store"
)

// CatalogInvalidator drops the cached public catalog page.
// *cache.PageCache implements it.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

// Stores bundles the persistence the admin API works on.
type Stores struct {
	Categories *store.CategoryStore
	Products   *store.ProductStore
	Orders     *store.OrderStore
	OrderItems *store.OrderItemStore
	Payments   *store.PaymentStore
	Ledger     *store.AccountingStore
}

// NewStores creates every store over the same connection pool.
func NewStores(db *sql.DB) Stores {
	return Stores{
		Categories: store.NewCategoryStore(db),
		Products:   store.NewProductStore(db),
		Orders:     store.NewOrderStore(db),
		OrderItems: store.NewOrderItemStore(db),
		Payments:   store.NewPaymentStore(db),
		Ledger:     store.NewAccountingStore(db),
	}
}

// Admin groups all admin API handlers and their dependencies.
type Admin struct {
	categories *store.CategoryStore
	products   *store.ProductStore
	orders     *store.OrderStore
	orderItems *store.OrderItemStore
	payments   *store.PaymentStore
	ledger     *store.AccountingStore
	pages      CatalogInvalidator
}

// NewAdmin creates a new Admin handler group. pages may be nil when no page
// cache is configured.
func NewAdmin(s Stores, pages CatalogInvalidator) *Admin {
	return &Admin{
		categories: s.Categories,
		products:   s.Products,
		orders:     s.Orders,
		orderItems: s.OrderItems,
		payments:   s.Payments,
		ledger:     s.Ledger,
		pages:      pages,
	}
}

// catalogChanged drops the cached public listing after a write that can
// change it.
func (a *Admin) catalogChanged(ctx context.Context) {
	if a.pages != nil {
		a.pages.InvalidateCatalog(ctx)
	}
}

// Dashboard returns headline counts and the all-time ledger balance.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := a.categories.Count(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	products, err := a.products.Count(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	totals, err := a.ledger.Totals(ctx, store.EntryFilter{})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"products":   products,
		"income":     totals.Income,
		"expense":    totals.Expense,
		"balance":    totals.Balance(),
	})
}

// Choices returns the label tables of every enumerated field, for form
// selects and list filters.
func (a *Admin) Choices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]models.Choice{
		"order_status":   models.OrderStatusChoices(),
		"payment_method": models.PaymentMethodChoices(),
		"payment_status": models.PaymentStatusChoices(),
		"entry_type":     models.EntryTypeChoices(),
	})
}
