// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/price"
)

// Product is a catalog item. Order items keep a snapshot of its name and
// price, so removing a product never rewrites order history.
type Product struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	CategoryID  *uuid.UUID          `json:"category_id"`
	Brand       string              `json:"brand"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	OldPrice    decimal.NullDecimal `json:"old_price"`
	Image       string              `json:"image"`
	InStock     bool                `json:"in_stock"`
	SortOrder   int                 `json:"sort_order"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// CategoryName is joined in by list queries.
	CategoryName string `json:"category_name,omitempty"`
}

func (p *Product) String() string {
	return p.Name
}

// PriceDisplay returns the price formatted for display, e.g. "12 490 ₽".
func (p *Product) PriceDisplay() string {
	return price.Format(p.Price)
}

// OldPriceDisplay returns the crossed-out price, or "" when there is none.
func (p *Product) OldPriceDisplay() string {
	return price.FormatNull(p.OldPrice)
}

// Validate checks the product fields against the column constraints.
func (p *Product) Validate() error {
	var oldPrice error
	if p.OldPrice.Valid {
		oldPrice = checkMoney("old_price", p.OldPrice.Decimal)
	}
	return firstError(
		checkRequired("name", p.Name),
		checkLen("name", p.Name, MaxProductNameLen),
		checkSlug("slug", p.Slug, MaxProductSlugLen),
		checkLen("brand", p.Brand, MaxBrandLen),
		checkMoney("price", p.Price),
		oldPrice,
		checkURL("image", p.Image, MaxImageURLLen),
		checkNonNegative("sort_order", p.SortOrder),
	)
}
