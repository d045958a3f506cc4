// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a node in the product category tree (e.g. "Drills",
// "Angle grinders"). Deleting a category deletes its sub-categories; products
// in it lose their category link but survive.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder int        `json:"sort_order"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Children     []Category `json:"children,omitempty"`
	Depth        int        `json:"depth"`
	ProductCount int        `json:"product_count"`
}

func (c *Category) String() string {
	return c.Name
}

// Validate checks the category fields against the column constraints.
func (c *Category) Validate() error {
	return firstError(
		checkRequired("name", c.Name),
		checkLen("name", c.Name, MaxCategoryNameLen),
		checkSlug("slug", c.Slug, MaxCategorySlugLen),
		checkNonNegative("sort_order", c.SortOrder),
		c.checkParent(),
	)
}

func (c *Category) checkParent() error {
	if c.ParentID != nil && c.ID != uuid.Nil && *c.ParentID == c.ID {
		return invalid("parent_id", "a category cannot be its own parent")
	}
	return nil
}
