package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/models"
	"toolshop/internal/slug"
	"toolshop/internal/store"
)

// categoryInput is the writable part of a category.
type categoryInput struct {
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder *int       `json:"sort_order"`
}

// apply copies the input onto c, deriving the slug from the name when it is
// left blank.
func (in categoryInput) apply(c *models.Category) {
	c.Name = strings.TrimSpace(in.Name)
	c.Slug = strings.TrimSpace(in.Slug)
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}
	c.ParentID = in.ParentID
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
}

// ListCategories returns categories, optionally narrowed to one parent
// (?parent=) or a name search (?q=).
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	parentID, err := queryUUID(r, "parent")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cats, err := a.categories.List(r.Context(), store.CategoryFilter{
		ParentID: parentID,
		Search:   strings.TrimSpace(r.URL.Query().Get("q")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cats})
}

// CategoryTree returns the nested category tree.
func (a *Admin) CategoryTree(w http.ResponseWriter, r *http.Request) {
	tree, err := a.categories.Tree(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": tree})
}

func (a *Admin) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cat, err := found(a.categories.FindByID(r.Context(), id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// CreateCategory adds a category. Without an explicit sort_order it is
// placed after its siblings.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	var cat models.Category
	in.apply(&cat)
	if in.SortOrder == nil {
		next, err := a.categories.NextSortOrder(r.Context(), cat.ParentID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cat.SortOrder = next
	}

	created, err := a.categories.Create(r.Context(), &cat)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in categoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	cat, err := found(a.categories.FindByID(ctx, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	in.apply(cat)
	if err := a.categories.Update(ctx, cat); err != nil {
		writeError(w, r, err)
		return
	}
	a.catalogChanged(ctx)

	updated, err := found(a.categories.FindByID(ctx, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory removes a category and its sub-categories. Products in them
// lose their category.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.categories.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	a.catalogChanged(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ReorderCategories applies a drag-and-drop reorder of the tree in one
// transaction.
func (a *Admin) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var items []store.ReorderItem
	if err := decodeJSON(w, r, &items); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.categories.Reorder(r.Context(), items); err != nil {
		writeError(w, r, err)
		return
	}
	a.catalogChanged(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// productInput is the writable part of a product.
type productInput struct {
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	CategoryID  *uuid.UUID          `json:"category_id"`
	Brand       string              `json:"brand"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	OldPrice    decimal.NullDecimal `json:"old_price"`
	Image       string              `json:"image"`
	InStock     *bool               `json:"in_stock"`
	SortOrder   int                 `json:"sort_order"`
}

// apply copies the input onto p. A missing in_stock keeps the current value.
func (in productInput) apply(p *models.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Slug = strings.TrimSpace(in.Slug)
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Name)
	}
	p.CategoryID = in.CategoryID
	p.Brand = strings.TrimSpace(in.Brand)
	p.Description = in.Description
	p.Price = in.Price
	p.OldPrice = in.OldPrice
	p.Image = strings.TrimSpace(in.Image)
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	p.SortOrder = in.SortOrder
}

// ListProducts returns one page of products. Filters: ?category=, ?brand=,
// ?in_stock=, ?q= (name, brand or description) and ?page=.
func (a *Admin) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryUUID(r, "category")
	if err != nil {
		writeError(w, r, err)
		return
	}
	inStock, err := queryBool(r, "in_stock")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := queryPage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	products, total, err := a.products.List(r.Context(), store.ProductFilter{
		CategoryID: categoryID,
		Brand:      strings.TrimSpace(q.Get("brand")),
		InStock:    inStock,
		Search:     strings.TrimSpace(q.Get("q")),
		Limit:      store.DefaultPageSize,
		Offset:     (page - 1) * store.DefaultPageSize,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":     products,
		"total":     total,
		"page":      page,
		"page_size": store.DefaultPageSize,
	})
}

// ProductFilters returns the values the product list can be filtered by:
// distinct brands, root categories as tabs and the flattened tree for the
// category select.
func (a *Admin) ProductFilters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	brands, err := a.products.Brands(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	roots, err := a.categories.Roots(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	flat, err := a.categories.FlatTree(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"brands":     brands,
		"tabs":       roots,
		"categories": flat,
	})
}

func (a *Admin) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := found(a.products.FindByID(r.Context(), id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProduct adds a product. Products are in stock unless the request
// says otherwise.
func (a *Admin) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	p := models.Product{InStock: true}
	in.apply(&p)
	created, err := a.products.Create(r.Context(), &p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.catalogChanged(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

func (a *Admin) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	p, err := found(a.products.FindByID(ctx, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	in.apply(p)
	if err := a.products.Update(ctx, p); err != nil {
		writeError(w, r, err)
		return
	}
	a.catalogChanged(ctx)

	updated, err := found(a.products.FindByID(ctx, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// BulkUpdateProducts applies inline list edits (price, old price, stock flag,
// sort order). The batch is all-or-nothing.
func (a *Admin) BulkUpdateProducts(w http.ResponseWriter, r *http.Request) {
	var patches []store.ProductPatch
	if err := decodeJSON(w, r, &patches); err != nil {
		writeError(w, r, err)
		return
	}
	if len(patches) == 0 {
		writeError(w, r, badRequestf("no products to update"))
		return
	}
	if err := a.products.BulkUpdate(r.Context(), patches); err != nil {
		writeError(w, r, err)
		return
	}
	a.catalogChanged(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"updated": len(patches)})
}

func (a *Admin) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	a.catalogChanged(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
