package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/models"
)

// DefaultPageSize is the admin product list page size.
const DefaultPageSize = 25

// ProductStore handles catalog products.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `p.id, p.name, p.slug, p.category_id, p.brand, p.description,
	p.price, p.old_price, p.image, p.in_stock, p.sort_order, p.created_at, p.updated_at,
	COALESCE(c.name, '')`

const productFrom = ` FROM products p LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row scanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.Brand, &p.Description,
		&p.Price, &p.OldPrice, &p.Image, &p.InStock, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ProductFilter narrows List. Zero values match everything; a zero Limit
// means DefaultPageSize.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Brand      string
	InStock    *bool
	Search     string
	Limit      int
	Offset     int
}

func (f ProductFilter) where() *where {
	w := &where{}
	if f.CategoryID != nil {
		w.add("p.category_id = ?", *f.CategoryID)
	}
	if f.Brand != "" {
		w.add("p.brand = ?", f.Brand)
	}
	if f.InStock != nil {
		w.add("p.in_stock = ?", *f.InStock)
	}
	if f.Search != "" {
		w.add("(p.name ILIKE ? OR p.brand ILIKE ? OR p.description ILIKE ?)",
			likePattern(f.Search), likePattern(f.Search), likePattern(f.Search))
	}
	return w
}

// List returns one page of products matching the filter, ordered by
// sort_order and name, plus the total number of matches.
func (s *ProductStore) List(ctx context.Context, f ProductFilter) ([]models.Product, int, error) {
	w := f.where()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+productFrom+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	query := `SELECT ` + productColumns + productFrom + w.String() +
		` ORDER BY p.sort_order, p.name LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(max(f.Offset, 0))

	items, err := s.queryProducts(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return items, total, nil
}

// ListInStock returns every in-stock product ordered by sort_order then
// name. It backs the public catalog page.
func (s *ProductStore) ListInStock(ctx context.Context) ([]models.Product, error) {
	items, err := s.queryProducts(ctx, `SELECT `+productColumns+productFrom+`
		WHERE p.in_stock
		ORDER BY p.sort_order, p.name`)
	if err != nil {
		return nil, fmt.Errorf("list in-stock products: %w", err)
	}
	return items, nil
}

// Brands returns the distinct non-empty brands, for the list filter.
func (s *ProductStore) Brands(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT brand FROM products WHERE brand <> '' ORDER BY brand`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// FindByID retrieves a product by its UUID. Returns nil if not found.
func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by slug. Returns nil if not found.
func (s *ProductStore) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `SELECT `+productColumns+productFrom+` WHERE p.slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// FindBySlugs returns the products whose slug is in slugs, ordered by
// sort_order and name. Missing slugs are silently skipped.
func (s *ProductStore) FindBySlugs(ctx context.Context, slugs []string) ([]models.Product, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	items, err := s.queryProducts(ctx, `SELECT `+productColumns+productFrom+`
		WHERE p.slug = ANY($1)
		ORDER BY p.sort_order, p.name`, slugs)
	if err != nil {
		return nil, fmt.Errorf("find products by slugs: %w", err)
	}
	return items, nil
}

// SlugsOutsideCategories returns the slugs of products that are not linked
// to any of the categories with the given slugs, including uncategorised ones.
func (s *ProductStore) SlugsOutsideCategories(ctx context.Context, categorySlugs []string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.slug FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE c.id IS NULL OR NOT (c.slug = ANY($1))`, categorySlugs)
	if err != nil {
		return nil, fmt.Errorf("list product slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var sl string
		if err := rows.Scan(&sl); err != nil {
			return nil, fmt.Errorf("scan product slug: %w", err)
		}
		slugs = append(slugs, sl)
	}
	return slugs, rows.Err()
}

// Create inserts a new product.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, category_id, brand, description,
		                      price, old_price, image, in_stock, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		p.Name, p.Slug, p.CategoryID, p.Brand, p.Description,
		p.Price, p.OldPrice, p.Image, p.InStock, p.SortOrder,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", translate(err))
	}
	return s.FindByID(ctx, id)
}

// CreateIfAbsent inserts p unless a product with the same slug exists. It
// returns the stored product and whether this call created it.
func (s *ProductStore) CreateIfAbsent(ctx context.Context, p *models.Product) (*models.Product, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, category_id, brand, description,
		                      price, old_price, image, in_stock, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (slug) DO NOTHING
		RETURNING id`,
		p.Name, p.Slug, p.CategoryID, p.Brand, p.Description,
		p.Price, p.OldPrice, p.Image, p.InStock, p.SortOrder,
	).Scan(&id)
	if err == sql.ErrNoRows {
		existing, err := s.FindBySlug(ctx, p.Slug)
		return existing, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("create product: %w", translate(err))
	}
	created, err := s.FindByID(ctx, id)
	return created, true, err
}

// Update modifies every editable field of an existing product and bumps
// updated_at.
func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET
			name = $1, slug = $2, category_id = $3, brand = $4, description = $5,
			price = $6, old_price = $7, image = $8, in_stock = $9, sort_order = $10,
			updated_at = NOW()
		WHERE id = $11`,
		p.Name, p.Slug, p.CategoryID, p.Brand, p.Description,
		p.Price, p.OldPrice, p.Image, p.InStock, p.SortOrder, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", translate(err))
	}
	return expectRow(res)
}

// UpsertBySlug creates the product when its slug is new. Otherwise it
// updates the catalog-feed fields (name, category, price, image, in_stock,
// sort_order) and leaves brand, description and old_price as edited by staff.
// It reports whether a row was created.
func (s *ProductStore) UpsertBySlug(ctx context.Context, p *models.Product) (*models.Product, bool, error) {
	existing, err := s.FindBySlug(ctx, p.Slug)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		created, err := s.Create(ctx, p)
		return created, created != nil, err
	}

	existing.Name = p.Name
	existing.CategoryID = p.CategoryID
	existing.Price = p.Price
	existing.Image = p.Image
	existing.InStock = p.InStock
	existing.SortOrder = p.SortOrder
	if err := s.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Delete removes a product. Order items keep their snapshot and lose the link.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return expectRow(res)
}

// Count returns the number of products.
func (s *ProductStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ProductPatch is one row of an inline list edit. Nil fields are left
// unchanged; ClearOldPrice removes the crossed-out price.
type ProductPatch struct {
	ID            uuid.UUID        `json:"id"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	OldPrice      *decimal.Decimal `json:"old_price,omitempty"`
	ClearOldPrice bool             `json:"clear_old_price,omitempty"`
	InStock       *bool            `json:"in_stock,omitempty"`
	SortOrder     *int             `json:"sort_order,omitempty"`
}

// Apply copies the set fields of the patch onto p.
func (pp ProductPatch) Apply(p *models.Product) {
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.ClearOldPrice {
		p.OldPrice = decimal.NullDecimal{}
	} else if pp.OldPrice != nil {
		p.OldPrice = decimal.NewNullDecimal(*pp.OldPrice)
	}
	if pp.InStock != nil {
		p.InStock = *pp.InStock
	}
	if pp.SortOrder != nil {
		p.SortOrder = *pp.SortOrder
	}
}

// BulkUpdate applies the patches in a single transaction. Any invalid value
// or missing product rolls back the whole batch.
func (s *ProductStore) BulkUpdate(ctx context.Context, patches []ProductPatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, patch := range patches {
		var p models.Product
		err := tx.QueryRowContext(ctx, `
			SELECT id, name, slug, price, old_price, image, in_stock, sort_order, brand
			FROM products WHERE id = $1`, patch.ID,
		).Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.OldPrice, &p.Image, &p.InStock, &p.SortOrder, &p.Brand)
		if err == sql.ErrNoRows {
			return fmt.Errorf("product %s: %w", patch.ID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("load product %s: %w", patch.ID, err)
		}

		patch.Apply(&p)
		if err := p.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE products SET price = $1, old_price = $2, in_stock = $3, sort_order = $4,
			                    updated_at = NOW()
			WHERE id = $5`,
			p.Price, p.OldPrice, p.InStock, p.SortOrder, p.ID)
		if err != nil {
			return fmt.Errorf("update product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}
