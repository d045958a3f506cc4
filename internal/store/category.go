// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toolshop/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, parent_id, sort_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(row scanner) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug,
		&c.ParentID, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryFilter narrows List. Zero values match everything.
type CategoryFilter struct {
	ParentID *uuid.UUID
	Search   string
}

// List returns categories ordered by sort_order and name, with product counts.
func (s *CategoryStore) List(ctx context.Context, f CategoryFilter) ([]models.Category, error) {
	var w where
	if f.ParentID != nil {
		w.add("c.parent_id = ?", *f.ParentID)
	}
	if f.Search != "" {
		w.add("c.name ILIKE ?", likePattern(f.Search))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.parent_id, c.sort_order,
		       c.created_at, c.updated_at,
		       COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id`+w.String()+`
		GROUP BY c.id
		ORDER BY c.sort_order, c.name
	`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug,
			&c.ParentID, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
			&c.ProductCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Roots returns top-level categories, used for the product list tabs.
func (s *CategoryStore) Roots(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE parent_id IS NULL
		ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list root categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Tree returns categories as a nested tree structure.
func (s *CategoryStore) Tree(ctx context.Context) ([]models.Category, error) {
	flat, err := s.List(ctx, CategoryFilter{})
	if err != nil {
		return nil, err
	}
	return buildTree(flat, nil, 0), nil
}

// buildTree recursively builds a tree from a flat list.
func buildTree(flat []models.Category, parentID *uuid.UUID, depth int) []models.Category {
	var result []models.Category
	for _, c := range flat {
		if ptrEqual(c.ParentID, parentID) {
			c.Depth = depth
			c.Children = buildTree(flat, &c.ID, depth+1)
			result = append(result, c)
		}
	}
	return result
}

// ptrEqual compares two *uuid.UUID for equality (both nil or same value).
func ptrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// FlatTree returns categories in depth-first display order with Depth set,
// for indented <select> options.
func (s *CategoryStore) FlatTree(ctx context.Context) ([]models.Category, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	var result []models.Category
	flattenTree(tree, &result)
	return result, nil
}

func flattenTree(cats []models.Category, result *[]models.Category) {
	for _, c := range cats {
		children := c.Children
		c.Children = nil
		*result = append(*result, c)
		flattenTree(children, result)
	}
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, parent_id, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.ParentID, c.SortOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", translate(err))
	}
	return result, nil
}

// Update modifies an existing category. Moving a category under itself or
// one of its descendants returns ErrCycle.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ParentID != nil {
		cyclic, err := isDescendant(ctx, s.db, *c.ParentID, c.ID)
		if err != nil {
			return err
		}
		if cyclic {
			return ErrCycle
		}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, parent_id = $3,
			sort_order = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Name, c.Slug, c.ParentID, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", translate(err))
	}
	return expectRow(res)
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// isDescendant reports whether candidate is root or lies below it.
func isDescendant(ctx context.Context, q rowQuerier, candidate, root uuid.UUID) (bool, error) {
	var found bool
	err := q.QueryRowContext(ctx, `
		WITH RECURSIVE subtree AS (
			SELECT id FROM categories WHERE id = $1
			UNION
			SELECT c.id FROM categories c JOIN subtree t ON c.parent_id = t.id
		)
		SELECT EXISTS (SELECT 1 FROM subtree WHERE id = $2)
	`, root, candidate).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check category ancestry: %w", err)
	}
	return found, nil
}

// UpsertBySlug creates the category when its slug is new, otherwise updates
// name, parent and sort order in place. It reports whether a row was created.
func (s *CategoryStore) UpsertBySlug(ctx context.Context, c *models.Category) (*models.Category, bool, error) {
	existing, err := s.FindBySlug(ctx, c.Slug)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		created, err := s.Create(ctx, c)
		return created, created != nil, err
	}

	existing.Name = c.Name
	existing.ParentID = c.ParentID
	existing.SortOrder = c.SortOrder
	if err := s.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Delete removes a category by ID. Sub-categories are deleted with it;
// its products keep existing without a category.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return expectRow(res)
}

// Count returns the number of categories.
func (s *CategoryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// ReorderItem represents a single item in a reorder request.
type ReorderItem struct {
	ID       uuid.UUID  `json:"id"`
	ParentID *uuid.UUID `json:"parent_id"`
	Order    int        `json:"order"`
}

// Reorder updates sort_order and parent_id for multiple categories in a
// transaction. A batch that leaves any moved category below itself is rolled
// back with ErrCycle.
func (s *CategoryStore) Reorder(ctx context.Context, items []ReorderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE categories SET parent_id = $1, sort_order = $2, updated_at = $3
		WHERE id = $4`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, item := range items {
		if item.Order < 0 {
			return &models.ValidationError{Field: "order", Message: "must not be negative"}
		}
		if item.ParentID != nil && *item.ParentID == item.ID {
			return ErrCycle
		}
		res, err := stmt.ExecContext(ctx, item.ParentID, item.Order, now, item.ID)
		if err != nil {
			return fmt.Errorf("reorder category %s: %w", item.ID, translate(err))
		}
		if err := expectRow(res); err != nil {
			return fmt.Errorf("reorder category %s: %w", item.ID, err)
		}
	}

	for _, item := range items {
		if item.ParentID == nil {
			continue
		}
		cyclic, err := isDescendant(ctx, tx, *item.ParentID, item.ID)
		if err != nil {
			return err
		}
		if cyclic {
			return ErrCycle
		}
	}

	return tx.Commit()
}

// NextSortOrder returns the next sort_order value for a given parent.
func (s *CategoryStore) NextSortOrder(ctx context.Context, parentID *uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64
	var err error
	if parentID == nil {
		err = s.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE parent_id IS NULL`).Scan(&maxOrder)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE parent_id = $1`, *parentID).Scan(&maxOrder)
	}
	if err != nil {
		return 0, fmt.Errorf("next category sort order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}
