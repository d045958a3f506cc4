// Package catalog implements the operator batch jobs that populate the
// product catalog: loading categories and products from a dataset, and
// replicating the base product set into every category.
package catalog

import (
	"context"
	"errors"
	"io"

	"toolshop/internal/models"
	"toolshop/internal/store"
)

// BaseProductSlugs are the six products seeded by the initial migration.
// CopyBaseProducts replicates them into every category.
var BaseProductSlugs = []string{
	"drel-udarnaya-gsb-18v-50",
	"ushm-125-900",
	"perforator-gbh-2-26",
	"lazernyj-uroven-360",
	"shurupovert-18v",
	"invertor-svarochnyj-200",
}

// Soft precondition failures of CopyBaseProducts. The job prints a warning
// and does nothing; callers should not treat these as fatal.
var (
	ErrBaseProductsMissing = errors.New("base products missing")
	ErrNoCategories        = errors.New("no categories")
)

// CategoryRepo is the category persistence the jobs need.
type CategoryRepo interface {
	List(ctx context.Context, f store.CategoryFilter) ([]models.Category, error)
	UpsertBySlug(ctx context.Context, c *models.Category) (*models.Category, bool, error)
}

// ProductRepo is the product persistence the jobs need.
type ProductRepo interface {
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Product, error)
	SlugsOutsideCategories(ctx context.Context, categorySlugs []string) ([]string, error)
	UpsertBySlug(ctx context.Context, p *models.Product) (*models.Product, bool, error)
	CreateIfAbsent(ctx context.Context, p *models.Product) (*models.Product, bool, error)
}

// Importer runs the catalog jobs and reports progress to out.
type Importer struct {
	categories CategoryRepo
	products   ProductRepo
	out        io.Writer
}

// NewImporter creates an Importer. A nil out discards progress output.
func NewImporter(categories CategoryRepo, products ProductRepo, out io.Writer) *Importer {
	if out == nil {
		out = io.Discard
	}
	return &Importer{categories: categories, products: products, out: out}
}

// IsSoft reports whether err is a precondition warning rather than a failure.
func IsSoft(err error) bool {
	return errors.Is(err, ErrBaseProductsMissing) || errors.Is(err, ErrNoCategories)
}
