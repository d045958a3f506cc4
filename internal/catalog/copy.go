package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"toolshop/internal/models"
	"toolshop/internal/slug"
	"toolshop/internal/store"
)

// CopyReport counts what CopyBaseProducts did.
type CopyReport struct {
	Created    int
	Categories int
}

// CopyBaseProducts gives every category its own copy of each base product.
// Copies are keyed by "<base slug>-<category slug>"; existing copies are
// left untouched, so the job can be re-run safely.
//
// When the base set is incomplete or there are no categories it prints a
// warning and returns ErrBaseProductsMissing or ErrNoCategories without
// writing anything.
func (imp *Importer) CopyBaseProducts(ctx context.Context) (CopyReport, error) {
	var report CopyReport

	base, err := imp.products.FindBySlugs(ctx, BaseProductSlugs)
	if err != nil {
		return report, fmt.Errorf("load base products: %w", err)
	}
	if len(base) != len(BaseProductSlugs) {
		fmt.Fprintf(imp.out, "Warning: found %d of %d base products. Run migrations first (toolshopctl migrate).\n",
			len(base), len(BaseProductSlugs))
		return report, fmt.Errorf("%w: found %d of %d", ErrBaseProductsMissing, len(base), len(BaseProductSlugs))
	}

	categories, err := imp.categories.List(ctx, store.CategoryFilter{})
	if err != nil {
		return report, fmt.Errorf("load categories: %w", err)
	}
	if len(categories) == 0 {
		fmt.Fprintln(imp.out, "Warning: there are no categories. Create categories in the admin first.")
		return report, ErrNoCategories
	}
	report.Categories = len(categories)

	for _, category := range categories {
		for _, p := range base {
			categoryID := category.ID
			copied := &models.Product{
				Name:        p.Name,
				Slug:        slug.Scoped(p.Slug, category.Slug, models.MaxProductSlugLen),
				CategoryID:  &categoryID,
				Brand:       p.Brand,
				Description: p.Description,
				Price:       p.Price,
				OldPrice:    p.OldPrice,
				Image:       p.Image,
				InStock:     p.InStock,
				SortOrder:   p.SortOrder,
			}
			_, created, err := imp.products.CreateIfAbsent(ctx, copied)
			if err != nil {
				return report, fmt.Errorf("copy %q into %q: %w", p.Slug, category.Slug, err)
			}
			if created {
				report.Created++
			}
		}
	}

	fmt.Fprintf(imp.out, "Done: copied %d products (%d categories × %d; duplicates skipped)\n",
		report.Created, report.Categories, len(base))
	slog.Info("base products copied", "created", report.Created, "categories", report.Categories)
	return report, nil
}
