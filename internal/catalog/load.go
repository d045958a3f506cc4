package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"toolshop/internal/models"
	"toolshop/internal/price"
	"toolshop/internal/slug"
)

// LoadReport counts what LoadCatalog did.
type LoadReport struct {
	CategoriesCreated int
	CategoriesUpdated int
	ProductsCreated   int
	ProductsUpdated   int
}

// Categories is the number of categories processed.
func (r LoadReport) Categories() int {
	return r.CategoriesCreated + r.CategoriesUpdated
}

// LoadCatalog upserts every category of the dataset as a root category and
// every product under it, keyed by slug. Category and product positions in
// the dataset become their sort order. Product slugs are derived from names
// and kept unique against products outside the dataset's categories, so a
// second run with the same data regenerates the same slugs and updates rows
// in place.
func (imp *Importer) LoadCatalog(ctx context.Context, data []CategoryData) (LoadReport, error) {
	var report LoadReport

	categorySlugs := make([]string, 0, len(data))
	for _, cd := range data {
		categorySlugs = append(categorySlugs, cd.Slug)
	}
	taken, err := imp.products.SlugsOutsideCategories(ctx, categorySlugs)
	if err != nil {
		return report, fmt.Errorf("load taken slugs: %w", err)
	}
	used := slug.NewUsed(taken...)

	for order, cd := range data {
		category, created, err := imp.categories.UpsertBySlug(ctx, &models.Category{
			Name:      cd.Name,
			Slug:      cd.Slug,
			SortOrder: order,
		})
		if err != nil {
			return report, fmt.Errorf("upsert category %q: %w", cd.Slug, err)
		}
		if created {
			report.CategoriesCreated++
			fmt.Fprintf(imp.out, "  Created category: %s\n", category.Name)
		} else {
			report.CategoriesUpdated++
			fmt.Fprintf(imp.out, "  Updated category: %s\n", category.Name)
		}

		for pos, pd := range cd.Products {
			var productSlug string
			productSlug, used = slug.Unique(pd.Name, models.MaxProductSlugLen, used)

			categoryID := category.ID
			_, created, err := imp.products.UpsertBySlug(ctx, &models.Product{
				Name:       pd.Name,
				Slug:       productSlug,
				CategoryID: &categoryID,
				Price:      price.Parse(pd.Price).Round(2),
				Image:      pd.Image,
				InStock:    true,
				SortOrder:  pos,
			})
			if err != nil {
				return report, fmt.Errorf("upsert product %q: %w", productSlug, err)
			}
			if created {
				report.ProductsCreated++
			} else {
				report.ProductsUpdated++
			}
		}
	}

	fmt.Fprintf(imp.out, "Catalog loaded: %d categories (%d created, %d updated)\n",
		report.Categories(), report.CategoriesCreated, report.CategoriesUpdated)
	slog.Info("catalog loaded",
		"categories_created", report.CategoriesCreated,
		"categories_updated", report.CategoriesUpdated,
		"products_created", report.ProductsCreated,
		"products_updated", report.ProductsUpdated,
	)
	return report, nil
}
