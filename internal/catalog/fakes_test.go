package catalog

import (
	"context"
	"slices"
	"sort"

	"github.com/google/uuid"

	"toolshop/internal/models"
	"toolshop/internal/store"
)

// memCategories is an in-memory CategoryRepo keyed by slug.
type memCategories struct {
	bySlug map[string]*models.Category
}

func newMemCategories(names ...string) *memCategories {
	m := &memCategories{bySlug: make(map[string]*models.Category)}
	for i, n := range names {
		m.bySlug[n] = &models.Category{ID: uuid.New(), Name: n, Slug: n, SortOrder: i}
	}
	return m
}

func (m *memCategories) List(_ context.Context, _ store.CategoryFilter) ([]models.Category, error) {
	var out []models.Category
	for _, c := range m.bySlug {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memCategories) UpsertBySlug(_ context.Context, c *models.Category) (*models.Category, bool, error) {
	if err := c.Validate(); err != nil {
		return nil, false, err
	}
	if existing, ok := m.bySlug[c.Slug]; ok {
		existing.Name, existing.ParentID, existing.SortOrder = c.Name, c.ParentID, c.SortOrder
		cp := *existing
		return &cp, false, nil
	}
	created := *c
	created.ID = uuid.New()
	m.bySlug[c.Slug] = &created
	cp := created
	return &cp, true, nil
}

func (m *memCategories) slugOf(id uuid.UUID) string {
	for _, c := range m.bySlug {
		if c.ID == id {
			return c.Slug
		}
	}
	return ""
}

// memProducts is an in-memory ProductRepo keyed by slug.
type memProducts struct {
	categories *memCategories
	bySlug     map[string]*models.Product
}

func newMemProducts(categories *memCategories) *memProducts {
	return &memProducts{categories: categories, bySlug: make(map[string]*models.Product)}
}

func (m *memProducts) put(p models.Product) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.bySlug[p.Slug] = &p
}

func (m *memProducts) FindBySlugs(_ context.Context, slugs []string) ([]models.Product, error) {
	var out []models.Product
	for _, s := range slugs {
		if p, ok := m.bySlug[s]; ok {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memProducts) SlugsOutsideCategories(_ context.Context, categorySlugs []string) ([]string, error) {
	var out []string
	for s, p := range m.bySlug {
		if p.CategoryID == nil || !slices.Contains(categorySlugs, m.categories.slugOf(*p.CategoryID)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memProducts) UpsertBySlug(_ context.Context, p *models.Product) (*models.Product, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}
	if existing, ok := m.bySlug[p.Slug]; ok {
		existing.Name, existing.CategoryID, existing.Price = p.Name, p.CategoryID, p.Price
		existing.Image, existing.InStock, existing.SortOrder = p.Image, p.InStock, p.SortOrder
		cp := *existing
		return &cp, false, nil
	}
	m.put(*p)
	cp := *m.bySlug[p.Slug]
	return &cp, true, nil
}

func (m *memProducts) CreateIfAbsent(_ context.Context, p *models.Product) (*models.Product, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}
	if existing, ok := m.bySlug[p.Slug]; ok {
		cp := *existing
		return &cp, false, nil
	}
	m.put(*p)
	cp := *m.bySlug[p.Slug]
	return &cp, true, nil
}

func (m *memProducts) slugs() []string {
	var out []string
	for s := range m.bySlug {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
