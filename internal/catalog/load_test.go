package catalog

import (
	"bytes"
	"context"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/models"
	"toolshop/internal/store"
)

func defaultData(c *qt.C) []CategoryData {
	data, err := DefaultDataset()
	c.Assert(err, qt.IsNil)
	return data
}

func TestDefaultDataset(t *testing.T) {
	c := qt.New(t)
	data := defaultData(c)
	c.Assert(data, qt.HasLen, 6)
	c.Assert(data[0].Slug, qt.Equals, "dreli")
	c.Assert(data[0].Products, qt.HasLen, 3)
}

func TestLoadDataset_Errors(t *testing.T) {
	c := qt.New(t)

	_, err := LoadDataset(strings.NewReader(`{"name": "not a list"}`))
	c.Assert(err, qt.ErrorMatches, `decode catalog dataset: .*`)

	_, err = LoadDataset(strings.NewReader(`[{"name": "Без слага", "products": []}]`))
	c.Assert(err, qt.ErrorMatches, `.*category 0 \("Без слага"\) has no slug`)
}

func TestLoadCatalog(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	cats := newMemCategories()
	products := newMemProducts(cats)
	var out bytes.Buffer
	imp := NewImporter(cats, products, &out)

	report, err := imp.LoadCatalog(ctx, defaultData(c))
	c.Assert(err, qt.IsNil)
	c.Assert(report, qt.DeepEquals, LoadReport{CategoriesCreated: 6, ProductsCreated: 15})
	c.Assert(products.bySlug, qt.HasLen, 15)

	c.Assert(out.String(), qt.Contains, "  Created category: Дрели\n")
	c.Assert(out.String(), qt.Contains, "Catalog loaded: 6 categories (6 created, 0 updated)\n")

	list, err := cats.List(ctx, store.CategoryFilter{})
	c.Assert(err, qt.IsNil)
	for i, cat := range list {
		c.Assert(cat.SortOrder, qt.Equals, i)
		c.Assert(cat.ParentID, qt.IsNil)
	}

	drill := products.bySlug["drel-shurupovert-makita-df333dwye"]
	c.Assert(drill, qt.Not(qt.IsNil))
	c.Assert(drill.SortOrder, qt.Equals, 1)
	c.Assert(drill.InStock, qt.IsTrue)
	c.Assert(*drill.CategoryID, qt.Equals, cats.bySlug["dreli"].ID)
}

func TestLoadCatalog_DuplicateNamesGetSuffix(t *testing.T) {
	c := qt.New(t)
	cats := newMemCategories()
	products := newMemProducts(cats)

	_, err := NewImporter(cats, products, nil).LoadCatalog(context.Background(), defaultData(c))
	c.Assert(err, qt.IsNil)

	first := products.bySlug["ruletka-stanley-5-m"]
	second := products.bySlug["ruletka-stanley-5-m-1"]
	c.Assert(first, qt.Not(qt.IsNil))
	c.Assert(second, qt.Not(qt.IsNil))
	c.Assert(*first.CategoryID, qt.Equals, cats.bySlug["izmeritelnyj-instrument"].ID)
	c.Assert(*second.CategoryID, qt.Equals, cats.bySlug["rashodnye-materialy"].ID)
}

func TestLoadCatalog_Prices(t *testing.T) {
	c := qt.New(t)
	cats := newMemCategories()
	products := newMemProducts(cats)

	_, err := NewImporter(cats, products, nil).LoadCatalog(context.Background(), defaultData(c))
	c.Assert(err, qt.IsNil)

	tests := map[string]string{
		"drel-udarnaya-bosch-gsb-13-re": "54.99",
		"ushm-makita-ga5030":            "4790",
		"perforator-bosch-gbh-2-26-dre": "139.00",
		"ruletka-stanley-5-m":           "0",
		"maska-svarshchika-hameleon":    "0",
		"krug-otreznoj-125-mm":          "1.20",
	}
	for slug, want := range tests {
		p := products.bySlug[slug]
		c.Assert(p, qt.Not(qt.IsNil), qt.Commentf("slug %s", slug))
		c.Assert(p.Price.Equal(decimal.RequireFromString(want)), qt.IsTrue,
			qt.Commentf("%s price = %s, want %s", slug, p.Price, want))
	}
}

func TestLoadCatalog_RunTwiceIsStable(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	cats := newMemCategories()
	products := newMemProducts(cats)
	imp := NewImporter(cats, products, nil)

	_, err := imp.LoadCatalog(ctx, defaultData(c))
	c.Assert(err, qt.IsNil)
	firstSlugs := products.slugs()

	report, err := imp.LoadCatalog(ctx, defaultData(c))
	c.Assert(err, qt.IsNil)
	c.Assert(report, qt.DeepEquals, LoadReport{CategoriesUpdated: 6, ProductsUpdated: 15})
	c.Assert(products.slugs(), qt.DeepEquals, firstSlugs)
	c.Assert(cats.bySlug, qt.HasLen, 6)
}

func TestLoadCatalog_KeepsForeignSlugs(t *testing.T) {
	c := qt.New(t)
	cats := newMemCategories("other")
	products := newMemProducts(cats)

	otherID := cats.bySlug["other"].ID
	products.put(models.Product{Name: "Чужая рулетка", Slug: "ruletka-stanley-5-m", CategoryID: &otherID, InStock: true})
	products.put(models.Product{Name: "Без категории", Slug: "ushm-makita-ga5030", InStock: false})

	_, err := NewImporter(cats, products, nil).LoadCatalog(context.Background(), defaultData(c))
	c.Assert(err, qt.IsNil)

	c.Assert(products.bySlug["ruletka-stanley-5-m"].Name, qt.Equals, "Чужая рулетка")
	c.Assert(products.bySlug["ushm-makita-ga5030"].Name, qt.Equals, "Без категории")
	c.Assert(products.bySlug["ushm-makita-ga5030-1"], qt.Not(qt.IsNil))
	c.Assert(products.bySlug["ruletka-stanley-5-m-1"], qt.Not(qt.IsNil))
	c.Assert(products.bySlug["ruletka-stanley-5-m-2"], qt.Not(qt.IsNil))
	c.Assert(products.bySlug, qt.HasLen, 17)
}

func TestLoadCatalog_ClearsParent(t *testing.T) {
	c := qt.New(t)
	cats := newMemCategories("root")
	products := newMemProducts(cats)

	parent := cats.bySlug["root"].ID
	cats.bySlug["dreli"] = &models.Category{ID: uuid.New(), Name: "Старые дрели", Slug: "dreli", ParentID: &parent, SortOrder: 9}

	report, err := NewImporter(cats, products, nil).LoadCatalog(context.Background(), defaultData(c))
	c.Assert(err, qt.IsNil)
	c.Assert(report.CategoriesUpdated, qt.Equals, 1)
	c.Assert(cats.bySlug["dreli"].ParentID, qt.IsNil)
	c.Assert(cats.bySlug["dreli"].Name, qt.Equals, "Дрели")
	c.Assert(cats.bySlug["dreli"].SortOrder, qt.Equals, 0)
}

func TestLoadCatalog_RoundsPricesToCents(t *testing.T) {
	c := qt.New(t)
	cats := newMemCategories()
	products := newMemProducts(cats)

	data := []CategoryData{{Name: "Расходники", Slug: "rashodniki", Products: []ProductData{
		{Name: "Саморез", Price: "1,2345 руб"},
		{Name: "Шайба", Price: "0.125"},
		{Name: "Дюбель", Price: "500"},
	}}}
	report, err := NewImporter(cats, products, nil).LoadCatalog(context.Background(), data)
	c.Assert(err, qt.IsNil)
	c.Assert(report.ProductsCreated, qt.Equals, 3)

	c.Assert(products.bySlug["samorez"].Price.String(), qt.Equals, "1.23")
	c.Assert(products.bySlug["shajba"].Price.String(), qt.Equals, "0.13")
	c.Assert(products.bySlug["dyubel"].Price.String(), qt.Equals, "500")
}

func TestLoadCatalog_LongNamesFitSlugLimit(t *testing.T) {
	c := qt.New(t)
	cats := newMemCategories()
	products := newMemProducts(cats)

	long := strings.Repeat("щ", models.MaxProductSlugLen)
	data := []CategoryData{{Name: "Разное", Slug: "raznoe", Products: []ProductData{
		{Name: long, Price: "10"},
		{Name: long, Price: "20"},
	}}}
	report, err := NewImporter(cats, products, nil).LoadCatalog(context.Background(), data)
	c.Assert(err, qt.IsNil)
	c.Assert(report.ProductsCreated, qt.Equals, 2)

	for s, p := range products.bySlug {
		c.Assert(len([]rune(s)) <= models.MaxProductSlugLen, qt.IsTrue, qt.Commentf("slug %q", s))
		c.Assert(p.Name, qt.Equals, long)
	}
}
