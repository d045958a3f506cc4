package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
)

//go:embed data/catalog.json
var defaultDataset []byte

// CategoryData is one category of an import dataset.
type CategoryData struct {
	Name     string        `json:"name"`
	Slug     string        `json:"slug"`
	Products []ProductData `json:"products"`
}

// ProductData is one product of an import dataset. Price is free-form text
// as scraped from a supplier listing, e.g. "£89.99" or "15990 руб.".
type ProductData struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// LoadDataset decodes a JSON list of categories.
func LoadDataset(r io.Reader) ([]CategoryData, error) {
	var data []CategoryData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode catalog dataset: %w", err)
	}
	for i, cd := range data {
		if cd.Slug == "" {
			return nil, fmt.Errorf("decode catalog dataset: category %d (%q) has no slug", i, cd.Name)
		}
	}
	return data, nil
}

// DefaultDataset returns the dataset bundled with the binary.
func DefaultDataset() ([]CategoryData, error) {
	return LoadDataset(bytes.NewReader(defaultDataset))
}
