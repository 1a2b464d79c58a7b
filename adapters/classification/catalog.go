// Package classification provides the classification code catalog.
// The catalog supplies the valid classification codes per product and is
// consumed for validation and display outside the quoting core.
package classification

import (
	"os"

	"gopkg.in/yaml.v3"

	"quote-engine/core/types"
	"quote-engine/internal/errors"
)

// Classification is one catalog entry
type Classification struct {
	// Code is the classification code
	Code string `yaml:"code" json:"code"`

	// Description is the display description
	Description string `yaml:"description" json:"description"`
}

// Catalog holds the classification codes per product
type Catalog struct {
	products map[types.ProductType][]Classification
}

type catalogFile struct {
	Products map[string][]Classification `yaml:"products"`
}

// Load reads a YAML catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to read classification catalog %s", path)
	}
	return Parse(data)
}

// Parse builds a catalog from raw YAML
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to parse classification catalog", err)
	}

	products := make(map[types.ProductType][]Classification, len(file.Products))
	for product, entries := range file.Products {
		products[types.ProductType(product)] = entries
	}
	return &Catalog{products: products}, nil
}

// Codes returns the classifications for a product, in catalog order
func (c *Catalog) Codes(product types.ProductType) []Classification {
	return c.products[product]
}

// Valid reports whether a code is listed for a product. The wildcard
// DEFAULT code is always valid; rate fallback depends on it.
func (c *Catalog) Valid(product types.ProductType, code string) bool {
	if code == types.DefaultKey {
		return true
	}
	for _, entry := range c.products[product] {
		if entry.Code == code {
			return true
		}
	}
	return false
}
