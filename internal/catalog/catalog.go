// Package catalog provides the static, read-only product list shown by the filterable table.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
)

//go:embed products.yaml
var defaultCatalog []byte

var ErrEmptyCatalog = errors.New("catalog has no products")

type document struct {
	Products []entity.Product `yaml:"products"`
}

type Catalog struct {
	products []entity.Product
}

// Default - returns the catalog embedded in the binary.
func Default() *Catalog {
	catalog, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Errorf("embedded catalog is broken: %w", err))
	}

	return catalog
}

// Load - reads a catalog file, falling back to the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if len(doc.Products) == 0 {
		return nil, ErrEmptyCatalog
	}

	return &Catalog{products: doc.Products}, nil
}

// Products - returns a copy, so callers cannot change the catalog.
func (that *Catalog) Products() []entity.Product {
	products := make([]entity.Product, len(that.products))
	copy(products, that.products)

	return products
}
