package entity

import "strings"

type Product struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Price    string `json:"price" yaml:"price"`
	Stocked  bool   `json:"stocked" yaml:"stocked"`
}

// ProductFilter is the search box text and the "in stock only" checkbox.
type ProductFilter struct {
	Text        string `json:"text"`
	InStockOnly bool   `json:"in_stock_only"`
}

// ProductRow is one table row: either a category header or a product.
type ProductRow struct {
	Category   string   `json:"category,omitempty"`
	Product    *Product `json:"product,omitempty"`
	OutOfStock bool     `json:"out_of_stock,omitempty"`
}

func (that ProductRow) IsHeader() bool {
	return that.Product == nil
}

// Apply - returns the visible products in source order.
func (that ProductFilter) Apply(products []Product) []Product {
	query := strings.ToLower(that.Text)
	visible := make([]Product, 0, len(products))

	for _, product := range products {
		if query != "" && !strings.Contains(strings.ToLower(product.Name), query) {
			continue
		}

		if that.InStockOnly && !product.Stocked {
			continue
		}

		visible = append(visible, product)
	}

	return visible
}

// BuildProductTable - emits a header whenever the category changes from the previous row.
// Same-category products are expected to be contiguous; nothing is sorted here.
func BuildProductTable(products []Product) []ProductRow {
	rows := make([]ProductRow, 0, len(products)*2)
	lastCategory := ""

	for i := range products {
		product := products[i]

		if i == 0 || product.Category != lastCategory {
			rows = append(rows, ProductRow{Category: product.Category})
		}

		rows = append(rows, ProductRow{
			Category:   product.Category,
			Product:    &product,
			OutOfStock: !product.Stocked,
		})

		lastCategory = product.Category
	}

	return rows
}
