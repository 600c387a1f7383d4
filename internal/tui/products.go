package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
)

const nameColumnWidth = 16

// ProductsModel is the terminal product table: a search box, an
// "only in stock" checkbox, and the table grouped by category. The
// table is recomputed from the catalog on every render.
type ProductsModel struct {
	logger      *slog.Logger
	products    []entity.Product
	search      textinput.Model
	inStockOnly bool
	keys        ProductsKeyMap
	styles      Styles
}

func NewProductsModel(logger *slog.Logger, products []entity.Product) ProductsModel {
	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "> "
	search.Focus()

	return ProductsModel{
		logger:   logger.With("component", "tui_products"),
		products: products,
		search:   search,
		keys:     DefaultProductsKeyMap,
		styles:   DefaultStyles(),
	}
}

// Filter - the current state of the search box and the checkbox.
func (model ProductsModel) Filter() entity.ProductFilter {
	return entity.ProductFilter{
		Text:        model.search.Value(),
		InStockOnly: model.inStockOnly,
	}
}

// Rows - the visible table for the current filter.
func (model ProductsModel) Rows() []entity.ProductRow {
	return entity.BuildProductTable(model.Filter().Apply(model.products))
}

func (model ProductsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (model ProductsModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	if keyMessage, ok := message.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMessage, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(keyMessage, model.keys.ToggleStock):
			model.inStockOnly = !model.inStockOnly
			model.logger.Debug("stock filter changed", "in_stock_only", model.inStockOnly)
			return model, nil
		case key.Matches(keyMessage, model.keys.Clear):
			model.search.SetValue("")
			return model, nil
		}
	}

	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)

	return model, cmd
}

// View implements tea.Model.
func (model ProductsModel) View() string {
	var builder strings.Builder

	builder.WriteString(model.styles.Title.Render("Products"))
	builder.WriteString("\n")
	builder.WriteString(model.search.View())
	builder.WriteString("\n")

	checkbox := "[ ]"
	if model.inStockOnly {
		checkbox = "[x]"
	}
	builder.WriteString(checkbox + " Only show products in stock\n\n")

	builder.WriteString(model.styles.Status.Render(fmt.Sprintf("%-*s %s", nameColumnWidth, "Name", "Price")))
	builder.WriteString("\n")

	for _, row := range model.Rows() {
		if row.IsHeader() {
			builder.WriteString(model.styles.Category.Render(row.Category))
			builder.WriteString("\n")
			continue
		}

		name := fmt.Sprintf("%-*s", nameColumnWidth, row.Product.Name)
		if row.OutOfStock {
			name = model.styles.OutOfStock.Render(name)
		}

		builder.WriteString(name + " " + row.Product.Price + "\n")
	}

	builder.WriteString(model.styles.Help.Render(helpLine(model.keys.ToggleStock, model.keys.Clear, model.keys.Quit)))
	builder.WriteString("\n")

	return builder.String()
}
