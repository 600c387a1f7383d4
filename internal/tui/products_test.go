package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/catalog"
)

func sendProducts(t *testing.T, model ProductsModel, messages ...tea.KeyMsg) ProductsModel {
	t.Helper()

	for _, message := range messages {
		updated, _ := model.Update(message)

		next, ok := updated.(ProductsModel)
		require.True(t, ok)
		model = next
	}

	return model
}

func visibleNames(model ProductsModel) []string {
	var names []string
	for _, row := range model.Rows() {
		if !row.IsHeader() {
			names = append(names, row.Product.Name)
		}
	}
	return names
}

func TestProductsModel(t *testing.T) {
	t.Run("Shows every product grouped by category", func(t *testing.T) {
		model := NewProductsModel(testLogger(), catalog.Default().Products())

		view := model.View()

		assert.Len(t, visibleNames(model), 6)
		assert.Equal(t, 1, strings.Count(view, "Vegetables"))
		assert.Equal(t, 1, strings.Count(view, "Fruits"))
		assert.Contains(t, view, "[ ] Only show products in stock")
	})

	t.Run("Typing filters by name", func(t *testing.T) {
		model := NewProductsModel(testLogger(), catalog.Default().Products())

		model = sendProducts(t, model, runes("p"), runes("e"), runes("a"))

		assert.Equal(t, "pea", model.Filter().Text)
		assert.Equal(t, []string{"Peas"}, visibleNames(model))
	})

	t.Run("Tab toggles the stock filter", func(t *testing.T) {
		model := NewProductsModel(testLogger(), catalog.Default().Products())

		model = sendProducts(t, model, tea.KeyMsg{Type: tea.KeyTab})

		assert.True(t, model.Filter().InStockOnly)
		assert.Equal(t, []string{"Apple", "Dragonfruit", "Spinach", "Peas"}, visibleNames(model))
		assert.Contains(t, model.View(), "[x] Only show products in stock")

		model = sendProducts(t, model, tea.KeyMsg{Type: tea.KeyTab})
		assert.False(t, model.Filter().InStockOnly)
	})

	t.Run("Clear empties the search", func(t *testing.T) {
		model := NewProductsModel(testLogger(), catalog.Default().Products())

		model = sendProducts(t, model, runes("x"), tea.KeyMsg{Type: tea.KeyCtrlU})

		assert.Empty(t, model.Filter().Text)
		assert.Len(t, visibleNames(model), 6)
	})

	t.Run("Escape quits", func(t *testing.T) {
		model := NewProductsModel(testLogger(), catalog.Default().Products())

		_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}
