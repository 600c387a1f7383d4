package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
)

// RunGame - runs the board until the user quits.
func RunGame(logger *slog.Logger) error {
	return run(NewGameModel(logger))
}

// RunProducts - runs the product table until the user quits.
func RunProducts(logger *slog.Logger, products []entity.Product) error {
	return run(NewProductsModel(logger, products))
}

func run(model tea.Model) error {
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run terminal program: %w", err)
	}

	return nil
}
