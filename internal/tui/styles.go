package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles shared by both programs.
type Styles struct {
	Title      lipgloss.Style
	Status     lipgloss.Style
	Cell       lipgloss.Style
	Cursor     lipgloss.Style
	WinnerCell lipgloss.Style
	Move       lipgloss.Style
	MoveActive lipgloss.Style
	Category   lipgloss.Style
	OutOfStock lipgloss.Style
	Help       lipgloss.Style
}

func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(3).Align(lipgloss.Center)

	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Status:     lipgloss.NewStyle().Bold(true),
		Cell:       cell,
		Cursor:     cell.Reverse(true),
		WinnerCell: cell.Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")),
		Move:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MoveActive: lipgloss.NewStyle().Bold(true),
		Category:   lipgloss.NewStyle().Bold(true).Underline(true),
		OutOfStock: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}
