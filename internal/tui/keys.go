package tui

import "github.com/charmbracelet/bubbles/key"

// GameKeyMap defines the key bindings of the board.
type GameKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Play    key.Binding // Place the next mark under the cursor.
	Toggle  key.Binding // Ascending / descending move list.
	Back    key.Binding // Jump one move back in history.
	Forward key.Binding // Jump one move forward in history.
	Restart key.Binding

	Quit key.Binding
}

var DefaultGameKeyMap = GameKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Play: key.NewBinding(
		key.WithKeys("enter", " ", "space"),
		key.WithHelp("enter", "play"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle moves"),
	),
	Back: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous move"),
	),
	Forward: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next move"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ProductsKeyMap defines the key bindings of the product table. Every
// other key goes to the search input.
type ProductsKeyMap struct {
	ToggleStock key.Binding
	Clear       key.Binding
	Quit        key.Binding
}

var DefaultProductsKeyMap = ProductsKeyMap{
	ToggleStock: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "only in stock"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

func helpLine(bindings ...key.Binding) string {
	line := ""
	for i, binding := range bindings {
		if i > 0 {
			line += "  "
		}
		help := binding.Help()
		line += help.Key + " " + help.Desc
	}
	return line
}
