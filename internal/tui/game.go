package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
)

// GameModel is the terminal board. The cursor selects the cell that
// enter plays; digits 1-9 play a cell directly.
type GameModel struct {
	logger  *slog.Logger
	history *entity.History
	cursor  int
	keys    GameKeyMap
	styles  Styles
}

func NewGameModel(logger *slog.Logger) GameModel {
	return GameModel{
		logger:  logger.With("component", "tui_game"),
		history: entity.NewHistory(),
		cursor:  4,
		keys:    DefaultGameKeyMap,
		styles:  DefaultStyles(),
	}
}

func (model GameModel) History() *entity.History {
	return model.history
}

func (model GameModel) Cursor() int {
	return model.cursor
}

func (model GameModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model GameModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return model, nil
	}

	switch {
	case key.Matches(keyMessage, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(keyMessage, model.keys.Up):
		model.moveCursor(-1, 0)
	case key.Matches(keyMessage, model.keys.Down):
		model.moveCursor(1, 0)
	case key.Matches(keyMessage, model.keys.Left):
		model.moveCursor(0, -1)
	case key.Matches(keyMessage, model.keys.Right):
		model.moveCursor(0, 1)
	case key.Matches(keyMessage, model.keys.Play):
		model.play(model.cursor)
	case key.Matches(keyMessage, model.keys.Toggle):
		model.history.ToggleOrder()
	case key.Matches(keyMessage, model.keys.Back):
		model.jump(model.history.CurrentMove - 1)
	case key.Matches(keyMessage, model.keys.Forward):
		model.jump(model.history.CurrentMove + 1)
	case key.Matches(keyMessage, model.keys.Restart):
		ascending := model.history.Ascending
		model.history = entity.NewHistory()
		model.history.Ascending = ascending
	default:
		if cell, ok := digitCell(keyMessage); ok {
			model.cursor = cell
			model.play(cell)
		}
	}

	return model, nil
}

func digitCell(message tea.KeyMsg) (int, bool) {
	if message.Type != tea.KeyRunes || len(message.Runes) != 1 {
		return 0, false
	}

	r := message.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}

	return int(r - '1'), true
}

func (model *GameModel) moveCursor(rowDelta, columnDelta int) {
	row, column := entity.CellPosition(model.cursor)
	row = clamp(row+rowDelta, 0, entity.BoardRows-1)
	column = clamp(column+columnDelta, 0, entity.BoardColumns-1)
	model.cursor = row*entity.BoardColumns + column
}

func (model *GameModel) play(cell int) {
	if err := model.history.Play(cell); err != nil {
		if apperror.IsRejectedMove(err) {
			model.logger.Debug("move ignored", "cell", cell, "reason", err)
			return
		}

		model.logger.Error("failed to play", "cell", cell, "error", err)
	}
}

func (model *GameModel) jump(move int) {
	// out of range at either end of the history: stay where we are
	if err := model.history.JumpTo(move); err != nil {
		model.logger.Debug("jump ignored", "move", move, "reason", err)
	}
}

// View implements tea.Model.
func (model GameModel) View() string {
	var builder strings.Builder

	builder.WriteString(model.styles.Title.Render("Tic-tac-toe"))
	builder.WriteString("\n")
	builder.WriteString(model.styles.Status.Render(model.history.Status().Text))
	builder.WriteString("\n\n")
	builder.WriteString(model.renderBoard())
	builder.WriteString("\n\n")
	builder.WriteString(model.renderMoves())
	builder.WriteString(model.styles.Help.Render(helpLine(
		model.keys.Play, model.keys.Toggle, model.keys.Back, model.keys.Forward, model.keys.Restart, model.keys.Quit,
	)))
	builder.WriteString("\n")

	return builder.String()
}

func (model GameModel) renderBoard() string {
	board := model.history.CurrentBoard()
	rows := make([]string, 0, entity.BoardRows*2-1)

	for row := 0; row < entity.BoardRows; row++ {
		cells := make([]string, 0, entity.BoardColumns)
		for column := 0; column < entity.BoardColumns; column++ {
			index := row*entity.BoardColumns + column
			value := board[index]
			if value == entity.EmptyCell {
				value = "·"
			}

			style := model.styles.Cell
			switch {
			case index == model.cursor:
				style = model.styles.Cursor
			case board.IsWinningCell(index):
				style = model.styles.WinnerCell
			}

			cells = append(cells, style.Render(value))
		}

		rows = append(rows, strings.Join(cells, "│"))
		if row < entity.BoardRows-1 {
			rows = append(rows, "───┼───┼───")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (model GameModel) renderMoves() string {
	var builder strings.Builder

	for _, entry := range model.history.Moves() {
		marker := "  "
		style := model.styles.Move
		if entry.Move == model.history.CurrentMove {
			marker = "> "
			style = model.styles.MoveActive
		}
		if !entry.Jumpable {
			style = model.styles.MoveActive
		}

		builder.WriteString(style.Render(fmt.Sprintf("%s%d. %s", marker, entry.Move+1, entry.Description)))
		builder.WriteString("\n")
	}

	return builder.String()
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
