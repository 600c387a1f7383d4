package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/apperror"
)

var ErrMoveOutOfRange = errors.New("move is out of history range")

// History is the sequence of snapshots produced by successive moves plus the displayed position.
type History struct {
	Snapshots   []Board `json:"snapshots"`
	CurrentMove int     `json:"current_move"`
	Ascending   bool    `json:"ascending"`
}

// GameStatus is everything the status line and the board highlight need.
type GameStatus struct {
	Winner   string `json:"winner,omitempty"`
	WinLine  []int  `json:"win_line,omitempty"`
	Draw     bool   `json:"draw"`
	NextMark string `json:"next_mark"`
	Text     string `json:"text"`
}

// MoveEntry is one line of the move list.
type MoveEntry struct {
	Move        int    `json:"move"`
	Description string `json:"description"`
	Jumpable    bool   `json:"jumpable"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
}

func NewHistory() *History {
	return &History{
		Snapshots: []Board{{}},
		Ascending: true,
	}
}

// CurrentBoard - returns the displayed snapshot.
func (that *History) CurrentBoard() Board {
	return that.Snapshots[that.CurrentMove]
}

func (that *History) XIsNext() bool {
	return that.CurrentMove%2 == 0
}

func (that *History) NextMark() string {
	if that.XIsNext() {
		return PlayerX
	}
	return PlayerO
}

// Play - places the next mark on cell, dropping any snapshots after the displayed one.
func (that *History) Play(cell int) error {
	if !ValidCell(cell) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	board := that.CurrentBoard()

	if board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	if board.Winner() != EmptyCell {
		return apperror.ErrGameFinished
	}

	next, err := board.With(cell, that.NextMark())
	if err != nil {
		return err
	}

	snapshots := make([]Board, that.CurrentMove+1, that.CurrentMove+2)
	copy(snapshots, that.Snapshots[:that.CurrentMove+1])

	that.Snapshots = append(snapshots, next)
	that.CurrentMove = len(that.Snapshots) - 1

	return nil
}

// JumpTo - displays the snapshot at move. History is kept until the next Play.
func (that *History) JumpTo(move int) error {
	if move < 0 || move >= len(that.Snapshots) {
		return fmt.Errorf("%w: move %d of %d", ErrMoveOutOfRange, move, len(that.Snapshots))
	}

	that.CurrentMove = move

	return nil
}

func (that *History) ToggleOrder() {
	that.Ascending = !that.Ascending
}

func (that *History) Status() GameStatus {
	board := that.CurrentBoard()
	status := GameStatus{NextMark: that.NextMark()}

	if line, ok := board.WinLine(); ok {
		status.Winner = board[line[0]]
		status.WinLine = line[:]
		status.Text = "Winner: " + status.Winner

		return status
	}

	if board.IsFull() {
		status.Draw = true
		status.Text = "Draw"

		return status
	}

	status.Text = "Next Player: " + status.NextMark

	return status
}

// Moves - builds the move list in the configured order. The last snapshot is the in-progress entry.
func (that *History) Moves() []MoveEntry {
	last := len(that.Snapshots) - 1
	entries := make([]MoveEntry, 0, len(that.Snapshots))

	for move := range that.Snapshots {
		entry := MoveEntry{Move: move, Row: -1, Column: -1}

		if move > 0 {
			if cell := DiffIndex(that.Snapshots[move-1], that.Snapshots[move]); cell >= 0 {
				entry.Row, entry.Column = CellPosition(cell)
			}
		}

		switch {
		case move == last:
			entry.Description = fmt.Sprintf("%s, you are at move %d", that.NextMark(), move+1)
		case move == 0:
			entry.Description = "Go to game start"
			entry.Jumpable = true
		default:
			entry.Description = fmt.Sprintf("Go to move # %d (%d, %d)", move+1, entry.Row, entry.Column)
			entry.Jumpable = true
		}

		entries = append(entries, entry)
	}

	if !that.Ascending {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	return entries
}
