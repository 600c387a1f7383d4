package entity

import (
	"errors"
	"fmt"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardRows    = 3
	BoardColumns = 3
	BoardSize    = BoardRows * BoardColumns
)

var (
	ErrInvalidCell = errors.New("invalid cell index")

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board is one snapshot of the grid. It is a value type, so a stored snapshot is never changed in place.
type Board [BoardSize]string

// WinLine - returns the first winning triple in WinCombos order.
func (that Board) WinLine() ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

// Winner - returns the mark occupying the win line, or EmptyCell.
func (that Board) Winner() string {
	line, ok := that.WinLine()
	if !ok {
		return EmptyCell
	}

	return that[line[0]]
}

// IsFull - reports whether every cell holds a mark.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsDraw - the board is full and nobody has three in a row.
func (that Board) IsDraw() bool {
	return that.Winner() == EmptyCell && that.IsFull()
}

// IsWinningCell - reports whether cell is part of the win line.
func (that Board) IsWinningCell(cell int) bool {
	line, ok := that.WinLine()
	if !ok {
		return false
	}

	for _, index := range line {
		if index == cell {
			return true
		}
	}

	return false
}

// With - returns a copy of the board with cell set to mark.
func (that Board) With(cell int, mark string) (Board, error) {
	if !ValidCell(cell) {
		return that, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	next := that
	next[cell] = mark

	return next, nil
}

func ValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// CellPosition - converts a cell index into its zero-based row and column.
func CellPosition(cell int) (int, int) {
	return cell / BoardColumns, cell % BoardColumns
}

// DiffIndex - returns the first cell that differs between two snapshots, or -1.
func DiffIndex(prev, next Board) int {
	for i := range prev {
		if prev[i] != next[i] {
			return i
		}
	}

	return -1
}
