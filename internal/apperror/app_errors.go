package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrSessionNotFound = errors.New("session not found")
)

// IsRejectedMove - reports whether err is one of the move rejections the UI ignores silently.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrCellOccupied) || errors.Is(err, ErrGameFinished)
}
