package chess

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinate  = errors.New("coordinate out of range")
	ErrMissingArgument    = errors.New("missing argument")
	ErrIllegalMove        = errors.New("illegal move")
	ErrEmptySource        = errors.New("no piece on source cell")
	ErrWrongTurn          = errors.New("not this color's turn")
	ErrGameOver           = errors.New("game is over")
	ErrInvariantViolation = errors.New("engine invariant violated")
	ErrInvalidPromotion   = errors.New("invalid promotion")
	ErrInvalidSnapshot    = errors.New("invalid snapshot")
)

func requireGame(gs *GameState) error {
	if gs == nil || gs.board == nil {
		return fmt.Errorf("game state: %w", ErrMissingArgument)
	}
	return nil
}
