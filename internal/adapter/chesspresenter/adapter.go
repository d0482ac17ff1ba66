package chesspresenter

import (
	"errors"

	"github.com/park285/chess-rules/internal/chess"
	"github.com/park285/chess-rules/pkg/chessdto"
)

// ToStatusView summarises gs for callers that only deal in DTOs.
func ToStatusView(gs *chess.GameState) chessdto.StatusView {
	if gs == nil {
		return chessdto.StatusView{}
	}
	v := chessdto.StatusView{
		Status:     string(gs.Status()),
		InCheck:    gs.InCheck(),
		Moves:      len(gs.History()),
		Repetition: gs.RepetitionCount(),
	}
	if turn, ok := gs.Turn(); ok {
		v.Turn = turn.String()
	}
	if gs.Status() == chess.StatusWin {
		v.Winner = gs.Winner().String()
		v.WinReason = string(gs.WinReason())
	}
	if gs.Status() == chess.StatusDraw {
		v.DrawReason = string(gs.DrawReason())
	}
	return v
}

func ToDestinations(from chess.Position, to []chess.Position) chessdto.Destinations {
	out := chessdto.Destinations{From: from.String(), To: make([]string, 0, len(to))}
	for _, p := range to {
		out.To = append(out.To, p.String())
	}
	return out
}

var errorCodes = []struct {
	err  error
	code string
}{
	{chess.ErrInvalidCoordinate, "invalid_coordinate"},
	{chess.ErrMissingArgument, "missing_argument"},
	{chess.ErrEmptySource, "empty_source"},
	{chess.ErrWrongTurn, "wrong_turn"},
	{chess.ErrGameOver, "game_over"},
	{chess.ErrInvalidPromotion, "invalid_promotion"},
	{chess.ErrIllegalMove, "illegal_move"},
	{chess.ErrInvalidSnapshot, "invalid_snapshot"},
	{chess.ErrInvariantViolation, "invariant_violation"},
}

// ToDomainError maps engine errors to stable codes. Unknown errors map to
// "unknown"; nil stays nil.
func ToDomainError(err error) *chessdto.DomainError {
	if err == nil {
		return nil
	}
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return &chessdto.DomainError{Code: e.code, Message: err.Error()}
		}
	}
	return &chessdto.DomainError{Code: "unknown", Message: err.Error()}
}
