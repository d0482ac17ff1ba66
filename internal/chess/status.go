package chess

import (
	"github.com/park285/chess-rules/internal/obslog"
	"go.uber.org/zap"
)

// outcome is the status of a position for the side about to move.
type outcome struct {
	status     Status
	inCheck    bool
	winner     Color
	winReason  WinReason
	drawReason DrawReason
}

// evaluate judges b for the opponent of mover. It reads b only.
func evaluate(b *Board, mover Color) (outcome, error) {
	next := mover.Opposite()

	if b.countPieces(White) == 1 && b.countPieces(Black) == 1 {
		return outcome{status: StatusDraw, drawReason: DrawInsufficientMaterial}, nil
	}

	king, err := findKing(b, next)
	if err != nil {
		return outcome{}, err
	}
	o := outcome{status: StatusInProgress, inCheck: isAttacked(b, king, mover)}

	canMove, err := hasLegalMove(b, next)
	if err != nil {
		return outcome{}, err
	}
	switch {
	case canMove:
	case o.inCheck:
		o.status, o.winner, o.winReason = StatusWin, mover, WinCheckmate
	default:
		o.status, o.drawReason = StatusDraw, DrawStalemate
	}
	return o, nil
}

// recomputeStatus evaluates the current board for the opponent of mover and
// records the result.
func (gs *GameState) recomputeStatus(mover Color) error {
	o, err := evaluate(gs.board, mover)
	if err != nil {
		return err
	}
	gs.commitOutcome(o)
	return nil
}

func (gs *GameState) commitOutcome(o outcome) {
	gs.inCheck = o.inCheck
	switch o.status {
	case StatusWin:
		gs.finishWin(o.winner, o.winReason)
	case StatusDraw:
		gs.finishDraw(o.drawReason)
	default:
		gs.status = StatusInProgress
	}
}

func hasLegalMove(b *Board, c Color) (bool, error) {
	var (
		found bool
		ferr  error
	)
	b.forEachPiece(func(p Position, pc *Piece) bool {
		if pc.Color != c {
			return true
		}
		dests, err := legalCandidates(b, p)
		if err != nil {
			ferr = err
			return false
		}
		if len(dests) > 0 {
			found = true
			return false
		}
		return true
	})
	return found, ferr
}

func (gs *GameState) finishWin(winner Color, reason WinReason) {
	gs.status = StatusWin
	gs.winner = winner
	gs.winReason = reason
	gs.drawReason = DrawNone
	gs.turn = NoColor
	obslog.L().Info("chess_game_over",
		zap.String("status", string(gs.status)),
		zap.String("winner", winner.String()),
		zap.String("reason", string(reason)),
	)
}

func (gs *GameState) finishDraw(reason DrawReason) {
	gs.status = StatusDraw
	gs.winner = NoColor
	gs.winReason = WinNone
	gs.drawReason = reason
	gs.turn = NoColor
	obslog.L().Info("chess_game_over",
		zap.String("status", string(gs.status)),
		zap.String("reason", string(reason)),
	)
}
