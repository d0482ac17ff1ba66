// Package crosscheck compares the engine's legal destinations with
// github.com/corentings/chess/v2 on positions both rule sets agree on:
// positions without pawns.
package crosscheck

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	nchess "github.com/corentings/chess/v2"
	"github.com/park285/chess-rules/internal/chess"
	"github.com/park285/chess-rules/internal/obslog"
	"go.uber.org/zap"
)

var ErrPawnsPresent = errors.New("crosscheck: pawns on board")

// Mismatch is one origin square whose destination sets differ.
type Mismatch struct {
	From      string
	Engine    []string
	Reference []string
}

// Compare checks every legal move of the side to move against the reference
// library. An empty result means both agree.
func Compare(gs *chess.GameState) ([]Mismatch, error) {
	if gs == nil {
		return nil, fmt.Errorf("crosscheck: %w", chess.ErrMissingArgument)
	}
	turn, ok := gs.Turn()
	if !ok {
		return nil, fmt.Errorf("crosscheck: %w", chess.ErrGameOver)
	}
	b := gs.Board()
	if hasPawns(b) {
		return nil, ErrPawnsPresent
	}

	fen := EncodeFEN(b, turn)
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("crosscheck: reference rejected %q: %w", fen, err)
	}
	ref := make(map[string][]string)
	for _, mv := range nchess.NewGame(opt).ValidMoves() {
		from := mv.S1().String()
		ref[from] = append(ref[from], mv.S2().String())
	}

	legal, err := gs.AllLegalMoves(turn)
	if err != nil {
		return nil, err
	}
	eng := make(map[string][]string, len(legal))
	for from, dests := range legal {
		for _, to := range dests {
			eng[from.String()] = append(eng[from.String()], to.String())
		}
	}

	var out []Mismatch
	for _, from := range unionKeys(eng, ref) {
		e := slices.Sorted(slices.Values(eng[from]))
		r := slices.Sorted(slices.Values(ref[from]))
		if !slices.Equal(e, r) {
			out = append(out, Mismatch{From: from, Engine: e, Reference: r})
			obslog.L().Warn("crosscheck_mismatch",
				zap.String("fen", fen),
				zap.String("from", from),
				zap.Strings("engine", e),
				zap.Strings("reference", r),
			)
		}
	}
	return out, nil
}

func hasPawns(b *chess.Board) bool {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			cell, _ := b.CellAt(r, c)
			if pc, ok := cell.Piece(); ok && pc.Type == chess.Pawn {
				return true
			}
		}
	}
	return false
}

// EncodeFEN writes the placement, side to move and castling rights of b.
// En passant is always "-" and the clocks are "0 1".
func EncodeFEN(b *chess.Board, turn chess.Color) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for c := 0; c < 8; c++ {
			cell, _ := b.CellAt(r, c)
			pc, ok := cell.Piece()
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if turn == chess.Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s %s - 0 1", side, castlingRights(b))
	return sb.String()
}

func castlingRights(b *chess.Board) string {
	var sb strings.Builder
	for _, side := range []struct {
		color chess.Color
		row   int
	}{{chess.White, 0}, {chess.Black, 7}} {
		if !unmoved(b, side.row, 4, side.color, chess.King) {
			continue
		}
		k, q := "K", "Q"
		if side.color == chess.Black {
			k, q = "k", "q"
		}
		if unmoved(b, side.row, 7, side.color, chess.Rook) {
			sb.WriteString(k)
		}
		if unmoved(b, side.row, 0, side.color, chess.Rook) {
			sb.WriteString(q)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func unmoved(b *chess.Board, row, col int, c chess.Color, t chess.PieceType) bool {
	cell, err := b.CellAt(row, col)
	if err != nil {
		return false
	}
	pc, ok := cell.Piece()
	return ok && pc.Color == c && pc.Type == t && !pc.Moved
}

func unionKeys(a, b map[string][]string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
