package chess

import "strings"

const (
	kingHomeCol      = 4
	queensideRookCol = 0
	kingsideRookCol  = boardSize - 1
)

type castleSide struct {
	rookFrom int
	rookTo   int
	kingTo   int
}

var castleSides = []castleSide{
	{rookFrom: queensideRookCol, rookTo: 3, kingTo: 2},
	{rookFrom: kingsideRookCol, rookTo: 5, kingTo: 6},
}

func homeRow(c Color) int {
	if c == Black {
		return boardSize - 1
	}
	return 0
}

// castlingCandidates returns the king destinations of every castle available
// to the king on from. The rook is moved when the castle is applied.
func castlingCandidates(b *Board, from Position) []Position {
	king := b.pieceAt(from)
	if king == nil || king.Type != King || king.Moved {
		return nil
	}
	if from.Row != homeRow(king.Color) || from.Col != kingHomeCol {
		return nil
	}
	enemy := king.Color.Opposite()
	if isAttacked(b, from, enemy) {
		return nil
	}

	var out []Position
	for _, side := range castleSides {
		if castleAllowed(b, from, king.Color, side) {
			out = append(out, Position{Row: from.Row, Col: side.kingTo})
		}
	}
	return out
}

func castleAllowed(b *Board, from Position, c Color, side castleSide) bool {
	rook := b.pieceAt(Position{Row: from.Row, Col: side.rookFrom})
	if rook == nil || rook.Type != Rook || rook.Color != c || rook.Moved {
		return false
	}

	lo, hi := side.rookFrom, from.Col
	if lo > hi {
		lo, hi = hi, lo
	}
	for col := lo + 1; col < hi; col++ {
		if b.pieceAt(Position{Row: from.Row, Col: col}) != nil {
			return false
		}
	}

	step := 1
	if side.kingTo < from.Col {
		step = -1
	}
	for col := from.Col; ; col += step {
		if isAttacked(b, Position{Row: from.Row, Col: col}, c.Opposite()) {
			return false
		}
		if col == side.kingTo {
			break
		}
	}
	return true
}

// castlingRights lists the castles still possible in principle, "KQkq" style,
// or "-". Attacks and blockers are not considered.
func castlingRights(b *Board) string {
	var sb strings.Builder
	for _, c := range []Color{White, Black} {
		king := b.pieceAt(Position{Row: homeRow(c), Col: kingHomeCol})
		if king == nil || king.Type != King || king.Color != c || king.Moved {
			continue
		}
		for _, col := range []int{kingsideRookCol, queensideRookCol} {
			rook := b.pieceAt(Position{Row: homeRow(c), Col: col})
			if rook == nil || rook.Type != Rook || rook.Color != c || rook.Moved {
				continue
			}
			mark := "Q"
			if col == kingsideRookCol {
				mark = "K"
			}
			if c == Black {
				mark = strings.ToLower(mark)
			}
			sb.WriteString(mark)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// castleFor maps a two-column king move to its castle side.
func castleFor(from, to Position) (castleSide, bool) {
	if from.Row != to.Row || from.Col != kingHomeCol {
		return castleSide{}, false
	}
	for _, side := range castleSides {
		if side.kingTo == to.Col {
			return side, true
		}
	}
	return castleSide{}, false
}
