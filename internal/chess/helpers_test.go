package chess

import (
	"testing"

	"github.com/park285/chess-rules/pkg/chessdto"
)

func sq(t testing.TB, s string) Position {
	t.Helper()
	p, err := ParsePosition(s)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", s, err)
	}
	return p
}

func squares(t testing.TB, names ...string) []Position {
	t.Helper()
	out := make([]Position, 0, len(names))
	for _, n := range names {
		out = append(out, sq(t, n))
	}
	SortPositions(out)
	return out
}

func samePositions(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]Position(nil), a...)
	y := append([]Position(nil), b...)
	SortPositions(x)
	SortPositions(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func spec(square, color, typ string, moved bool) chessdto.PieceSpec {
	return chessdto.PieceSpec{Square: square, Color: color, Type: typ, Moved: moved}
}

func newSnapshotGame(t testing.TB, turn string, pieces ...chessdto.PieceSpec) *GameState {
	t.Helper()
	gs, err := FromSnapshot(chessdto.Snapshot{Turn: turn, Pieces: pieces})
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	return gs
}

func mustMove(t testing.TB, gs *GameState, from, to string) {
	t.Helper()
	if err := gs.ApplyMove(Move{From: sq(t, from), To: sq(t, to)}); err != nil {
		t.Fatalf("ApplyMove %s-%s: %v", from, to, err)
	}
}

func mustDestinations(t testing.TB, gs *GameState, from string) []Position {
	t.Helper()
	out, err := gs.LegalDestinations(sq(t, from))
	if err != nil {
		t.Fatalf("LegalDestinations(%s): %v", from, err)
	}
	return out
}
