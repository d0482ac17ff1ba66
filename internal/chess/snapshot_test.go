package chess

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/park285/chess-rules/pkg/chessdto"
)

func TestLoadSnapshotYAML(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "back_rank_mate.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	gs, err := LoadSnapshotYAML(raw)
	if err != nil {
		t.Fatalf("LoadSnapshotYAML: %v", err)
	}
	queen := gs.board.pieceAt(sq(t, "h2"))
	if queen == nil || queen.Type != Queen || queen.MoveCount != 2 || !queen.Moved {
		t.Fatalf("queen not loaded: %+v", queen)
	}
	if queen.ID != uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-901a2b3c4d5e") {
		t.Fatalf("queen id not preserved: %s", queen.ID)
	}

	mustMove(t, gs, "h2", "e2")
	if gs.Status() != StatusWin || gs.WinReason() != WinCheckmate || gs.Winner() != Black {
		t.Fatalf("status=%s reason=%s winner=%s", gs.Status(), gs.WinReason(), gs.Winner())
	}
	if gs.History()[0].Piece != queen.ID {
		t.Fatalf("history lost the queen's identity")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	gs := NewGame()
	mustMove(t, gs, "e2", "e4")
	mustMove(t, gs, "g8", "f6")

	restored, err := FromSnapshot(gs.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if restored.Board().String() != gs.Board().String() {
		t.Fatalf("placement differs:\n%s\nvs\n%s", restored.Board(), gs.Board())
	}
	turn, ok := restored.Turn()
	if !ok || turn != White {
		t.Fatalf("turn = %s %v", turn, ok)
	}
	e4 := sq(t, "e4")
	if restored.board.pieceAt(e4).ID != gs.board.pieceAt(e4).ID || restored.board.pieceAt(e4).MoveCount != 1 {
		t.Fatalf("piece identity or counter lost")
	}
	if len(restored.History()) != 2 || restored.History()[1] != gs.History()[1] {
		t.Fatalf("history differs: %+v vs %+v", restored.History(), gs.History())
	}
}

func TestSnapshotKeepsRepetitionCount(t *testing.T) {
	gs := NewGame()
	mustMove(t, gs, "g1", "f3")
	mustMove(t, gs, "g8", "f6")
	mustMove(t, gs, "f3", "g1")
	mustMove(t, gs, "f6", "g8")

	restored, err := FromSnapshot(gs.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if restored.RepetitionCount() != 2 {
		t.Fatalf("repetition count = %d after restore, want 2", restored.RepetitionCount())
	}
	mustMove(t, restored, "g1", "f3")
	mustMove(t, restored, "g8", "f6")
	mustMove(t, restored, "f3", "g1")
	mustMove(t, restored, "f6", "g8")
	if restored.RepetitionCount() != 3 {
		t.Fatalf("repetition count = %d, want 3", restored.RepetitionCount())
	}
}

func TestSnapshotOfFinishedGame(t *testing.T) {
	gs := NewGame()
	if err := gs.Resign(White); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	restored, err := FromSnapshot(gs.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if restored.Status() != StatusWin || restored.Winner() != Black || restored.WinReason() != WinResignation {
		t.Fatalf("status=%s winner=%s reason=%s", restored.Status(), restored.Winner(), restored.WinReason())
	}
	if _, ok := restored.Turn(); ok {
		t.Fatalf("finished game must have no turn")
	}
}

func TestInvalidSnapshots(t *testing.T) {
	kings := []chessdto.PieceSpec{spec("e1", "white", "king", false), spec("e8", "black", "king", false)}
	tests := []struct {
		name string
		snap chessdto.Snapshot
	}{
		{name: "bad turn", snap: chessdto.Snapshot{Turn: "green", Pieces: kings}},
		{name: "missing black king", snap: chessdto.Snapshot{Turn: "white", Pieces: kings[:1]}},
		{name: "two white kings", snap: chessdto.Snapshot{Turn: "white", Pieces: append(append([]chessdto.PieceSpec{}, kings...), spec("a1", "white", "king", false))}},
		{name: "duplicate square", snap: chessdto.Snapshot{Turn: "white", Pieces: append(append([]chessdto.PieceSpec{}, kings...), spec("e1", "white", "rook", false))}},
		{name: "off board", snap: chessdto.Snapshot{Turn: "white", Pieces: append(append([]chessdto.PieceSpec{}, kings...), spec("i9", "white", "rook", false))}},
		{name: "unknown type", snap: chessdto.Snapshot{Turn: "white", Pieces: append(append([]chessdto.PieceSpec{}, kings...), spec("a1", "white", "dragon", false))}},
		{name: "bad status", snap: chessdto.Snapshot{Turn: "white", Status: "PAUSED", Pieces: kings}},
		{name: "bad win reason", snap: chessdto.Snapshot{Turn: "white", Status: "WIN", Winner: "white", WinReason: "timeout", Pieces: kings}},
		{name: "side not to move in check", snap: chessdto.Snapshot{Turn: "white", Pieces: []chessdto.PieceSpec{
			spec("e1", "white", "king", true),
			spec("a8", "white", "rook", true),
			spec("e8", "black", "king", true),
			spec("h7", "black", "pawn", false),
		}}},
		{name: "zero position count", snap: chessdto.Snapshot{Turn: "white", Pieces: kings, Positions: map[string]int{"x": 0}}},
		{name: "bad history", snap: chessdto.Snapshot{Turn: "white", Pieces: kings, History: []chessdto.MoveRecord{{Piece: "nope", From: "e2", To: "e4"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromSnapshot(tt.snap); !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
			}
		})
	}

	if _, err := LoadSnapshotYAML([]byte("turn: [")); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot for bad yaml, got %v", err)
	}
}
