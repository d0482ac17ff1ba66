package chess

import (
	"errors"
	"strings"
	"testing"

	"github.com/park285/chess-rules/internal/obslog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewGameState(t *testing.T) {
	gs := NewGame()
	turn, ok := gs.Turn()
	if !ok || turn != White {
		t.Fatalf("turn = %s %v", turn, ok)
	}
	if gs.Status() != StatusInProgress || gs.InCheck() || gs.RepetitionCount() != 1 {
		t.Fatalf("unexpected initial state: %s check=%v rep=%d", gs.Status(), gs.InCheck(), gs.RepetitionCount())
	}
	moves, err := gs.AllLegalMoves(White)
	if err != nil {
		t.Fatalf("AllLegalMoves: %v", err)
	}
	total := 0
	for _, d := range moves {
		total += len(d)
	}
	if total != 20 {
		t.Fatalf("expected 20 opening moves, got %d", total)
	}
}

func TestCheckmateEndsGame(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	defer obslog.Replace(zap.New(core))()

	gs := newSnapshotGame(t, "black",
		spec("e1", "white", "king", true),
		spec("e3", "black", "king", true),
		spec("h2", "black", "queen", true),
	)
	mustMove(t, gs, "h2", "e2")

	if gs.Status() != StatusWin || gs.WinReason() != WinCheckmate || gs.Winner() != Black {
		t.Fatalf("status=%s reason=%s winner=%s", gs.Status(), gs.WinReason(), gs.Winner())
	}
	if !gs.InCheck() {
		t.Fatalf("expected check flag on mate")
	}
	if _, ok := gs.Turn(); ok {
		t.Fatalf("turn must be undefined after mate")
	}
	for _, from := range []string{"e1", "e2", "e3"} {
		if got := mustDestinations(t, gs, from); len(got) != 0 {
			t.Fatalf("%s has destinations after mate: %v", from, got)
		}
	}
	err := gs.ApplyMove(Move{From: sq(t, "e1"), To: sq(t, "d1")})
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if n := logs.FilterMessage("chess_game_over").Len(); n != 1 {
		t.Fatalf("expected one chess_game_over log, got %d", n)
	}
	if n := logs.FilterMessage("chess_move_applied").Len(); n != 1 {
		t.Fatalf("expected one chess_move_applied log, got %d", n)
	}
}

func TestEveryWhiteMoveIsIllegalWhenMated(t *testing.T) {
	gs := newSnapshotGame(t, "white",
		spec("e1", "white", "king", true),
		spec("e2", "black", "queen", true),
		spec("e3", "black", "king", true),
	)
	if gs.Status() != StatusWin || gs.WinReason() != WinCheckmate {
		t.Fatalf("snapshot not recognised as mate: %s %s", gs.Status(), gs.WinReason())
	}
	legal, err := LegalCandidates(gs.board, sq(t, "e1"))
	if err != nil {
		t.Fatalf("LegalCandidates: %v", err)
	}
	if len(legal) != 0 {
		t.Fatalf("mated king has moves %v", legal)
	}
}

func TestStalemate(t *testing.T) {
	gs := newSnapshotGame(t, "white",
		spec("e1", "white", "king", true),
		spec("c1", "white", "queen", true),
		spec("a8", "black", "king", true),
	)
	mustMove(t, gs, "c1", "c7")
	if gs.Status() != StatusDraw || gs.DrawReason() != DrawStalemate {
		t.Fatalf("status=%s reason=%s", gs.Status(), gs.DrawReason())
	}
	if gs.InCheck() {
		t.Fatalf("stalemate is not check")
	}
}

func TestBareKingsDraw(t *testing.T) {
	gs := newSnapshotGame(t, "white",
		spec("e1", "white", "king", true),
		spec("d2", "black", "knight", true),
		spec("e8", "black", "king", true),
	)
	mustMove(t, gs, "e1", "d2")
	if gs.Status() != StatusDraw || gs.DrawReason() != DrawInsufficientMaterial {
		t.Fatalf("status=%s reason=%s", gs.Status(), gs.DrawReason())
	}
	hist := gs.History()
	if len(hist) != 1 || hist[0].Captured == (PieceID{}) {
		t.Fatalf("capture not recorded: %+v", hist)
	}
}

func TestCheckDoesNotEndGame(t *testing.T) {
	gs := NewGame()
	for _, mv := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"f1", "b5"}} {
		mustMove(t, gs, mv[0], mv[1])
	}
	if !gs.InCheck() || gs.Status() != StatusInProgress {
		t.Fatalf("check=%v status=%s", gs.InCheck(), gs.Status())
	}
	turn, ok := gs.Turn()
	if !ok || turn != Black {
		t.Fatalf("turn = %s", turn)
	}
	mustMove(t, gs, "c8", "d7")
	if gs.InCheck() {
		t.Fatalf("block did not clear check")
	}
}

func TestApplyMoveErrors(t *testing.T) {
	tests := []struct {
		name string
		move Move
		want error
	}{
		{name: "empty source", move: Move{From: Position{Row: 3, Col: 4}, To: Position{Row: 4, Col: 4}}, want: ErrEmptySource},
		{name: "wrong turn", move: Move{From: Position{Row: 6, Col: 4}, To: Position{Row: 5, Col: 4}}, want: ErrWrongTurn},
		{name: "illegal destination", move: Move{From: Position{Row: 1, Col: 4}, To: Position{Row: 4, Col: 4}}, want: ErrIllegalMove},
		{name: "off board", move: Move{From: Position{Row: 1, Col: 4}, To: Position{Row: 8, Col: 4}}, want: ErrInvalidCoordinate},
		{name: "promotion off last rank", move: Move{From: Position{Row: 1, Col: 4}, To: Position{Row: 3, Col: 4}, Promotion: Queen}, want: ErrInvalidPromotion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGame()
			if err := gs.ApplyMove(tt.move); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(gs.History()) != 0 {
				t.Fatalf("rejected move changed history")
			}
		})
	}

	var nilGame *GameState
	if err := nilGame.ApplyMove(Move{}); !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("expected ErrMissingArgument, got %v", err)
	}
	if _, err := NewGame().LegalDestinations(Position{Row: -1}); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestLegalDestinationsOfEmptyCell(t *testing.T) {
	got, err := NewGame().LegalDestinations(Position{Row: 4, Col: 4})
	if err != nil {
		t.Fatalf("LegalDestinations: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil set, got %#v", got)
	}
}

func TestMoveUpdatesPieceAndHistory(t *testing.T) {
	gs := NewGame()
	id := gs.board.pieceAt(sq(t, "g1")).ID
	mustMove(t, gs, "g1", "f3")

	pc := gs.board.pieceAt(sq(t, "f3"))
	if pc == nil || pc.ID != id || pc.MoveCount != 1 || !pc.Moved {
		t.Fatalf("knight not updated: %+v", pc)
	}
	if gs.board.IsOccupied(sq(t, "g1")) {
		t.Fatalf("source not cleared")
	}
	hist := gs.History()
	if len(hist) != 1 || hist[0].Piece != id || hist[0].From != sq(t, "g1") || hist[0].To != sq(t, "f3") {
		t.Fatalf("history %+v", hist)
	}
	hist[0].To = Position{}
	if gs.History()[0].To != sq(t, "f3") {
		t.Fatalf("History must return a copy")
	}
}

func TestPawnLosesDoubleStepAfterMoving(t *testing.T) {
	gs := NewGame()
	mustMove(t, gs, "e2", "e3")
	mustMove(t, gs, "a7", "a6")
	if got := mustDestinations(t, gs, "e3"); len(got) != 0 {
		t.Fatalf("moved pawn off start rank advanced: %v", got)
	}
}

func TestResign(t *testing.T) {
	gs := NewGame()
	err := gs.Resign(Black)
	if !errors.Is(err, ErrWrongTurn) || !strings.Contains(err.Error(), "resignation not possible on the opposite color's turn") {
		t.Fatalf("expected wrong-turn resignation error, got %v", err)
	}
	if err := gs.Resign(White); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if gs.Status() != StatusWin || gs.Winner() != Black || gs.WinReason() != WinResignation {
		t.Fatalf("status=%s winner=%s reason=%s", gs.Status(), gs.Winner(), gs.WinReason())
	}
	if err := gs.Resign(White); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if err := gs.AgreeDraw(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestResignAfterWhiteMoved(t *testing.T) {
	gs := NewGame()
	mustMove(t, gs, "e2", "e4")
	if err := gs.Resign(White); !errors.Is(err, ErrWrongTurn) {
		t.Fatalf("expected ErrWrongTurn, got %v", err)
	}
}

func TestAgreeDraw(t *testing.T) {
	gs := NewGame()
	mustMove(t, gs, "e2", "e4")
	if err := gs.AgreeDraw(); err != nil {
		t.Fatalf("AgreeDraw: %v", err)
	}
	if gs.Status() != StatusDraw || gs.DrawReason() != DrawByAgreement {
		t.Fatalf("status=%s reason=%s", gs.Status(), gs.DrawReason())
	}
	if _, ok := gs.Turn(); ok {
		t.Fatalf("turn must be undefined after draw")
	}
	moves, err := gs.AllLegalMoves(Black)
	if err != nil || len(moves) != 0 {
		t.Fatalf("moves after draw: %v %v", moves, err)
	}
}

func TestRepetitionCount(t *testing.T) {
	gs := NewGame()
	for i := 0; i < 2; i++ {
		mustMove(t, gs, "g1", "f3")
		mustMove(t, gs, "g8", "f6")
		mustMove(t, gs, "f3", "g1")
		mustMove(t, gs, "f6", "g8")
	}
	if got := gs.RepetitionCount(); got != 3 {
		t.Fatalf("expected start position seen 3 times, got %d", got)
	}
	if gs.Status() != StatusInProgress {
		t.Fatalf("repetition must not end the game")
	}
}

func TestRepetitionTracksCastlingRights(t *testing.T) {
	gs := newSnapshotGame(t, "white", castlingBase()...)
	mustMove(t, gs, "e1", "d1")
	mustMove(t, gs, "f7", "e7")
	mustMove(t, gs, "d1", "e1")
	mustMove(t, gs, "e7", "f7")
	if got := gs.RepetitionCount(); got != 1 {
		t.Fatalf("same placement without castling rights is a new position, got count %d", got)
	}
}

func TestFailedApplyLeavesGameUntouched(t *testing.T) {
	// No black king: evaluating the position after the move fails.
	b := NewBoard()
	if err := b.Place(sq(t, "e1"), NewPiece(White, King)); err != nil {
		t.Fatal(err)
	}
	gs := newGameState(b, White)
	before := gs.board.String()

	err := gs.ApplyMove(Move{From: sq(t, "e1"), To: sq(t, "d1")})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	if len(gs.History()) != 0 {
		t.Fatalf("history grew on a failed move: %+v", gs.History())
	}
	if gs.board.String() != before {
		t.Fatalf("board changed on a failed move:\n%s", gs.board)
	}
	if king := gs.board.pieceAt(sq(t, "e1")); king == nil || king.Moved || king.MoveCount != 0 {
		t.Fatalf("king state changed: %+v", king)
	}
	if turn, ok := gs.Turn(); !ok || turn != White || gs.RepetitionCount() != 1 {
		t.Fatalf("turn=%s ok=%v repetition=%d", turn, ok, gs.RepetitionCount())
	}
}
