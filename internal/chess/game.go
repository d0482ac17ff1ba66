package chess

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/park285/chess-rules/internal/obslog"
	"go.uber.org/zap"
)

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusWin        Status = "WIN"
	StatusDraw       Status = "DRAW"
)

type WinReason string

const (
	WinNone        WinReason = ""
	WinCheckmate   WinReason = "checkmate"
	WinResignation WinReason = "resignation"
)

type DrawReason string

const (
	DrawNone                 DrawReason = ""
	DrawStalemate            DrawReason = "stalemate"
	DrawInsufficientMaterial DrawReason = "insufficient_material"
	DrawByAgreement          DrawReason = "agreement"
)

// Move is a request to relocate the piece on From. Promotion is NoPieceType
// unless a pawn reaching the last rank should become another piece.
type Move struct {
	From      Position
	To        Position
	Promotion PieceType
}

// MoveRecord is one entry of the move history. Records are never mutated.
type MoveRecord struct {
	Piece     PieceID
	From      Position
	To        Position
	Captured  PieceID
	Promotion PieceType
	Castle    bool
}

// GameState owns a board and the game's lifecycle. It is not safe for
// concurrent use.
type GameState struct {
	board      *Board
	turn       Color
	status     Status
	winner     Color
	winReason  WinReason
	drawReason DrawReason
	inCheck    bool
	history    []MoveRecord
	seen       map[string]int
}

func newGameState(b *Board, turn Color) *GameState {
	gs := &GameState{
		board:  b,
		turn:   turn,
		status: StatusInProgress,
		seen:   make(map[string]int),
	}
	gs.seen[gs.positionKey()]++
	return gs
}

// Board returns a copy of the current board.
func (gs *GameState) Board() *Board { return gs.board.Clone() }

// Turn reports the side to move; ok is false once the game is over.
func (gs *GameState) Turn() (c Color, ok bool) {
	if gs.status != StatusInProgress {
		return NoColor, false
	}
	return gs.turn, true
}

func (gs *GameState) Status() Status         { return gs.status }
func (gs *GameState) InCheck() bool          { return gs.inCheck }
func (gs *GameState) Winner() Color          { return gs.winner }
func (gs *GameState) WinReason() WinReason   { return gs.winReason }
func (gs *GameState) DrawReason() DrawReason { return gs.drawReason }
func (gs *GameState) Over() bool             { return gs.status != StatusInProgress }

// History returns the applied moves in order.
func (gs *GameState) History() []MoveRecord {
	return append([]MoveRecord(nil), gs.history...)
}

// RepetitionCount is how many times the current position has occurred, the
// current occurrence included. A position is the placement, the side to move
// and the castling rights. Counters survive Snapshot/FromSnapshot.
func (gs *GameState) RepetitionCount() int {
	return gs.seen[gs.positionKey()]
}

func (gs *GameState) positionKey() string {
	return gs.turn.String() + ":" + gs.board.key() + ":" + castlingRights(gs.board)
}

// LegalDestinations lists where the piece on p may legally move. It is empty
// for an empty cell and after the game has ended.
func (gs *GameState) LegalDestinations(p Position) ([]Position, error) {
	if err := requireGame(gs); err != nil {
		return nil, err
	}
	if !p.Valid() {
		return nil, fmt.Errorf("cell %v: %w", p, ErrInvalidCoordinate)
	}
	if gs.Over() {
		return []Position{}, nil
	}
	out, err := legalCandidates(gs.board, p)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Position{}
	}
	SortPositions(out)
	return out, nil
}

// AllLegalMoves maps each origin of color c with at least one legal
// destination to those destinations.
func (gs *GameState) AllLegalMoves(c Color) (map[Position][]Position, error) {
	if err := requireGame(gs); err != nil {
		return nil, err
	}
	out := make(map[Position][]Position)
	if gs.Over() {
		return out, nil
	}
	var ferr error
	gs.board.forEachPiece(func(p Position, pc *Piece) bool {
		if pc.Color != c {
			return true
		}
		dests, err := legalCandidates(gs.board, p)
		if err != nil {
			ferr = err
			return false
		}
		if len(dests) > 0 {
			SortPositions(dests)
			out[p] = dests
		}
		return true
	})
	if ferr != nil {
		return nil, ferr
	}
	return out, nil
}

// ApplyMove validates m against the side to move and the legal destinations,
// plays it, and recomputes the game status.
func (gs *GameState) ApplyMove(m Move) error {
	if err := requireGame(gs); err != nil {
		return err
	}
	if err := gs.validateMove(m); err != nil {
		obslog.L().Debug("chess_move_rejected",
			zap.String("from", m.From.String()),
			zap.String("to", m.To.String()),
			zap.Error(err),
		)
		return err
	}

	// Play on a copy so a failed evaluation leaves the game untouched.
	b := gs.board.Clone()
	mover := b.pieceAt(m.From)
	rec := MoveRecord{Piece: mover.ID, From: m.From, To: m.To, Captured: uuid.Nil}
	if target := b.pieceAt(m.To); target != nil {
		rec.Captured = target.ID
	}

	placed := mover
	if m.Promotion != NoPieceType {
		promoted := NewPiece(mover.Color, m.Promotion)
		promoted.Moved = true
		placed = &promoted
		rec.Promotion = m.Promotion
	} else {
		mover.Moved = true
		mover.MoveCount++
		if mover.Type == King {
			if side, ok := castleFor(m.From, m.To); ok {
				relocateRook(b, m.From.Row, side)
				rec.Castle = true
			}
		}
	}
	b.cell(m.To).piece = placed
	b.cell(m.From).piece = nil

	moverColor := mover.Color
	o, err := evaluate(b, moverColor)
	if err != nil {
		return err
	}

	gs.board = b
	gs.history = append(gs.history, rec)
	gs.commitOutcome(o)
	if gs.status == StatusInProgress {
		gs.turn = moverColor.Opposite()
		gs.seen[gs.positionKey()]++
	}

	obslog.L().Info("chess_move_applied",
		zap.String("piece", placed.String()),
		zap.String("from", m.From.String()),
		zap.String("to", m.To.String()),
		zap.Bool("castle", rec.Castle),
		zap.Bool("check", gs.inCheck),
		zap.String("status", string(gs.status)),
	)
	return nil
}

func (gs *GameState) validateMove(m Move) error {
	if gs.Over() {
		return fmt.Errorf("move %v-%v: %w", m.From, m.To, ErrGameOver)
	}
	if !m.From.Valid() || !m.To.Valid() {
		return fmt.Errorf("move %v-%v: %w", m.From, m.To, ErrInvalidCoordinate)
	}
	pc := gs.board.pieceAt(m.From)
	if pc == nil {
		return fmt.Errorf("move from %v: %w", m.From, ErrEmptySource)
	}
	if pc.Color != gs.turn {
		return fmt.Errorf("%s piece on %v while %s to move: %w", pc.Color, m.From, gs.turn, ErrWrongTurn)
	}
	dests, err := legalCandidates(gs.board, m.From)
	if err != nil {
		return err
	}
	if !containsPosition(dests, m.To) {
		return fmt.Errorf("%s %v-%v: %w", pc.Type, m.From, m.To, ErrIllegalMove)
	}
	if m.Promotion != NoPieceType {
		if pc.Type != Pawn || m.To.Row != homeRow(pc.Color.Opposite()) {
			return fmt.Errorf("%s %v-%v does not reach the last rank: %w", pc.Type, m.From, m.To, ErrInvalidPromotion)
		}
		switch m.Promotion {
		case Knight, Bishop, Rook, Queen:
		default:
			return fmt.Errorf("promote to %s: %w", m.Promotion, ErrInvalidPromotion)
		}
	}
	return nil
}

func relocateRook(b *Board, row int, side castleSide) {
	from := Position{Row: row, Col: side.rookFrom}
	rook := b.pieceAt(from)
	if rook == nil {
		return
	}
	rook.Moved = true
	rook.MoveCount++
	b.cell(Position{Row: row, Col: side.rookTo}).piece = rook
	b.cell(from).piece = nil
}

// Resign ends the game in favour of c's opponent. Only the side to move may
// resign.
func (gs *GameState) Resign(c Color) error {
	if err := requireGame(gs); err != nil {
		return err
	}
	if gs.Over() {
		return fmt.Errorf("resign: %w", ErrGameOver)
	}
	if c != gs.turn {
		return fmt.Errorf("resignation not possible on the opposite color's turn: %w", ErrWrongTurn)
	}
	gs.finishWin(c.Opposite(), WinResignation)
	obslog.L().Info("chess_resign",
		zap.String("resigner", c.String()),
		zap.String("winner", gs.winner.String()),
	)
	return nil
}

// AgreeDraw ends an in-progress game as a draw by agreement.
func (gs *GameState) AgreeDraw() error {
	if err := requireGame(gs); err != nil {
		return err
	}
	if gs.Over() {
		return fmt.Errorf("agree draw: %w", ErrGameOver)
	}
	gs.finishDraw(DrawByAgreement)
	obslog.L().Info("chess_draw_agreed", zap.Int("moves", len(gs.history)))
	return nil
}
