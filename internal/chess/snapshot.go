package chess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/park285/chess-rules/pkg/chessdto"
	yaml "gopkg.in/yaml.v3"
)

// LoadSnapshotYAML decodes a YAML snapshot and builds the game from it.
func LoadSnapshotYAML(raw []byte) (*GameState, error) {
	var s chessdto.Snapshot
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %v: %w", err, ErrInvalidSnapshot)
	}
	return FromSnapshot(s)
}

// FromSnapshot builds a game from s. Unless s records a finished game, the
// status is evaluated for the side to move, so a snapshot may start out in
// check, checkmate or stalemate.
func FromSnapshot(s chessdto.Snapshot) (*GameState, error) {
	turn, err := ParseColor(s.Turn)
	if err != nil {
		return nil, fmt.Errorf("turn: %v: %w", err, ErrInvalidSnapshot)
	}

	b := NewBoard()
	kings := map[Color]int{}
	for i, spec := range s.Pieces {
		p, pc, err := pieceFromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %v: %w", i, err, ErrInvalidSnapshot)
		}
		if b.pieceAt(p) != nil {
			return nil, fmt.Errorf("square %v occupied twice: %w", p, ErrInvalidSnapshot)
		}
		b.cell(p).piece = &pc
		if pc.Type == King {
			kings[pc.Color]++
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("need one king per side, have white=%d black=%d: %w", kings[White], kings[Black], ErrInvalidSnapshot)
	}

	gs := newGameState(b, turn)
	for i, rec := range s.History {
		mr, err := moveRecordFromDTO(rec)
		if err != nil {
			return nil, fmt.Errorf("history %d: %v: %w", i, err, ErrInvalidSnapshot)
		}
		gs.history = append(gs.history, mr)
	}

	if err := applySnapshotStatus(gs, s); err != nil {
		return nil, err
	}
	if len(s.Positions) > 0 {
		seen := make(map[string]int, len(s.Positions))
		for k, n := range s.Positions {
			if n < 1 {
				return nil, fmt.Errorf("position count %d for %q: %w", n, k, ErrInvalidSnapshot)
			}
			seen[k] = n
		}
		if key := gs.positionKey(); !gs.Over() && seen[key] == 0 {
			seen[key] = 1
		}
		gs.seen = seen
	}
	return gs, nil
}

func applySnapshotStatus(gs *GameState, s chessdto.Snapshot) error {
	switch Status(strings.ToUpper(strings.TrimSpace(s.Status))) {
	case "", StatusInProgress:
		if err := requireWaitingKingSafe(gs.board, gs.turn); err != nil {
			return err
		}
		if err := gs.recomputeStatus(gs.turn.Opposite()); err != nil {
			if errors.Is(err, ErrInvariantViolation) {
				return fmt.Errorf("%v: %w", err, ErrInvalidSnapshot)
			}
			return err
		}
	case StatusWin:
		winner, err := ParseColor(s.Winner)
		if err != nil {
			return fmt.Errorf("winner: %v: %w", err, ErrInvalidSnapshot)
		}
		reason := WinReason(strings.ToLower(strings.TrimSpace(s.WinReason)))
		if reason != WinCheckmate && reason != WinResignation {
			return fmt.Errorf("win reason %q: %w", s.WinReason, ErrInvalidSnapshot)
		}
		gs.status, gs.winner, gs.winReason, gs.turn = StatusWin, winner, reason, NoColor
	case StatusDraw:
		reason := DrawReason(strings.ToLower(strings.TrimSpace(s.DrawReason)))
		switch reason {
		case DrawStalemate, DrawInsufficientMaterial, DrawByAgreement:
		default:
			return fmt.Errorf("draw reason %q: %w", s.DrawReason, ErrInvalidSnapshot)
		}
		gs.status, gs.drawReason, gs.turn = StatusDraw, reason, NoColor
	default:
		return fmt.Errorf("status %q: %w", s.Status, ErrInvalidSnapshot)
	}
	return nil
}

// requireWaitingKingSafe rejects positions where the side to move could
// capture the opposing king.
func requireWaitingKingSafe(b *Board, turn Color) error {
	king, err := findKing(b, turn.Opposite())
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidSnapshot)
	}
	if isAttacked(b, king, turn) {
		return fmt.Errorf("%s king on %v is attacked with %s to move: %w", turn.Opposite(), king, turn, ErrInvalidSnapshot)
	}
	return nil
}

func pieceFromSpec(spec chessdto.PieceSpec) (Position, Piece, error) {
	p, err := ParsePosition(spec.Square)
	if err != nil {
		return Position{}, Piece{}, err
	}
	c, err := ParseColor(spec.Color)
	if err != nil {
		return Position{}, Piece{}, err
	}
	t, err := ParsePieceType(spec.Type)
	if err != nil {
		return Position{}, Piece{}, err
	}
	if spec.MoveCount < 0 {
		return Position{}, Piece{}, fmt.Errorf("negative move count %d", spec.MoveCount)
	}
	pc := NewPiece(c, t)
	pc.MoveCount = spec.MoveCount
	pc.Moved = spec.Moved || spec.MoveCount > 0
	if id := strings.TrimSpace(spec.ID); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return Position{}, Piece{}, fmt.Errorf("piece id %q: %w", id, err)
		}
		pc.ID = parsed
	}
	return p, pc, nil
}

func moveRecordFromDTO(rec chessdto.MoveRecord) (MoveRecord, error) {
	var (
		mr  MoveRecord
		err error
	)
	if mr.Piece, err = uuid.Parse(rec.Piece); err != nil {
		return MoveRecord{}, fmt.Errorf("piece id %q: %w", rec.Piece, err)
	}
	if mr.From, err = ParsePosition(rec.From); err != nil {
		return MoveRecord{}, err
	}
	if mr.To, err = ParsePosition(rec.To); err != nil {
		return MoveRecord{}, err
	}
	if rec.Captured != "" {
		if mr.Captured, err = uuid.Parse(rec.Captured); err != nil {
			return MoveRecord{}, fmt.Errorf("captured id %q: %w", rec.Captured, err)
		}
	}
	if rec.Promotion != "" {
		if mr.Promotion, err = ParsePieceType(rec.Promotion); err != nil {
			return MoveRecord{}, err
		}
	}
	mr.Castle = rec.Castle
	return mr, nil
}

// Snapshot exports the game. FromSnapshot(gs.Snapshot()) reproduces the
// placement, counters, identities, history and status.
func (gs *GameState) Snapshot() chessdto.Snapshot {
	s := chessdto.Snapshot{
		Status: string(gs.status),
		Pieces: []chessdto.PieceSpec{},
	}
	if turn, ok := gs.Turn(); ok {
		s.Turn = turn.String()
	} else {
		// Turn is unset once the game is over; keep the field parseable.
		s.Turn = White.String()
	}
	if gs.status == StatusWin {
		s.Winner = gs.winner.String()
		s.WinReason = string(gs.winReason)
	}
	if gs.status == StatusDraw {
		s.DrawReason = string(gs.drawReason)
	}
	if len(gs.seen) > 0 {
		s.Positions = make(map[string]int, len(gs.seen))
		for k, n := range gs.seen {
			s.Positions[k] = n
		}
	}
	gs.board.forEachPiece(func(p Position, pc *Piece) bool {
		s.Pieces = append(s.Pieces, chessdto.PieceSpec{
			Square:    p.String(),
			Color:     pc.Color.String(),
			Type:      pc.Type.String(),
			Moved:     pc.Moved,
			MoveCount: pc.MoveCount,
			ID:        pc.ID.String(),
		})
		return true
	})
	for _, rec := range gs.history {
		dto := chessdto.MoveRecord{
			Piece:  rec.Piece.String(),
			From:   rec.From.String(),
			To:     rec.To.String(),
			Castle: rec.Castle,
		}
		if rec.Captured != uuid.Nil {
			dto.Captured = rec.Captured.String()
		}
		if rec.Promotion != NoPieceType {
			dto.Promotion = rec.Promotion.String()
		}
		s.History = append(s.History, dto)
	}
	return s
}
