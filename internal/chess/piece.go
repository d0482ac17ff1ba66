package chess

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Color identifies a side. NoColor marks "no side", e.g. the turn after the game ended.
type Color int8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// ParseColor accepts "white"/"w" and "black"/"b" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("unknown color %q", s)
}

type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Symbol returns the SAN-style letter, upper case for white and lower case for black.
func (t PieceType) Symbol(c Color) string {
	var s string
	switch t {
	case Pawn:
		s = "P"
	case Knight:
		s = "N"
	case Bishop:
		s = "B"
	case Rook:
		s = "R"
	case Queen:
		s = "Q"
	case King:
		s = "K"
	default:
		return "."
	}
	if c == Black {
		return strings.ToLower(s)
	}
	return s
}

// ParsePieceType accepts full names ("knight") and letters ("n", "N").
func ParsePieceType(s string) (PieceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pawn", "p":
		return Pawn, nil
	case "knight", "n":
		return Knight, nil
	case "bishop", "b":
		return Bishop, nil
	case "rook", "r":
		return Rook, nil
	case "queen", "q":
		return Queen, nil
	case "king", "k":
		return King, nil
	}
	return NoPieceType, fmt.Errorf("unknown piece type %q", s)
}

// PieceID identifies one physical piece for its whole life, across relocations.
type PieceID = uuid.UUID

// Piece is a value type. Boards own pointers to their pieces; clones copy them.
type Piece struct {
	Color     Color
	Type      PieceType
	Moved     bool
	MoveCount int
	ID        PieceID
}

// NewPiece allocates a fresh identity.
func NewPiece(c Color, t PieceType) Piece {
	return Piece{Color: c, Type: t, ID: uuid.New()}
}

func (p Piece) String() string {
	return p.Type.Symbol(p.Color)
}

type offset struct {
	dr, dc int
}

type ruleKind int

const (
	ruleRay ruleKind = iota
	rulePawn
)

// movementRule describes how a piece type reaches its candidates.
// Leapers are rays with maxSteps 1.
type movementRule struct {
	kind       ruleKind
	directions []offset
	maxSteps   int
	castles    bool
}

var (
	orthogonal = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	royal      = append(append([]offset{}, orthogonal...), diagonal...)
	knightJump = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

const slideRange = boardSize - 1

func movementRuleFor(t PieceType) (movementRule, bool) {
	switch t {
	case Pawn:
		return movementRule{kind: rulePawn}, true
	case Knight:
		return movementRule{kind: ruleRay, directions: knightJump, maxSteps: 1}, true
	case Bishop:
		return movementRule{kind: ruleRay, directions: diagonal, maxSteps: slideRange}, true
	case Rook:
		return movementRule{kind: ruleRay, directions: orthogonal, maxSteps: slideRange}, true
	case Queen:
		return movementRule{kind: ruleRay, directions: royal, maxSteps: slideRange}, true
	case King:
		return movementRule{kind: ruleRay, directions: royal, maxSteps: 1, castles: true}, true
	}
	return movementRule{}, false
}
