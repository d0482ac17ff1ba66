package chess

import (
	"fmt"
	"sort"
	"strings"
)

const boardSize = 8

// Position addresses a cell. Row 0 is white's home rank, column 0 is the a-file.
type Position struct {
	Row int
	Col int
}

// NewPosition fails with ErrInvalidCoordinate when either index is outside [0,7].
func NewPosition(row, col int) (Position, error) {
	p := Position{Row: row, Col: col}
	if !p.Valid() {
		return Position{}, fmt.Errorf("row %d col %d: %w", row, col, ErrInvalidCoordinate)
	}
	return p, nil
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < boardSize && p.Col >= 0 && p.Col < boardSize
}

func (p Position) add(o offset, k int) Position {
	return Position{Row: p.Row + k*o.dr, Col: p.Col + k*o.dc}
}

// String renders algebraic coordinates, e.g. "e2".
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return string([]byte{byte('a' + p.Col), byte('1' + p.Row)})
}

// ParsePosition parses algebraic coordinates such as "e2".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Position{}, fmt.Errorf("square %q: %w", s, ErrInvalidCoordinate)
	}
	return NewPosition(int(s[1])-'1', int(s[0])-'a')
}

// SortPositions orders ps by row, then column (a1, b1, ..., h8).
func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Row != ps[j].Row {
			return ps[i].Row < ps[j].Row
		}
		return ps[i].Col < ps[j].Col
	})
}

func containsPosition(ps []Position, p Position) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

// Cell is one square of the board. Its shade derives from coordinate parity
// unless overridden.
type Cell struct {
	pos      Position
	piece    *Piece
	override Color
}

func (c *Cell) Position() Position { return c.pos }

func (c *Cell) Occupied() bool { return c.piece != nil }

// Piece returns a copy of the occupant.
func (c *Cell) Piece() (Piece, bool) {
	if c.piece == nil {
		return Piece{}, false
	}
	return *c.piece, true
}

// Shade is Black (dark) when row+col is even, so a1 is dark.
func (c *Cell) Shade() Color {
	if c.override != NoColor {
		return c.override
	}
	if (c.pos.Row+c.pos.Col)%2 == 0 {
		return Black
	}
	return White
}

type Board struct {
	cells [boardSize][boardSize]Cell
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	b := &Board{}
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			b.cells[r][c].pos = Position{Row: r, Col: c}
		}
	}
	return b
}

// CellAt fails with ErrInvalidCoordinate when either index is outside [0,7].
func (b *Board) CellAt(row, col int) (*Cell, error) {
	p, err := NewPosition(row, col)
	if err != nil {
		return nil, err
	}
	return b.cell(p), nil
}

func (b *Board) cell(p Position) *Cell {
	return &b.cells[p.Row][p.Col]
}

func (b *Board) pieceAt(p Position) *Piece {
	return b.cells[p.Row][p.Col].piece
}

func (b *Board) IsOccupied(p Position) bool {
	return p.Valid() && b.pieceAt(p) != nil
}

// Place puts a copy of pc on p, replacing any occupant.
func (b *Board) Place(p Position, pc Piece) error {
	if !p.Valid() {
		return fmt.Errorf("place %v: %w", p, ErrInvalidCoordinate)
	}
	cp := pc
	b.cells[p.Row][p.Col].piece = &cp
	return nil
}

// Remove clears p and returns what was there.
func (b *Board) Remove(p Position) (Piece, bool, error) {
	if !p.Valid() {
		return Piece{}, false, fmt.Errorf("remove %v: %w", p, ErrInvalidCoordinate)
	}
	c := b.cell(p)
	if c.piece == nil {
		return Piece{}, false, nil
	}
	pc := *c.piece
	c.piece = nil
	return pc, true, nil
}

// OverrideShade pins the display color of one cell.
func (b *Board) OverrideShade(p Position, c Color) error {
	if !p.Valid() {
		return fmt.Errorf("shade %v: %w", p, ErrInvalidCoordinate)
	}
	b.cell(p).override = c
	return nil
}

// Clone deep-copies the board: every piece is copied by value.
func (b *Board) Clone() *Board {
	out := &Board{}
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			src := &b.cells[r][c]
			dst := &out.cells[r][c]
			dst.pos = src.pos
			dst.override = src.override
			if src.piece != nil {
				pc := *src.piece
				dst.piece = &pc
			}
		}
	}
	return out
}

func (b *Board) forEachPiece(fn func(Position, *Piece) bool) {
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if pc := b.cells[r][c].piece; pc != nil {
				if !fn(Position{Row: r, Col: c}, pc) {
					return
				}
			}
		}
	}
}

func (b *Board) countPieces(c Color) int {
	n := 0
	b.forEachPiece(func(_ Position, pc *Piece) bool {
		if pc.Color == c {
			n++
		}
		return true
	})
	return n
}

// key identifies the placement for repetition counting. Identity and move
// counters are ignored.
func (b *Board) key() string {
	var sb strings.Builder
	sb.Grow(boardSize * boardSize)
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if pc := b.cells[r][c].piece; pc != nil {
				sb.WriteString(pc.String())
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// String draws the board with rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	for r := boardSize - 1; r >= 0; r-- {
		fmt.Fprintf(&sb, "%d ", r+1)
		for c := 0; c < boardSize; c++ {
			if pc := b.cells[r][c].piece; pc != nil {
				sb.WriteString(pc.String())
			} else {
				sb.WriteByte('.')
			}
			if c < boardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
