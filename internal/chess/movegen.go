package chess

import "fmt"

// RawCandidates returns the geometric reach of the piece on from, ignoring
// king safety and castling. An empty cell yields no candidates.
func RawCandidates(b *Board, from Position) ([]Position, error) {
	if err := requireMovable(b, from); err != nil {
		return nil, err
	}
	out := rawCandidates(b, from)
	SortPositions(out)
	return out, nil
}

// requireMovable guards the exported entry points: the board must exist, from
// must be on it, and an occupant must have a movement rule.
func requireMovable(b *Board, from Position) error {
	if b == nil {
		return fmt.Errorf("board: %w", ErrMissingArgument)
	}
	if !from.Valid() {
		return fmt.Errorf("from %v: %w", from, ErrInvalidCoordinate)
	}
	if pc := b.pieceAt(from); pc != nil {
		if _, ok := movementRuleFor(pc.Type); !ok {
			return fmt.Errorf("movement rule for %q on %v: %w", pc.Type, from, ErrMissingArgument)
		}
	}
	return nil
}

// rawCandidates never consults king safety. The legality filter calls it for
// enemy pieces, so it must not call back into the filter.
func rawCandidates(b *Board, from Position) []Position {
	pc := b.pieceAt(from)
	if pc == nil {
		return nil
	}
	rule, ok := movementRuleFor(pc.Type)
	if !ok {
		return nil
	}
	switch rule.kind {
	case rulePawn:
		return pawnCandidates(b, from, pc)
	default:
		return walkRays(b, from, pc.Color, rule.directions, rule.maxSteps)
	}
}

// walkRays steps along each direction up to maxSteps cells. It stops at the
// board edge and at the first occupied cell, which is included only when it
// holds an enemy piece.
func walkRays(b *Board, from Position, mover Color, dirs []offset, maxSteps int) []Position {
	var out []Position
	for _, d := range dirs {
		for k := 1; k <= maxSteps; k++ {
			next := from.add(d, k)
			if !next.Valid() {
				break
			}
			occ := b.pieceAt(next)
			if occ == nil {
				out = append(out, next)
				continue
			}
			if occ.Color != mover {
				out = append(out, next)
			}
			break
		}
	}
	return out
}

// pawnStartRow is rank 2 for white and rank 7 for black.
func pawnStartRow(c Color) int {
	if c == Black {
		return boardSize - 2
	}
	return 1
}

func pawnForward(c Color) int {
	if c == Black {
		return -1
	}
	return 1
}

// pawnCandidates covers the single and double forward step from the starting
// rank of an unmoved pawn. Diagonal captures, en passant and advances off the
// starting rank are not generated.
func pawnCandidates(b *Board, from Position, pc *Piece) []Position {
	if pc.Moved || from.Row != pawnStartRow(pc.Color) {
		return nil
	}
	step := offset{dr: pawnForward(pc.Color)}
	var out []Position
	for k := 1; k <= 2; k++ {
		next := from.add(step, k)
		if !next.Valid() || b.pieceAt(next) != nil {
			break
		}
		out = append(out, next)
	}
	return out
}
