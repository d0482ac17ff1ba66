package chess

import "fmt"

// LegalCandidates returns the destinations of the piece on from that do not
// leave its own king attacked, castling included. A square holding the enemy
// king is never a destination.
func LegalCandidates(b *Board, from Position) ([]Position, error) {
	if err := requireMovable(b, from); err != nil {
		return nil, err
	}
	out, err := legalCandidates(b, from)
	if err != nil {
		return nil, err
	}
	SortPositions(out)
	return out, nil
}

func legalCandidates(b *Board, from Position) ([]Position, error) {
	pc := b.pieceAt(from)
	if pc == nil {
		return nil, nil
	}
	var out []Position
	for _, to := range rawCandidates(b, from) {
		if target := b.pieceAt(to); target != nil && target.Type == King {
			continue
		}
		safe, err := keepsKingSafe(b, from, to)
		if err != nil {
			return nil, err
		}
		if safe {
			out = append(out, to)
		}
	}
	if rule, _ := movementRuleFor(pc.Type); rule.castles {
		out = append(out, castlingCandidates(b, from)...)
	}
	return out, nil
}

// keepsKingSafe plays from->to on a clone and reports whether the mover's
// king is left unattacked. The real board is never touched.
func keepsKingSafe(b *Board, from, to Position) (bool, error) {
	sim := b.Clone()
	mover := *sim.pieceAt(from)
	sim.cell(from).piece = nil
	sim.cell(to).piece = &mover

	king, err := findKing(sim, mover.Color)
	if err != nil {
		return false, err
	}
	return !isAttacked(sim, king, mover.Color.Opposite()), nil
}

func findKing(b *Board, c Color) (Position, error) {
	var (
		at    Position
		found bool
	)
	b.forEachPiece(func(p Position, pc *Piece) bool {
		if pc.Color == c && pc.Type == King {
			at, found = p, true
			return false
		}
		return true
	})
	if !found {
		return Position{}, fmt.Errorf("no %s king on board: %w", c, ErrInvariantViolation)
	}
	return at, nil
}

// isAttacked reports whether any piece of color by reaches target with its
// raw candidates.
func isAttacked(b *Board, target Position, by Color) bool {
	attacked := false
	b.forEachPiece(func(p Position, pc *Piece) bool {
		if pc.Color != by {
			return true
		}
		if containsPosition(rawCandidates(b, p), target) {
			attacked = true
			return false
		}
		return true
	})
	return attacked
}
