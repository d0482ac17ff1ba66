package chess

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewInitialBoard returns the standard starting position with fresh piece
// identities.
func NewInitialBoard() *Board {
	b := NewBoard()
	for col, t := range backRank {
		b.cells[0][col].piece = newPiecePtr(White, t)
		b.cells[1][col].piece = newPiecePtr(White, Pawn)
		b.cells[boardSize-2][col].piece = newPiecePtr(Black, Pawn)
		b.cells[boardSize-1][col].piece = newPiecePtr(Black, t)
	}
	return b
}

func newPiecePtr(c Color, t PieceType) *Piece {
	pc := NewPiece(c, t)
	return &pc
}

// NewGame starts a game from the initial position with white to move.
func NewGame() *GameState {
	return newGameState(NewInitialBoard(), White)
}
