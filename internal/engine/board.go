package engine

// Home rows and pawn geometry, from white's point of view at the bottom
// of the grid.
const (
	blackHomeRow  = 0
	whiteHomeRow  = 7
	blackPawnRow  = 1
	whitePawnRow  = 6
	kingHomeCol   = 4
	queenRookCol  = 0
	kingRookCol   = 7
	kingSideCol   = 6
	queenSideCol  = 2
	kingSideRook  = 5
	queenSideRook = 3
)

func homeRow(c Color) int {
	if c == White {
		return whiteHomeRow
	}
	return blackHomeRow
}

func pawnStartRow(c Color) int {
	if c == White {
		return whitePawnRow
	}
	return blackPawnRow
}

// pawnDir is the row delta a pawn of color c advances by.
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func promotionRow(c Color) int {
	return homeRow(c.Opponent())
}

func inBounds(p Position) bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

// NewGame returns the standard starting state: white to move, full
// castling rights, no en-passant target, empty history.
func NewGame() GameState {
	return GameState{
		Board: newBoard(),
		Turn:  White,
		CastlingRights: CastlingRights{
			White: SideRights{KingSide: true, QueenSide: true},
			Black: SideRights{KingSide: true, QueenSide: true},
		},
		History: make([]Move, 0),
	}
}

func newBoard() Board {
	var b Board
	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range backRank {
		b[blackHomeRow][col] = &Piece{Kind: kind, Color: Black}
		b[whiteHomeRow][col] = &Piece{Kind: kind, Color: White}
	}
	for col := 0; col < 8; col++ {
		b[blackPawnRow][col] = &Piece{Kind: Pawn, Color: Black}
		b[whitePawnRow][col] = &Piece{Kind: Pawn, Color: White}
	}
	return b
}
