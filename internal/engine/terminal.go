package engine

// IsCheckmate reports whether color is in check with no legal move for any
// of its pieces.
func IsCheckmate(b Board, color Color, rights CastlingRights, enPassant *Position) bool {
	return IsKingInCheck(b, color) && !hasLegalMove(b, color, rights, enPassant)
}

// IsStalemate reports whether color has no legal move while NOT in check.
func IsStalemate(b Board, color Color, rights CastlingRights, enPassant *Position) bool {
	return !IsKingInCheck(b, color) && !hasLegalMove(b, color, rights, enPassant)
}

func hasLegalMove(b Board, color Color, rights CastlingRights, enPassant *Position) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Position{Row: row, Col: col}
			piece := b.At(from)
			if piece == nil || piece.Color != color {
				continue
			}
			moves, err := LegalMoves(b, from, rights, enPassant)
			if err != nil {
				continue
			}
			if len(moves) > 0 {
				return true
			}
		}
	}
	return false
}
