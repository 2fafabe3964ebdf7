package engine

// LegalMoves returns every destination the piece on from may actually move
// to: pseudo-moves plus en-passant and castling extensions, minus anything
// that would leave the mover's own king in check. An empty origin square
// yields an empty list; an out-of-range origin is an error. Move order is
// generation order and carries no meaning.
func LegalMoves(b Board, from Position, rights CastlingRights, enPassant *Position) ([]Position, error) {
	if !inBounds(from) {
		return nil, ErrOffBoard
	}
	piece := b.At(from)
	if piece == nil {
		return []Position{}, nil
	}

	candidates := pseudoMoves(b, from, false)
	if piece.Kind == Pawn && enPassant != nil {
		if to, ok := enPassantCapture(b, from, piece, *enPassant); ok {
			candidates = append(candidates, to)
		}
	}
	if piece.Kind == King {
		candidates = append(candidates, castleMoves(b, from, piece, rights)...)
	}

	legal := []Position{}
	for _, to := range candidates {
		next := applySpecialMove(b, from, to, "")
		if !IsKingInCheck(next, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal, nil
}

// enPassantCapture reports whether the pawn on from may capture onto the
// en-passant target square: the target must sit one rank ahead on an
// adjacent file, with the enemy pawn beside the capturer on the target's
// file.
func enPassantCapture(b Board, from Position, pawn *Piece, target Position) (Position, bool) {
	if target.Row != from.Row+pawnDir(pawn.Color) {
		return Position{}, false
	}
	if target.Col != from.Col-1 && target.Col != from.Col+1 {
		return Position{}, false
	}
	beside := b.At(Position{Row: from.Row, Col: target.Col})
	if beside == nil || beside.Color == pawn.Color {
		return Position{}, false
	}
	return target, true
}

// castleMoves adds the castle destinations available to the king on from.
// Rights already encode whether king and rook have stayed home (and the
// rook uncaptured); what remains is emptiness between king and rook, and
// the king neither being in check nor crossing or landing on an attacked
// square. The self-check filter re-checks the landing square along with
// everything else.
func castleMoves(b Board, from Position, king *Piece, rights CastlingRights) []Position {
	row := homeRow(king.Color)
	if from.Row != row || from.Col != kingHomeCol {
		return nil
	}
	side := rights.side(king.Color)
	if !side.KingSide && !side.QueenSide {
		return nil
	}
	if IsKingInCheck(b, king.Color) {
		return nil
	}
	enemy := king.Color.Opponent()

	moves := []Position{}
	if side.KingSide &&
		b[row][5] == nil && b[row][kingSideCol] == nil &&
		!IsSquareAttacked(b, Position{Row: row, Col: 5}, enemy) &&
		!IsSquareAttacked(b, Position{Row: row, Col: kingSideCol}, enemy) {
		moves = append(moves, Position{Row: row, Col: kingSideCol})
	}
	if side.QueenSide &&
		b[row][1] == nil && b[row][queenSideCol] == nil && b[row][3] == nil &&
		!IsSquareAttacked(b, Position{Row: row, Col: 3}, enemy) &&
		!IsSquareAttacked(b, Position{Row: row, Col: queenSideCol}, enemy) {
		moves = append(moves, Position{Row: row, Col: queenSideCol})
	}
	return moves
}
