package engine

var (
	rookDirs   = []Position{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	bishopDirs = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	knightDirs = []Position{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
	kingDirs = append(append([]Position{}, rookDirs...), bishopDirs...)
)

func offset(p, dir Position) Position {
	return Position{Row: p.Row + dir.Row, Col: p.Col + dir.Col}
}

// pseudoMoves returns every square the piece on from could move to by
// piece-movement rules alone: self-check, castling and en passant are not
// considered here. With attackMode set the result is the piece's attack
// coverage instead, which differs only for pawns (diagonals regardless of
// occupancy, no forward pushes). An empty origin yields no moves.
func pseudoMoves(b Board, from Position, attackMode bool) []Position {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	switch piece.Kind {
	case Pawn:
		return pawnMoves(b, from, piece, attackMode)
	case Knight:
		return stepMoves(b, from, piece, knightDirs)
	case Bishop:
		return rayMoves(b, from, piece, bishopDirs)
	case Rook:
		return rayMoves(b, from, piece, rookDirs)
	case Queen:
		return append(rayMoves(b, from, piece, bishopDirs), rayMoves(b, from, piece, rookDirs)...)
	case King:
		return stepMoves(b, from, piece, kingDirs)
	}
	return nil
}

func pawnMoves(b Board, from Position, piece *Piece, attackMode bool) []Position {
	moves := []Position{}
	dir := pawnDir(piece.Color)

	for _, dc := range []int{-1, 1} {
		to := Position{Row: from.Row + dir, Col: from.Col + dc}
		if !inBounds(to) {
			continue
		}
		if attackMode {
			moves = append(moves, to)
			continue
		}
		if target := b.At(to); target != nil && target.Color != piece.Color {
			moves = append(moves, to)
		}
	}
	if attackMode {
		// Pawns do not attack forward.
		return moves
	}

	one := Position{Row: from.Row + dir, Col: from.Col}
	if inBounds(one) && b.At(one) == nil {
		moves = append(moves, one)
		two := Position{Row: from.Row + 2*dir, Col: from.Col}
		if from.Row == pawnStartRow(piece.Color) && b.At(two) == nil {
			moves = append(moves, two)
		}
	}
	return moves
}

func stepMoves(b Board, from Position, piece *Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		to := offset(from, dir)
		if !inBounds(to) {
			continue
		}
		if target := b.At(to); target == nil || target.Color != piece.Color {
			moves = append(moves, to)
		}
	}
	return moves
}

func rayMoves(b Board, from Position, piece *Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		for to := offset(from, dir); inBounds(to); to = offset(to, dir) {
			target := b.At(to)
			if target == nil {
				moves = append(moves, to)
				continue
			}
			if target.Color != piece.Color {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}
