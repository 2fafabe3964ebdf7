package engine

import "errors"

var (
	// ErrOffBoard is returned for coordinates outside [0,8).
	ErrOffBoard = errors.New("position off board")
	// ErrEmptySquare is returned when the origin square holds no piece.
	ErrEmptySquare = errors.New("no piece on origin square")
	// ErrOutOfTurn is returned when the piece on the origin square does
	// not belong to the side to move.
	ErrOutOfTurn = errors.New("piece does not belong to side to move")
	// ErrIllegalMove is returned when the destination is not among the
	// origin piece's legal moves.
	ErrIllegalMove = errors.New("illegal move")
	// ErrBadPromotion is returned for a promotion to anything other than
	// queen, rook, bishop or knight.
	ErrBadPromotion = errors.New("invalid promotion piece")
)

// ApplyMove validates the move against state and, if legal, returns the
// successor state. Validation and application are one atomic operation:
// there is no way to apply an unchecked move. The input state is never
// mutated, so callers may keep it (and every earlier state) as history.
//
// promotion names the piece a pawn reaching the last rank becomes; it is
// ignored for any other move. A promoting pawn with no kind supplied
// becomes a queen.
func ApplyMove(state GameState, from, to Position, promotion PieceKind) (GameState, error) {
	if !inBounds(from) || !inBounds(to) {
		return GameState{}, ErrOffBoard
	}
	piece := state.Board.At(from)
	if piece == nil {
		return GameState{}, ErrEmptySquare
	}
	if piece.Color != state.Turn {
		return GameState{}, ErrOutOfTurn
	}

	legal, err := LegalMoves(state.Board, from, state.CastlingRights, state.EnPassantTarget)
	if err != nil {
		return GameState{}, err
	}
	allowed := false
	for _, m := range legal {
		if m == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return GameState{}, ErrIllegalMove
	}

	promotion, err = resolvePromotion(piece, to, promotion)
	if err != nil {
		return GameState{}, err
	}

	captured := capturedPiece(state.Board, piece, from, to)
	notation := moveNotation(state.Board, piece, from, to, captured, promotion)
	board := applySpecialMove(state.Board, from, to, promotion)

	moved := *piece
	if promotion != "" {
		moved = Piece{Kind: promotion, Color: piece.Color}
	}

	history := make([]Move, len(state.History)+1)
	copy(history, state.History)
	history[len(state.History)] = Move{
		Turn:     piece.Color,
		From:     from,
		To:       to,
		Piece:    moved,
		Captured: captured,
		Notation: notation,
	}

	return GameState{
		Board:           board,
		Turn:            state.Turn.Opponent(),
		LastMove:        &SimpleMove{From: from, To: to},
		History:         history,
		CastlingRights:  nextCastlingRights(state.CastlingRights, piece, from, to, captured),
		EnPassantTarget: nextEnPassantTarget(piece, from, to),
	}, nil
}

// applySpecialMove executes an already-validated move on a copy of b and
// returns the copy. It recognizes the two moves that touch more than two
// squares: castling (king moving two files) relocates the rook as well,
// and en passant (pawn changing file onto an empty square) removes the
// bypassed pawn. Everything else is move/capture/promotion on two squares.
func applySpecialMove(b Board, from, to Position, promotion PieceKind) Board {
	piece := b.At(from)

	if piece.Kind == King && abs(to.Col-from.Col) == 2 {
		b[to.Row][to.Col] = piece
		b[from.Row][from.Col] = nil
		switch to.Col {
		case kingSideCol:
			b[from.Row][kingSideRook] = b[from.Row][kingRookCol]
			b[from.Row][kingRookCol] = nil
		case queenSideCol:
			b[from.Row][queenSideRook] = b[from.Row][queenRookCol]
			b[from.Row][queenRookCol] = nil
		}
		return b
	}

	if piece.Kind == Pawn && to.Col != from.Col && b.At(to) == nil {
		// En passant: the captured pawn is beside the capturer, not on
		// the destination square.
		b[from.Row][to.Col] = nil
	}

	b[from.Row][from.Col] = nil
	if promotion != "" {
		b[to.Row][to.Col] = &Piece{Kind: promotion, Color: piece.Color}
	} else {
		b[to.Row][to.Col] = piece
	}
	return b
}

func resolvePromotion(piece *Piece, to Position, promotion PieceKind) (PieceKind, error) {
	if piece.Kind != Pawn || to.Row != promotionRow(piece.Color) {
		return "", nil
	}
	switch promotion {
	case "":
		return Queen, nil
	case Queen, Rook, Bishop, Knight:
		return promotion, nil
	default:
		return "", ErrBadPromotion
	}
}

// capturedPiece resolves what the move takes, looking beside the
// destination for en-passant captures.
func capturedPiece(b Board, piece *Piece, from, to Position) *Piece {
	if target := b.At(to); target != nil {
		return target
	}
	if piece.Kind == Pawn && to.Col != from.Col {
		return b.At(Position{Row: from.Row, Col: to.Col})
	}
	return nil
}

// nextCastlingRights recomputes rights after the move: a king move clears
// both of the mover's rights, a rook leaving its home corner clears that
// side, and a rook captured on its home corner clears the opponent's side.
func nextCastlingRights(rights CastlingRights, piece *Piece, from, to Position, captured *Piece) CastlingRights {
	clearCorner := func(c Color, corner Position) {
		side := &rights.White
		if c == Black {
			side = &rights.Black
		}
		if corner.Row != homeRow(c) {
			return
		}
		switch corner.Col {
		case kingRookCol:
			side.KingSide = false
		case queenRookCol:
			side.QueenSide = false
		}
	}

	switch piece.Kind {
	case King:
		if piece.Color == White {
			rights.White = SideRights{}
		} else {
			rights.Black = SideRights{}
		}
	case Rook:
		clearCorner(piece.Color, from)
	}
	if captured != nil && captured.Kind == Rook {
		clearCorner(captured.Color, to)
	}
	return rights
}

// nextEnPassantTarget is recomputed from scratch each move: set to the
// skipped square iff a pawn just double-stepped, nil otherwise.
func nextEnPassantTarget(piece *Piece, from, to Position) *Position {
	if piece.Kind != Pawn || abs(to.Row-from.Row) != 2 {
		return nil
	}
	return &Position{Row: (from.Row + to.Row) / 2, Col: from.Col}
}

// moveNotation renders the move in the short algebraic style the move
// list displays: O-O / O-O-O for castles, piece letter, file specifier
// for pawn captures, x for captures, destination square, =Q for
// promotions. Disambiguation and check suffixes are not produced.
func moveNotation(b Board, piece *Piece, from, to Position, captured *Piece, promotion PieceKind) string {
	if piece.Kind == King && abs(to.Col-from.Col) == 2 {
		if to.Col == queenSideCol {
			return "O-O-O"
		}
		return "O-O"
	}
	n := piece.Kind.notation()
	if captured != nil {
		if piece.Kind == Pawn {
			n += from.file()
		}
		n += "x"
	}
	n += to.String()
	if promotion != "" {
		n += "=" + promotion.notation()
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
