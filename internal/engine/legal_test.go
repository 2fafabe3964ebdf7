package engine

import "testing"

func fullRights() CastlingRights {
	return CastlingRights{
		White: SideRights{KingSide: true, QueenSide: true},
		Black: SideRights{KingSide: true, QueenSide: true},
	}
}

func TestIsSquareAttacked(t *testing.T) {
	var b Board
	place(&b, Rook, Black, sq(t, "a8"))
	place(&b, Pawn, Black, sq(t, "e5"))
	place(&b, Knight, White, sq(t, "g1"))

	tests := []struct {
		name   string
		square string
		by     Color
		want   bool
	}{
		{"rook down the file", "a1", Black, true},
		{"rook along the rank", "h8", Black, true},
		{"rook blocked squares are not rank-adjacent here", "b7", Black, false},
		{"pawn attacks diagonally", "d4", Black, true},
		{"pawn attacks diagonally other side", "f4", Black, true},
		{"pawn does not attack forward", "e4", Black, false},
		{"knight attack", "e2", White, true},
		{"own color does not count", "e2", Black, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSquareAttacked(b, sq(t, tt.square), tt.by); got != tt.want {
				t.Fatalf("IsSquareAttacked(%s by %s) = %v, want %v", tt.square, tt.by, got, tt.want)
			}
		})
	}
}

func TestIsKingInCheck(t *testing.T) {
	var b Board
	place(&b, King, White, sq(t, "e1"))
	place(&b, King, Black, sq(t, "e8"))
	place(&b, Rook, Black, sq(t, "e4"))

	if !IsKingInCheck(b, White) {
		t.Fatal("white king on an open file with a black rook should be in check")
	}
	if IsKingInCheck(b, Black) {
		t.Fatal("black king is not attacked")
	}
}

func TestIsKingInCheckPanicsWithoutKing(t *testing.T) {
	var b Board
	place(&b, King, White, sq(t, "e1"))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a board with no black king")
		}
	}()
	IsKingInCheck(b, Black)
}

func TestLegalMovesErrors(t *testing.T) {
	state := NewGame()

	if _, err := LegalMoves(state.Board, Position{Row: -1, Col: 3}, state.CastlingRights, nil); err != ErrOffBoard {
		t.Fatalf("out-of-range origin: got %v, want ErrOffBoard", err)
	}
	moves, err := LegalMoves(state.Board, sq(t, "d4"), state.CastlingRights, nil)
	if err != nil {
		t.Fatalf("empty origin: unexpected error %v", err)
	}
	if len(moves) != 0 {
		t.Fatalf("empty origin: got %v, want no moves", moves)
	}
}

func TestLegalMovesInitialPosition(t *testing.T) {
	state := NewGame()

	tests := []struct {
		from string
		want []string
	}{
		{"e2", []string{"e3", "e4"}},
		{"b1", []string{"a3", "c3"}},
		{"e1", []string{}}, // boxed in, and castling paths are occupied
		{"d1", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			got, err := LegalMoves(state.Board, sq(t, tt.from), state.CastlingRights, state.EnPassantTarget)
			if err != nil {
				t.Fatalf("LegalMoves: %v", err)
			}
			wantMoves(t, got, squares(t, tt.want...))
		})
	}
}

func TestPinnedPieceHasNoMoves(t *testing.T) {
	var b Board
	place(&b, King, White, sq(t, "e1"))
	place(&b, Bishop, White, sq(t, "e2"))
	place(&b, Rook, Black, sq(t, "e8"))
	place(&b, King, Black, sq(t, "a8"))

	got, err := LegalMoves(b, sq(t, "e2"), CastlingRights{}, nil)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("pinned bishop should have no legal moves, got %v", got)
	}
}

func TestCheckedKingMustResolveCheck(t *testing.T) {
	var b Board
	place(&b, King, White, sq(t, "e1"))
	place(&b, Rook, Black, sq(t, "e8"))
	place(&b, King, Black, sq(t, "a8"))

	got, err := LegalMoves(b, sq(t, "e1"), CastlingRights{}, nil)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	// Every destination must leave the e-file.
	for _, m := range got {
		if m.Col == sq(t, "e1").Col {
			t.Fatalf("king may not stay on the attacked file, got %v", got)
		}
	}
	if len(got) == 0 {
		t.Fatal("king has flight squares and should not be stuck")
	}
}

func TestKingSideCastle(t *testing.T) {
	state := NewGame()
	b := state.Board
	b[7][5] = nil // f1
	b[7][6] = nil // g1

	got, err := LegalMoves(b, sq(t, "e1"), state.CastlingRights, nil)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	wantMoves(t, got, squares(t, "f1", "g1"))
}

func TestQueenSideCastle(t *testing.T) {
	state := NewGame()
	b := state.Board
	b[7][1] = nil // b1
	b[7][2] = nil // c1
	b[7][3] = nil // d1

	got, err := LegalMoves(b, sq(t, "e1"), state.CastlingRights, nil)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	wantMoves(t, got, squares(t, "d1", "c1"))
}

func TestCastleDenied(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, b *Board)
		kingSide bool
		want     []string
	}{
		{
			name:     "right already lost",
			setup:    func(t *testing.T, b *Board) {},
			kingSide: false,
			want:     []string{"f1"},
		},
		{
			name: "transit square attacked",
			setup: func(t *testing.T, b *Board) {
				b[1][5] = nil // clear f7 and f2 so the rook sees down to f1
				b[6][5] = nil
				place(b, Rook, Black, sq(t, "f8"))
			},
			kingSide: true,
			want:     []string{}, // stepping onto f1 is also self-check
		},
		{
			name: "king in check",
			setup: func(t *testing.T, b *Board) {
				b[6][4] = nil // clear e2 so the rook gives check
				place(b, Rook, Black, sq(t, "e7"))
			},
			kingSide: true,
			want:     []string{"f1"}, // stepping aside is fine, castling out of check is not
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewGame()
			b := state.Board
			b[7][5] = nil // f1
			b[7][6] = nil // g1
			tt.setup(t, &b)

			rights := fullRights()
			rights.White.KingSide = tt.kingSide

			got, err := LegalMoves(b, sq(t, "e1"), rights, nil)
			if err != nil {
				t.Fatalf("LegalMoves: %v", err)
			}
			wantMoves(t, got, squares(t, tt.want...))
		})
	}
}

func TestEnPassantLegalOnlyBesideJustDoubledPawn(t *testing.T) {
	var b Board
	place(&b, King, White, sq(t, "e1"))
	place(&b, King, Black, sq(t, "e8"))
	place(&b, Pawn, White, sq(t, "e5"))
	place(&b, Pawn, Black, sq(t, "d5"))
	target := sq(t, "d6")

	got, err := LegalMoves(b, sq(t, "e5"), CastlingRights{}, &target)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	wantMoves(t, got, squares(t, "e6", "d6"))

	// Without the target the diagonal is just an empty square.
	got, err = LegalMoves(b, sq(t, "e5"), CastlingRights{}, nil)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	wantMoves(t, got, squares(t, "e6"))
}

func TestSelfCheckInvariant(t *testing.T) {
	// Every legal move of the side to move, applied, must leave its own
	// king out of check. Exercised on a tactical middlegame position.
	state := NewGame()
	for _, m := range [][2]string{
		{"e2", "e4"}, {"e7", "e5"},
		{"g1", "f3"}, {"b8", "c6"},
		{"f1", "c4"}, {"f8", "c5"},
		{"d2", "d3"}, {"d7", "d6"},
	} {
		next, err := ApplyMove(state, sq(t, m[0]), sq(t, m[1]), "")
		if err != nil {
			t.Fatalf("setup move %s-%s: %v", m[0], m[1], err)
		}
		state = next
	}

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Position{Row: row, Col: col}
			piece := state.Board.At(from)
			if piece == nil || piece.Color != state.Turn {
				continue
			}
			moves, err := LegalMoves(state.Board, from, state.CastlingRights, state.EnPassantTarget)
			if err != nil {
				t.Fatalf("LegalMoves(%v): %v", from, err)
			}
			for _, to := range moves {
				next, err := ApplyMove(state, from, to, "")
				if err != nil {
					t.Fatalf("ApplyMove(%v->%v) rejected its own legal move: %v", from, to, err)
				}
				if IsKingInCheck(next.Board, piece.Color) {
					t.Fatalf("move %v->%v leaves own king in check", from, to)
				}
			}
		}
	}
}
