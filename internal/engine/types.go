package engine

import "fmt"

// Color identifies a side. The string values are what the browser
// clients render and send back, so they go over the wire as-is.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind identifies a piece type.
type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

func (k PieceKind) notation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is an immutable kind/color pair. Pieces are never modified after
// creation, which lets successive boards share piece pointers.
type Piece struct {
	Kind  PieceKind `json:"kind"`
	Color Color     `json:"color"`
}

// Position is a board coordinate. Row 0 is black's back rank, row 7 is
// white's back rank.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the position in algebraic form: file = 'a'+col, rank = 8-row.
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

func (p Position) file() string {
	return fmt.Sprintf("%c", 'a'+p.Col)
}

// Board is an 8x8 grid of squares, indexed [row][col]. A nil entry is an
// empty square. Board has value semantics: assigning or passing one copies
// the grid, so a transition never aliases the board it started from.
type Board [8][8]*Piece

// At returns the piece on sq, or nil for an empty square. sq must be on
// the board.
func (b *Board) At(sq Position) *Piece {
	return b[sq.Row][sq.Col]
}

// SideRights tracks one side's castling eligibility.
type SideRights struct {
	KingSide  bool `json:"kingSide"`
	QueenSide bool `json:"queenSide"`
}

// CastlingRights tracks both sides. Rights only ever go from true to false.
type CastlingRights struct {
	White SideRights `json:"white"`
	Black SideRights `json:"black"`
}

func (cr CastlingRights) side(c Color) SideRights {
	if c == White {
		return cr.White
	}
	return cr.Black
}

// SimpleMove is a bare from/to pair, used for the last-move highlight.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Move is one history record. Piece carries the post-promotion identity;
// Captured is nil when nothing was taken.
type Move struct {
	Turn     Color    `json:"turn"`
	From     Position `json:"from"`
	To       Position `json:"to"`
	Piece    Piece    `json:"piece"`
	Captured *Piece   `json:"captured"`
	Notation string   `json:"notation"`
}

// GameState is a full snapshot of one game. Every applied move produces a
// fresh GameState; published states are never mutated, so consumers may
// hold on to them.
type GameState struct {
	Board           Board          `json:"board"`
	Turn            Color          `json:"turn"`
	LastMove        *SimpleMove    `json:"lastMove"`
	History         []Move         `json:"history"`
	CastlingRights  CastlingRights `json:"castlingRights"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
}
