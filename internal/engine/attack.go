package engine

import "fmt"

// IsSquareAttacked reports whether any piece of byColor attacks sq.
func IsSquareAttacked(b Board, sq Position, byColor Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Position{Row: row, Col: col}
			piece := b.At(from)
			if piece == nil || piece.Color != byColor {
				continue
			}
			for _, to := range pseudoMoves(b, from, true) {
				if to == sq {
					return true
				}
			}
		}
	}
	return false
}

// IsKingInCheck reports whether color's king is attacked. Every reachable
// board has exactly one king per side; a missing king means a caller built
// an invalid position, so this panics rather than answering "not in check".
func IsKingInCheck(b Board, color Color) bool {
	return IsSquareAttacked(b, findKing(b, color), color.Opponent())
}

func findKing(b Board, color Color) Position {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p != nil && p.Kind == King && p.Color == color {
				return Position{Row: row, Col: col}
			}
		}
	}
	panic(fmt.Sprintf("engine: no %s king on board", color))
}
