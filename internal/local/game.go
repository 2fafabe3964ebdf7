// Package local is the offline play mode: a degenerate single-process
// coordinator over the same rules engine the relay server uses. Both
// players share one process, so there are no clocks, seats or sockets.
// The frontend selects a square, shows its legal moves, and moves.
package local

import (
	"errors"

	"chessrelay/internal/engine"
)

// Result names how a finished local game ended.
type Result string

const (
	ResultCheckmate Result = "checkmate"
	ResultStalemate Result = "stalemate"
)

var ErrGameOver = errors.New("game is over")

// Game is one offline game. It is not safe for concurrent use; a local
// frontend drives it from a single goroutine.
type Game struct {
	state  engine.GameState
	result Result
	winner engine.Color
}

func New() *Game {
	return &Game{state: engine.NewGame()}
}

// State returns the current snapshot. Snapshots are immutable; callers
// may keep them across moves.
func (g *Game) State() engine.GameState {
	return g.state
}

// LegalMoves returns the destinations for the piece on from, or an empty
// list when the square is empty or holds the idle side's piece (the UI
// highlights nothing in either case).
func (g *Game) LegalMoves(from engine.Position) ([]engine.Position, error) {
	if g.result != "" {
		return []engine.Position{}, nil
	}
	moves, err := engine.LegalMoves(g.state.Board, from, g.state.CastlingRights, g.state.EnPassantTarget)
	if err != nil {
		return nil, err
	}
	if piece := g.state.Board.At(from); piece != nil && piece.Color != g.state.Turn {
		return []engine.Position{}, nil
	}
	return moves, nil
}

// Move applies one move for the side to move.
func (g *Game) Move(from, to engine.Position, promotion engine.PieceKind) error {
	if g.result != "" {
		return ErrGameOver
	}
	next, err := engine.ApplyMove(g.state, from, to, promotion)
	if err != nil {
		return err
	}
	g.state = next

	switch {
	case engine.IsCheckmate(next.Board, next.Turn, next.CastlingRights, next.EnPassantTarget):
		g.result = ResultCheckmate
		g.winner = next.Turn.Opponent()
	case engine.IsStalemate(next.Board, next.Turn, next.CastlingRights, next.EnPassantTarget):
		g.result = ResultStalemate
	}
	return nil
}

// Outcome reports the result once the game has ended. winner is empty for
// a stalemate.
func (g *Game) Outcome() (result Result, winner engine.Color, over bool) {
	return g.result, g.winner, g.result != ""
}
