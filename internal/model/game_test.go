package model

import (
	"errors"
	"testing"

	"chessrelay/internal/engine"
)

var (
	e2 = engine.Position{Row: 6, Col: 4}
	e4 = engine.Position{Row: 4, Col: 4}
	e5 = engine.Position{Row: 3, Col: 4}
	e7 = engine.Position{Row: 1, Col: 4}
)

func seatedGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("test-game")
	if color, err := g.AddPlayer("alice"); err != nil || color != engine.White {
		t.Fatalf("seat alice: color=%s err=%v", color, err)
	}
	if color, err := g.AddPlayer("bob"); err != nil || color != engine.Black {
		t.Fatalf("seat bob: color=%s err=%v", color, err)
	}
	return g
}

func TestAddPlayer(t *testing.T) {
	g := seatedGame(t)

	if _, err := g.AddPlayer("carol"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("third seat: got %v, want ErrGameFull", err)
	}
	// Re-adding a seated player reports their existing color.
	if color, err := g.AddPlayer("bob"); err != nil || color != engine.Black {
		t.Fatalf("re-seat bob: color=%s err=%v", color, err)
	}
}

func TestMakeMoveAuthorization(t *testing.T) {
	g := seatedGame(t)

	if err := g.MakeMove("carol", e2, e4, ""); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("outsider move: got %v, want ErrNotInGame", err)
	}
	if err := g.MakeMove("bob", e7, e5, ""); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out-of-turn move: got %v, want ErrNotYourTurn", err)
	}
	if err := g.MakeMove("alice", e2, e4, ""); err != nil {
		t.Fatalf("legal move rejected: %v", err)
	}

	state := g.State()
	if state.Turn != engine.Black {
		t.Fatalf("turn = %s, want black", state.Turn)
	}
	if len(state.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(state.History))
	}

	// Alice moving again must now see the post-move turn and be rejected.
	if err := g.MakeMove("alice", e4, e5, ""); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("stale second move: got %v, want ErrNotYourTurn", err)
	}
}

func TestMakeMoveRejectsIllegalWithoutStateChange(t *testing.T) {
	g := seatedGame(t)
	before := g.State()

	err := g.MakeMove("alice", e2, e5, "") // three squares forward
	if !errors.Is(err, engine.ErrIllegalMove) {
		t.Fatalf("got %v, want engine.ErrIllegalMove", err)
	}

	after := g.State()
	if len(after.History) != len(before.History) || after.Turn != before.Turn {
		t.Fatal("rejected move must leave the game state untouched")
	}
}

func TestResign(t *testing.T) {
	g := seatedGame(t)

	if err := g.Resign("carol"); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("outsider resign: got %v, want ErrNotInGame", err)
	}
	if err := g.Resign("bob"); err != nil {
		t.Fatalf("resign: %v", err)
	}

	state := g.State()
	if state.Resolution != ResolutionResignation {
		t.Fatalf("resolution = %s, want resignation", state.Resolution)
	}
	if state.Winner != engine.White {
		t.Fatalf("winner = %s, want white", state.Winner)
	}
	if err := g.MakeMove("alice", e2, e4, ""); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after resignation: got %v, want ErrGameOver", err)
	}
}

func TestCheckmateResolvesGame(t *testing.T) {
	g := seatedGame(t)

	moves := []struct {
		player   string
		from, to engine.Position
	}{
		{"alice", engine.Position{Row: 6, Col: 5}, engine.Position{Row: 5, Col: 5}}, // f2-f3
		{"bob", engine.Position{Row: 1, Col: 4}, engine.Position{Row: 3, Col: 4}},   // e7-e5
		{"alice", engine.Position{Row: 6, Col: 6}, engine.Position{Row: 4, Col: 6}}, // g2-g4
		{"bob", engine.Position{Row: 0, Col: 3}, engine.Position{Row: 4, Col: 7}},   // Qd8-h4
	}
	for _, m := range moves {
		if err := g.MakeMove(m.player, m.from, m.to, ""); err != nil {
			t.Fatalf("move %v-%v: %v", m.from, m.to, err)
		}
	}

	state := g.State()
	if state.Resolution != ResolutionCheckmate {
		t.Fatalf("resolution = %s, want checkmate", state.Resolution)
	}
	if state.Winner != engine.Black {
		t.Fatalf("winner = %s, want black", state.Winner)
	}
	if !state.IsCheck {
		t.Fatal("mated side must be reported in check")
	}
}

func TestCapturedPiecesTally(t *testing.T) {
	g := seatedGame(t)

	for _, m := range []struct {
		player   string
		from, to engine.Position
	}{
		{"alice", e2, e4},
		{"bob", engine.Position{Row: 1, Col: 3}, engine.Position{Row: 3, Col: 3}}, // d7-d5
		{"alice", e4, engine.Position{Row: 3, Col: 3}},                            // exd5
	} {
		if err := g.MakeMove(m.player, m.from, m.to, ""); err != nil {
			t.Fatalf("move: %v", err)
		}
	}

	state := g.State()
	if len(state.CapturedPieces.White) != 1 || state.CapturedPieces.White[0].Kind != engine.Pawn {
		t.Fatalf("white captures = %v, want one black pawn", state.CapturedPieces.White)
	}
	if len(state.CapturedPieces.Black) != 0 {
		t.Fatalf("black captures = %v, want none", state.CapturedPieces.Black)
	}
}
