package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"chessrelay/internal/engine"
	"chessrelay/internal/ws"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

const initialClockTime = 10 * time.Minute

// Resolution names how a finished game ended.
type Resolution string

const (
	ResolutionCheckmate   Resolution = "checkmate"
	ResolutionStalemate   Resolution = "stalemate"
	ResolutionResignation Resolution = "resignation"
	ResolutionTimeout     Resolution = "timeout"
)

var (
	ErrGameFull      = errors.New("game is full")
	ErrGameOver      = errors.New("game is over")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNotAuthorized = errors.New("not authorized to join this game")
)

// GameConnections holds the websocket connections observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{connections: make(map[string]*websocket.Conn)}
}

// Game is one online game: the canonical engine state, the seats, the
// clocks and the connections to broadcast to. The mutex serializes move
// submissions, so a second concurrent move always sees the post-first
// state and is rejected by the engine as out of turn or illegal.
type Game struct {
	ID string

	mu         sync.Mutex
	state      engine.GameState
	resolution Resolution
	winner     engine.Color // empty for stalemate
	whiteID    string
	blackID    string

	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	flagTimer   *time.Timer
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		state:       engine.NewGame(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(initialClockTime),
		blackClock:  NewClock(initialClockTime),
	}
}

// CapturedPieces tallies what each side has taken, derived from history.
type CapturedPieces struct {
	White []engine.Piece `json:"white"`
	Black []engine.Piece `json:"black"`
}

// GamePlayers is the seat assignment sent to clients.
type GamePlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// ClientState is the full snapshot broadcast after every accepted move:
// the engine state plus everything the boards-and-clocks UI needs.
type ClientState struct {
	engine.GameState
	IsCheck        bool           `json:"isCheck"`
	Resolution     Resolution     `json:"resolution,omitempty"`
	Winner         engine.Color   `json:"winner,omitempty"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Players        GamePlayers    `json:"players"`
}

// AddPlayer seats a player: white first, then black. Seating the same
// player again returns their existing color so reconnects are harmless.
func (g *Game) AddPlayer(playerID string) (engine.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch playerID {
	case g.whiteID:
		return engine.White, nil
	case g.blackID:
		return engine.Black, nil
	}
	if g.whiteID == "" {
		g.whiteID = playerID
		return engine.White, nil
	}
	if g.blackID == "" {
		g.blackID = playerID
		// Both seats filled: the game is on, white's clock runs.
		g.startClock(engine.White)
		return engine.Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerColorLocked(playerID) != ""
}

func (g *Game) playerColorLocked(playerID string) engine.Color {
	if playerID != "" && playerID == g.whiteID {
		return engine.White
	}
	if playerID != "" && playerID == g.blackID {
		return engine.Black
	}
	return ""
}

func (g *Game) canSpectateLocked() bool {
	return g.whiteID == "" || g.blackID == ""
}

// State returns the current client snapshot.
func (g *Game) State() ClientState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clientStateLocked()
}

func (g *Game) clientStateLocked() ClientState {
	captured := CapturedPieces{White: []engine.Piece{}, Black: []engine.Piece{}}
	for _, mv := range g.state.History {
		if mv.Captured == nil {
			continue
		}
		if mv.Turn == engine.White {
			captured.White = append(captured.White, *mv.Captured)
		} else {
			captured.Black = append(captured.Black, *mv.Captured)
		}
	}
	return ClientState{
		GameState:      g.state,
		IsCheck:        engine.IsKingInCheck(g.state.Board, g.state.Turn),
		Resolution:     g.resolution,
		Winner:         g.winner,
		CapturedPieces: captured,
		Players: GamePlayers{
			White: ClientPlayer{ID: g.whiteID, Color: engine.White, TimeLeft: g.whiteClock.Remaining().Milliseconds()},
			Black: ClientPlayer{ID: g.blackID, Color: engine.Black, TimeLeft: g.blackClock.Remaining().Milliseconds()},
		},
	}
}

// MakeMove validates and applies one move submission. The whole
// validate-then-apply sequence runs under the game lock, so submissions
// are strictly serialized per game.
func (g *Game) MakeMove(playerID string, from, to engine.Position, promotion engine.PieceKind) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolution != "" {
		return ErrGameOver
	}
	color := g.playerColorLocked(playerID)
	if color == "" {
		return ErrNotInGame
	}
	if color != g.state.Turn {
		return ErrNotYourTurn
	}

	next, err := engine.ApplyMove(g.state, from, to, promotion)
	if err != nil {
		return err
	}
	g.state = next

	g.clockFor(color).Stop()
	g.stopFlagTimer()

	switch {
	case engine.IsCheckmate(next.Board, next.Turn, next.CastlingRights, next.EnPassantTarget):
		g.resolution = ResolutionCheckmate
		g.winner = color
	case engine.IsStalemate(next.Board, next.Turn, next.CastlingRights, next.EnPassantTarget):
		g.resolution = ResolutionStalemate
	default:
		g.startClock(next.Turn)
	}

	go g.broadcastState()
	return nil
}

// Resign ends the game in the opponent's favor.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolution != "" {
		return ErrGameOver
	}
	color := g.playerColorLocked(playerID)
	if color == "" {
		return ErrNotInGame
	}
	g.resolution = ResolutionResignation
	g.winner = color.Opponent()
	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.stopFlagTimer()

	go g.broadcastState()
	return nil
}

func (g *Game) clockFor(c engine.Color) *Clock {
	if c == engine.White {
		return g.whiteClock
	}
	return g.blackClock
}

// startClock starts c's clock and arms a timer for its flag falling.
func (g *Game) startClock(c engine.Color) {
	clock := g.clockFor(c)
	clock.Start()
	g.stopFlagTimer()
	g.flagTimer = time.AfterFunc(clock.Remaining(), func() {
		g.flagFall(c)
	})
}

func (g *Game) stopFlagTimer() {
	if g.flagTimer != nil {
		g.flagTimer.Stop()
		g.flagTimer = nil
	}
}

func (g *Game) flagFall(c engine.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// The move may have landed just before the timer fired.
	if g.resolution != "" || g.clockFor(c).Remaining() > 0 {
		return
	}
	g.clockFor(c).Stop()
	g.resolution = ResolutionTimeout
	g.winner = c.Opponent()

	go g.broadcastState()
}

// RegisterConnection attaches a websocket to the game. Players always may;
// anyone else is admitted as a read-only spectator while a seat is free.
// A duplicate connection for the same player is rejected in favor of the
// existing one.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	authorized := g.playerColorLocked(playerID) != "" || g.canSpectateLocked()
	g.mu.Unlock()

	if !authorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

// broadcastState sends the current snapshot to every connection. Writes
// happen outside both locks; connections that fail are dropped.
func (g *Game) broadcastState() {
	state := g.State()

	g.connections.mu.Lock()
	conns := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		conns[playerID] = conn
	}
	g.connections.mu.Unlock()

	var failed []string
	for playerID, conn := range conns {
		if err := sendGameState(conn, state); err != nil {
			log.Warnf("game %s: dropping connection for %s: %v", g.ID, playerID, err)
			failed = append(failed, playerID)
		}
	}
	if len(failed) > 0 {
		g.connections.mu.Lock()
		for _, playerID := range failed {
			delete(g.connections.connections, playerID)
		}
		g.connections.mu.Unlock()
	}
}

func sendGameState(conn *websocket.Conn, state ClientState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}
	return conn.WriteJSON(ws.Message{Type: ws.MessageTypeGameState, Payload: payload})
}
