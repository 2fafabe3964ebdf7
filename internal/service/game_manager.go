package service

import (
	"errors"
	"sync"
	"time"

	"chessrelay/internal/engine"
	"chessrelay/internal/model"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

const matchmakingInterval = time.Second

// GameManager owns every active game, keyed by game ID, plus the
// matchmaking queue and the channels of players waiting to hear about a
// match.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	pendingMatches   map[string]model.MatchFoundEvent
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
		pendingMatches:   make(map[string]model.MatchFoundEvent),
	}
	go gm.processMatchmaking()
	return gm
}

// processMatchmaking pairs the two longest-waiting entrants into a fresh
// game and notifies both through their registered channels.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(matchmakingInterval)
	defer ticker.Stop()

	for range ticker.C {
		for {
			player1, player2, ok := gm.queue.NextPair()
			if !ok {
				break
			}

			gameID := uuid.New().String()
			game := model.NewGame(gameID)
			p1Color, err := game.AddPlayer(player1.ID)
			if err != nil {
				log.Errorf("matchmaking: seating %s: %v", player1.ID, err)
				continue
			}
			p2Color, err := game.AddPlayer(player2.ID)
			if err != nil {
				log.Errorf("matchmaking: seating %s: %v", player2.ID, err)
				continue
			}

			gm.mu.Lock()
			gm.games[gameID] = game
			gm.notifyLocked(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
			gm.notifyLocked(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
			gm.mu.Unlock()

			log.Infof("matchmaking: paired %s and %s into game %s", player1.ID, player2.ID, gameID)
		}
	}
}

// notifyLocked delivers a match event to the player's registered channel,
// or parks it until the player polls again.
func (gm *GameManager) notifyLocked(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		gm.pendingMatches[playerID] = event
		return
	}
	select {
	case ch <- event:
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Warnf("matchmaking: channel for player %s full", playerID)
		gm.pendingMatches[playerID] = event
	}
}

// RegisterMatchmakingChannel registers where to deliver a player's match
// notification, replacing (and closing) any earlier registration. ch must
// have capacity for one event; a match found before this registration is
// delivered through it immediately.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if event, ok := gm.pendingMatches[playerID]; ok {
		delete(gm.pendingMatches, playerID)
		ch <- event
		close(ch)
		return
	}
	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	// The registrant owns the channel; only forget it here.
	delete(gm.matchingChannels, playerID)
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.games[gameID] = model.NewGame(gameID)
	return nil
}

func (gm *GameManager) getGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (engine.Color, error) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.Add(model.Player{ID: playerID})
}

// LeaveMatchmaking cancels a queued player and reports whether they were
// actually waiting.
func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.ClientState, error) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.State(), nil
}

func (gm *GameManager) MakeMove(gameID, playerID string, from, to engine.Position, promotion engine.PieceKind) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, from, to, promotion)
}

func (gm *GameManager) Resign(gameID, playerID string) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}
