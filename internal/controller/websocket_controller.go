package controller

import (
	"encoding/json"
	"fmt"

	"chessrelay/internal/engine"
	"chessrelay/internal/service"
	"chessrelay/internal/ws"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var validate = validator.New()

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{gameService: gameService}
}

// HandleConnection runs the read loop for one websocket connection.
// Rejected submissions are answered with an error message on the same
// connection; accepted ones are broadcast by the game itself.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("game %s: register connection for %s: %v", gameID, playerID, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read from %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(c, fmt.Sprintf("malformed message: %v", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("malformed move payload: %w", err)
		}
		if err := validate.Struct(move); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		return wsc.gameService.HandleMove(
			gameID, playerID,
			move.From.Position(), move.To.Position(),
			engine.PieceKind(move.Promotion),
		)

	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, reason string) {
	payload, err := json.Marshal(ws.ErrorPayload{Message: reason})
	if err != nil {
		return
	}
	if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload}); err != nil {
		log.Debugf("send error message: %v", err)
	}
}
