package ws

import (
	"encoding/json"

	"chessrelay/internal/engine"
)

// MessageType discriminates the websocket envelope.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeResign    MessageType = "resign"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope every websocket frame carries.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Coordinate is a wire-side board position, range-checked before it
// reaches the engine.
type Coordinate struct {
	Row int `json:"row" validate:"min=0,max=7"`
	Col int `json:"col" validate:"min=0,max=7"`
}

func (c Coordinate) Position() engine.Position {
	return engine.Position{Row: c.Row, Col: c.Col}
}

// MovePayload is a move submission: from, to, and the promotion kind when
// a pawn reaches the last rank.
type MovePayload struct {
	From      Coordinate `json:"from"`
	To        Coordinate `json:"to"`
	Promotion string     `json:"promotion" validate:"omitempty,oneof=queen rook bishop knight"`
}

// ErrorPayload carries the rejection reason back to the submitting client.
type ErrorPayload struct {
	Message string `json:"message"`
}
