package model

import "chessrelay/internal/engine"

// Player is a participant known only by the opaque ID the client presents.
type Player struct {
	ID string
}

// ClientPlayer is the per-seat view sent to clients: who sits there and
// how much clock they have left, in milliseconds.
type ClientPlayer struct {
	ID       string       `json:"id"`
	Color    engine.Color `json:"color"`
	TimeLeft int64        `json:"timeLeft"`
}

// MatchFoundEvent tells a queued player which game they were paired into.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  engine.Color `json:"color"`
}
