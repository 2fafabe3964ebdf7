package model

import (
	"fmt"
	"sync"
	"time"
)

// QueuedPlayer is one matchmaking entrant.
type QueuedPlayer struct {
	Player   Player
	JoinedAt time.Time
}

// Queue is the matchmaking queue: enqueue, cancel, and dequeue the pair
// that has waited longest.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{players: []QueuedPlayer{}}
}

func (q *Queue) Add(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.Player.ID == player.ID {
			return fmt.Errorf("player %s already in queue", player.ID)
		}
	}
	q.players = append(q.players, QueuedPlayer{Player: player, JoinedAt: time.Now()})
	return nil
}

// Remove cancels a waiting entrant. It reports whether the player was in
// the queue.
func (q *Queue) Remove(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.Player.ID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// NextPair pops the two longest-waiting players. It reports false when
// fewer than two are queued.
func (q *Queue) NextPair() (Player, Player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return Player{}, Player{}, false
	}
	p1, p2 := q.players[0].Player, q.players[1].Player
	q.players = q.players[2:]
	return p1, p2, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
