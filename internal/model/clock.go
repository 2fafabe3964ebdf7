package model

import (
	"sync"
	"time"
)

// Clock is one side's countdown clock. It only ticks while running; time
// is charged on Stop or measured live by Remaining.
type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	lastStarted time.Time
	isRunning   bool
}

func NewClock(initial time.Duration) *Clock {
	return &Clock{timeLeft: initial}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = time.Now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft -= time.Since(c.lastStarted)
		c.isRunning = false
	}
}

// Remaining returns the time left, never below zero.
func (c *Clock) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := c.timeLeft
	if c.isRunning {
		left -= time.Since(c.lastStarted)
	}
	if left < 0 {
		return 0
	}
	return left
}
