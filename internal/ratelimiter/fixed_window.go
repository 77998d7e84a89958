package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowLimiter counts requests per client in a fixed window. Counts are
// dropped wholesale when the window elapses, so a burst straddling the
// boundary can briefly exceed the configured rate.
type FixedWindowLimiter struct {
	mu      sync.RWMutex
	clients map[string]int
	limit   int
	window  time.Duration
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		clients: make(map[string]int),
		limit:   limit,
		window:  window,
	}
}

func (rl *FixedWindowLimiter) Allow(clientID string) (bool, time.Duration) {
	rl.mu.RLock()
	count, exists := rl.clients[clientID]
	rl.mu.RUnlock()

	if !exists || count < rl.limit {
		rl.mu.Lock()
		if !exists {
			go rl.resetCount(clientID)
		}
		rl.clients[clientID]++
		rl.mu.Unlock()

		return true, 0
	}

	return false, rl.window
}

func (rl *FixedWindowLimiter) resetCount(clientID string) {
	time.Sleep(rl.window)
	rl.mu.Lock()
	delete(rl.clients, clientID)
	rl.mu.Unlock()
}
