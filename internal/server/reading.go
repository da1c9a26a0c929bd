package server

import (
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/handcricket/internal/game"
)

// ReadingCache holds the latest detector observation and serves it to the
// match core as a non-blocking GestureSource. Readings expire after a TTL
// so a stalled detector degrades to "no hand" instead of freezing the last
// count.
type ReadingCache struct {
	mu    sync.Mutex
	value game.GestureValue
	at    time.Time
	ttl   time.Duration
	clock quartz.Clock
}

// NewReadingCache creates a cache with the given staleness TTL
func NewReadingCache(ttl time.Duration, clock quartz.Clock) *ReadingCache {
	return &ReadingCache{
		value: game.GestureUnknown,
		ttl:   ttl,
		clock: clock,
	}
}

// Store records a raw finger count from the detector. Out-of-range counts
// collapse to unknown.
func (c *ReadingCache) Store(fingers int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = game.ParseGesture(fingers)
	c.at = c.clock.Now()
}

// Clear drops the current reading, used when the detector disconnects
func (c *ReadingCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = game.GestureUnknown
}

// Current implements game.GestureSource. Returns immediately with the
// latest fresh reading or unknown.
func (c *ReadingCache) Current() game.GestureValue {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.value.Known() {
		return game.GestureUnknown
	}
	if c.clock.Now().Sub(c.at) > c.ttl {
		return game.GestureUnknown
	}
	return c.value
}
