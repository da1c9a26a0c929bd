// Package vision connects the match core to an external hand detector
// process over websocket. The core sees only a GestureSource; everything
// about frames, landmarks and models stays on the far side of the socket.
package vision

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/server"
)

// DefaultReadingTTL is how long a reading stays valid without a refresh
const DefaultReadingTTL = 500 * time.Millisecond

// reconnectDelay is the pause between dial attempts after a drop
const reconnectDelay = time.Second

// RemoteSource is a non-blocking gesture source backed by a detector feed.
// While disconnected it reports unknown, so the match core degrades to
// dead balls instead of failing.
type RemoteSource struct {
	url    string
	ttl    time.Duration
	logger *log.Logger

	mu    sync.Mutex
	value game.GestureValue
	at    time.Time
}

// NewRemoteSource creates a source reading from the given websocket URL
func NewRemoteSource(url string, ttl time.Duration, logger *log.Logger) *RemoteSource {
	if ttl == 0 {
		ttl = DefaultReadingTTL
	}
	return &RemoteSource{
		url:    url,
		ttl:    ttl,
		logger: logger.WithPrefix("vision"),
		value:  game.GestureUnknown,
	}
}

// Run dials the detector and keeps reading until the context is cancelled,
// reconnecting after drops. Call in its own goroutine.
func (s *RemoteSource) Run(ctx context.Context) error {
	for {
		if err := s.readFeed(ctx); err != nil {
			s.logger.Warn("detector feed lost", "error", err)
		}
		s.clear()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (s *RemoteSource) readFeed(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s.logger.Info("detector connected", "url", s.url)

	// unblock ReadJSON when the context ends
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg server.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}
		if msg.Type != server.MessageTypeGestureReading {
			continue
		}
		var reading server.GestureReadingData
		if err := json.Unmarshal(msg.Data, &reading); err != nil {
			continue
		}
		s.store(reading.Fingers)
	}
}

func (s *RemoteSource) store(fingers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = game.ParseGesture(fingers)
	s.at = time.Now()
}

func (s *RemoteSource) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = game.GestureUnknown
}

// Current implements game.GestureSource
func (s *RemoteSource) Current() game.GestureValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.value.Known() || time.Since(s.at) > s.ttl {
		return game.GestureUnknown
	}
	return s.value
}
