// Package server implements the gesture gateway: a websocket server that
// feeds detector readings into the match core and streams match events out
// to spectators. The gateway owns the match controller and its frame pump;
// vision and presentation processes stay strictly outside the core.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/matchid"
)

// DefaultReadingTTL is how long a detector reading stays valid
const DefaultReadingTTL = 500 * time.Millisecond

// Options configures the gateway
type Options struct {
	Match      game.Config
	FrameRate  int
	ReadingTTL time.Duration
}

// Server is the gesture gateway
type Server struct {
	logger     *log.Logger
	matchID    string
	controller *game.MatchController
	pump       *game.FramePump
	cache      *ReadingCache
	upgrader   websocket.Upgrader
	httpServer *http.Server

	mu         sync.Mutex
	spectators map[*spectator]struct{}
}

// spectator is one /watch connection. Gorilla connections allow a single
// writer, so each spectator serialises its own writes.
type spectator struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *spectator) send(msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

// NewServer creates a gateway hosting a single match session
func NewServer(logger *log.Logger, opts Options, rand game.RandSource, clock quartz.Clock) *Server {
	if opts.ReadingTTL == 0 {
		opts.ReadingTTL = DefaultReadingTTL
	}

	logger = logger.WithPrefix("gateway")
	cache := NewReadingCache(opts.ReadingTTL, clock)
	controller := game.NewMatchController(opts.Match, cache, rand, logger)
	pump := game.NewFramePump(controller, opts.FrameRate, clock, logger)

	s := &Server{
		logger:     logger,
		matchID:    matchid.New(),
		controller: controller,
		pump:       pump,
		cache:      cache,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		spectators: make(map[*spectator]struct{}),
	}

	controller.EventBus().Subscribe(game.SubscriberFunc(s.broadcastEvent))
	return s
}

// MatchID returns the session's match identifier
func (s *Server) MatchID() string {
	return s.matchID
}

// Run serves websocket endpoints and drives the frame pump until the
// context is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/vision", s.handleVision)
	mux.HandleFunc("/watch", s.handleWatch)

	s.httpServer = &http.Server{Addr: addr, Handler: mux}

	s.logger.Info("gateway listening", "addr", addr, "matchId", s.matchID)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.pump.Run(ctx)
	})

	g.Go(func() error {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

// handleVision accepts a detector connection streaming gesture readings.
// Only the latest reading matters; the cache expires stale ones.
func (s *Server) handleVision(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("vision upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	defer s.cache.Clear()

	s.logger.Info("detector connected", "remote", conn.RemoteAddr())

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			s.logger.Info("detector disconnected", "error", err)
			return
		}
		if msg.Type != MessageTypeGestureReading {
			continue
		}
		var reading GestureReadingData
		if err := json.Unmarshal(msg.Data, &reading); err != nil {
			s.logger.Warn("bad gesture reading", "error", err)
			continue
		}
		s.cache.Store(reading.Fingers)
	}
}

// handleWatch accepts a spectator connection: match events flow out,
// control signals flow in
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("watch upgrade failed", "error", err)
		return
	}

	spec := &spectator{conn: conn}
	s.addSpectator(spec)
	defer func() {
		s.removeSpectator(spec)
		conn.Close()
	}()

	s.logger.Info("spectator connected", "remote", conn.RemoteAddr())

	if msg, err := SnapshotMessage(s.matchID, s.controller.Snapshot()); err == nil {
		if err := spec.send(msg); err != nil {
			return
		}
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			s.logger.Info("spectator disconnected", "error", err)
			return
		}
		if msg.Type != MessageTypeControl {
			continue
		}
		var control ControlData
		if err := json.Unmarshal(msg.Data, &control); err != nil {
			s.sendError(spec, "bad_control", "malformed control message")
			continue
		}
		if signal := ParseSignal(control.Signal); signal != game.SignalNone {
			s.logger.Debug("control signal", "signal", control.Signal)
			s.pump.Signal(signal)
		}
	}
}

// broadcastEvent fans a match event out to every spectator. Runs on the
// frame pump goroutine.
func (s *Server) broadcastEvent(event game.Event) {
	msg, err := MessageFromEvent(event)
	if err != nil || msg == nil {
		return
	}

	s.mu.Lock()
	specs := make([]*spectator, 0, len(s.spectators))
	for spec := range s.spectators {
		specs = append(specs, spec)
	}
	s.mu.Unlock()

	for _, spec := range specs {
		if err := spec.send(msg); err != nil {
			s.removeSpectator(spec)
		}
	}
}

func (s *Server) sendError(spec *spectator, code, message string) {
	if msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message}); err == nil {
		_ = spec.send(msg)
	}
}

func (s *Server) addSpectator(spec *spectator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spectators[spec] = struct{}{}
}

func (s *Server) removeSpectator(spec *spectator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spectators, spec)
}
