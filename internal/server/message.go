package server

import (
	"encoding/json"
	"time"

	"github.com/lox/handcricket/internal/game"
)

// MessageType identifies a websocket message
type MessageType string

// Client → server message types
const (
	MessageTypeGestureReading MessageType = "gesture_reading"
	MessageTypeControl        MessageType = "control"
)

// Server → client message types
const (
	MessageTypePhaseChanged     MessageType = "phase_changed"
	MessageTypeRoundResolved    MessageType = "round_resolved"
	MessageTypeInningsConcluded MessageType = "innings_concluded"
	MessageTypeMatchConcluded   MessageType = "match_concluded"
	MessageTypeStateSnapshot    MessageType = "state_snapshot"
	MessageTypeError            MessageType = "error"
)

// Message is the base websocket message envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Detector → gateway

// GestureReadingData carries one finger-count observation. Fingers is -1
// when no hand is visible.
type GestureReadingData struct {
	Fingers    int     `json:"fingers"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Spectator → gateway

// ControlData carries a discrete control signal: start, restart or quit
type ControlData struct {
	Signal string `json:"signal"`
}

// ParseSignal maps a wire signal name onto a game signal. Unrecognised
// names are ignored rather than rejected.
func ParseSignal(name string) game.Signal {
	switch name {
	case "start":
		return game.SignalStart
	case "restart":
		return game.SignalRestart
	case "quit":
		return game.SignalQuit
	default:
		return game.SignalNone
	}
}

// Gateway → spectator

// ErrorData reports a protocol-level problem to a client
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PhaseChangedData mirrors game.PhaseChangedEvent on the wire
type PhaseChangedData struct {
	Phase   string `json:"phase"`
	Tick    int    `json:"tick"`
	Innings int    `json:"innings"`
	Round   int    `json:"round"`
}

// OutcomeData mirrors game.RoundOutcome on the wire
type OutcomeData struct {
	Kind        string `json:"kind"`
	BattingRuns int    `json:"battingRuns"`
	BowlerMove  int    `json:"bowlerMove"`
}

// RoundResolvedData mirrors game.RoundResolvedEvent on the wire
type RoundResolvedData struct {
	Outcome      OutcomeData `json:"outcome"`
	BattingSide  string      `json:"battingSide"`
	RunningTotal int         `json:"runningTotal"`
	Innings      int         `json:"innings"`
	Round        int         `json:"round"`
}

// InningsConcludedData mirrors game.InningsConcludedEvent on the wire
type InningsConcludedData struct {
	Innings     int    `json:"innings"`
	BattingSide string `json:"battingSide"`
	Runs        int    `json:"runs"`
	IsOut       bool   `json:"isOut"`
	Target      *int   `json:"target,omitempty"`
	Rounds      int    `json:"rounds"`
}

// MatchConcludedData mirrors game.MatchConcludedEvent on the wire
type MatchConcludedData struct {
	Result       string `json:"result"`
	PlayerRuns   int    `json:"playerRuns"`
	ComputerRuns int    `json:"computerRuns"`
}

// StateSnapshotData mirrors game.MatchSnapshot on the wire, sent to
// spectators when they connect
type StateSnapshotData struct {
	MatchID      string `json:"matchId"`
	Phase        string `json:"phase"`
	ClockTick    int    `json:"clockTick"`
	ClockPhase   string `json:"clockPhase"`
	Innings      int    `json:"innings"`
	Round        int    `json:"round"`
	PlayerRuns   int    `json:"playerRuns"`
	ComputerRuns int    `json:"computerRuns"`
	Target       *int   `json:"target,omitempty"`
	BattingSide  string `json:"battingSide"`
	Result       string `json:"result"`
}

// Helpers converting internal types to message types

// MessageFromEvent converts a match event into its wire message, or nil for
// event types with no wire representation
func MessageFromEvent(event game.Event) (*Message, error) {
	switch e := event.(type) {
	case game.PhaseChangedEvent:
		return NewMessage(MessageTypePhaseChanged, PhaseChangedData{
			Phase:   e.Phase.String(),
			Tick:    e.Tick,
			Innings: e.Innings,
			Round:   e.Round,
		})
	case game.RoundResolvedEvent:
		return NewMessage(MessageTypeRoundResolved, RoundResolvedData{
			Outcome: OutcomeData{
				Kind:        e.Outcome.Kind.String(),
				BattingRuns: e.Outcome.BattingRuns,
				BowlerMove:  e.Outcome.BowlerMove,
			},
			BattingSide:  e.BattingSide.String(),
			RunningTotal: e.RunningTotal,
			Innings:      e.Innings,
			Round:        e.Round,
		})
	case game.InningsConcludedEvent:
		return NewMessage(MessageTypeInningsConcluded, InningsConcludedData{
			Innings:     e.Innings,
			BattingSide: e.State.BattingSide.String(),
			Runs:        e.State.Runs,
			IsOut:       e.State.IsOut,
			Target:      e.State.Target,
			Rounds:      e.State.Rounds,
		})
	case game.MatchConcludedEvent:
		return NewMessage(MessageTypeMatchConcluded, MatchConcludedData{
			Result:       e.Result.String(),
			PlayerRuns:   e.PlayerRuns,
			ComputerRuns: e.ComputerRuns,
		})
	default:
		return nil, nil
	}
}

// SnapshotMessage converts a match snapshot into its wire message
func SnapshotMessage(matchID string, snap game.MatchSnapshot) (*Message, error) {
	return NewMessage(MessageTypeStateSnapshot, StateSnapshotData{
		MatchID:      matchID,
		Phase:        snap.Phase.String(),
		ClockTick:    snap.ClockTick,
		ClockPhase:   snap.ClockPhase.String(),
		Innings:      snap.Innings,
		Round:        snap.Round,
		PlayerRuns:   snap.PlayerRuns,
		ComputerRuns: snap.ComputerRuns,
		Target:       snap.Target,
		BattingSide:  snap.BattingSide.String(),
		Result:       snap.Result.String(),
	})
}
