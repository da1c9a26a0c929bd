package game

import "time"

// EventType represents a match event type with type safety
type EventType string

// EventType constants for match domain events
const (
	EventTypePhaseChanged     EventType = "phase_changed"
	EventTypeRoundResolved    EventType = "round_resolved"
	EventTypeInningsConcluded EventType = "innings_concluded"
	EventTypeMatchConcluded   EventType = "match_concluded"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents any notification the match controller emits. Collaborators
// (rendering, audio, spectator streams) consume events and must not feed
// state back into the core.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// PhaseChangedEvent fires on the tick where the round clock crosses into a
// new phase
type PhaseChangedEvent struct {
	Phase     Phase
	Tick      int
	Innings   int
	Round     int
	timestamp time.Time
}

func (e PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }
func (e PhaseChangedEvent) Timestamp() time.Time { return e.timestamp }

// NewPhaseChangedEvent creates a new phase change event
func NewPhaseChangedEvent(phase Phase, tick, innings, round int) PhaseChangedEvent {
	return PhaseChangedEvent{
		Phase:     phase,
		Tick:      tick,
		Innings:   innings,
		Round:     round,
		timestamp: time.Now(),
	}
}

// RoundResolvedEvent fires once per round at the compare tick
type RoundResolvedEvent struct {
	Outcome      RoundOutcome
	BattingSide  Side
	RunningTotal int
	Innings      int
	Round        int
	timestamp    time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundResolvedEvent creates a new round resolution event
func NewRoundResolvedEvent(outcome RoundOutcome, side Side, runningTotal, innings, round int) RoundResolvedEvent {
	return RoundResolvedEvent{
		Outcome:      outcome,
		BattingSide:  side,
		RunningTotal: runningTotal,
		Innings:      innings,
		Round:        round,
		timestamp:    time.Now(),
	}
}

// InningsConcludedEvent fires when an innings ends, carrying a snapshot of
// its final state
type InningsConcludedEvent struct {
	Innings   int
	State     InningsState
	timestamp time.Time
}

func (e InningsConcludedEvent) EventType() EventType { return EventTypeInningsConcluded }
func (e InningsConcludedEvent) Timestamp() time.Time { return e.timestamp }

// NewInningsConcludedEvent creates a new innings conclusion event
func NewInningsConcludedEvent(innings int, state InningsState) InningsConcludedEvent {
	return InningsConcludedEvent{
		Innings:   innings,
		State:     state,
		timestamp: time.Now(),
	}
}

// MatchConcludedEvent fires exactly once per match, after the second innings
type MatchConcludedEvent struct {
	Result       MatchResult
	PlayerRuns   int
	ComputerRuns int
	timestamp    time.Time
}

func (e MatchConcludedEvent) EventType() EventType { return EventTypeMatchConcluded }
func (e MatchConcludedEvent) Timestamp() time.Time { return e.timestamp }

// NewMatchConcludedEvent creates a new match conclusion event
func NewMatchConcludedEvent(result MatchResult, playerRuns, computerRuns int) MatchConcludedEvent {
	return MatchConcludedEvent{
		Result:       result,
		PlayerRuns:   playerRuns,
		ComputerRuns: computerRuns,
		timestamp:    time.Now(),
	}
}

// EventSubscriber can subscribe to match events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// SubscriberFunc adapts a plain function to an EventSubscriber
type SubscriberFunc func(event Event)

// OnEvent implements EventSubscriber
func (f SubscriberFunc) OnEvent(event Event) {
	f(event)
}
