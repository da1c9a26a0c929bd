package game

import (
	"github.com/charmbracelet/log"
)

// MatchPhase is the top-level state of a match session
type MatchPhase int

const (
	// Menu is the pre-game state waiting for a start signal
	Menu MatchPhase = iota
	// Innings1 has the player batting
	Innings1
	// Innings2 has the computer chasing the player's total
	Innings2
	// Result shows the final outcome and waits for a restart signal
	Result
	// Idle is terminal within a session, entered on quit
	Idle
)

// String returns the string representation of the match phase
func (p MatchPhase) String() string {
	switch p {
	case Menu:
		return "menu"
	case Innings1:
		return "innings_1"
	case Innings2:
		return "innings_2"
	case Result:
		return "result"
	case Idle:
		return "idle"
	default:
		return "unknown"
	}
}

// MatchResult is the final outcome of a match
type MatchResult int

const (
	// NoResult means the match has not concluded
	NoResult MatchResult = iota
	// PlayerWin means the player outscored the computer
	PlayerWin
	// ComputerWin means the computer chased the target
	ComputerWin
	// Tie means both innings finished level
	Tie
)

// String returns the string representation of the match result
func (r MatchResult) String() string {
	switch r {
	case PlayerWin:
		return "player_win"
	case ComputerWin:
		return "computer_win"
	case Tie:
		return "tie"
	default:
		return "none"
	}
}

// Signal is a discrete control event from the surrounding shell
type Signal int

const (
	// SignalNone carries no control input this frame
	SignalNone Signal = iota
	// SignalStart begins a match from the menu
	SignalStart
	// SignalRestart begins a fresh match from the result screen
	SignalRestart
	// SignalQuit ends the session from any state
	SignalQuit
)

// FrameInput is everything the external frame pump hands the controller
// for one tick
type FrameInput struct {
	Signal Signal
}

// Config holds the rule and pacing parameters for a match
type Config struct {
	Thresholds  ClockThresholds
	RunTable    RunTable
	BowlerMoves []int
}

// DefaultConfig returns the standard match rules
func DefaultConfig() Config {
	return Config{
		Thresholds:  DefaultThresholds(),
		RunTable:    DefaultRunTable(),
		BowlerMoves: []int{1, 2, 3, 4, 6},
	}
}

// MatchController composes the round clock, move resolver and innings
// tracking into the full session state machine. It is the only component
// the rendering/audio layer calls into, via Advance once per frame.
type MatchController struct {
	phase    MatchPhase
	clock    *RoundClock
	resolver *MoveResolver
	bowler   *Bowler
	source   GestureSource
	bus      EventBus
	logger   *log.Logger

	innings1 *InningsState
	innings2 *InningsState
	result   MatchResult

	round   int // 1-based round number within the active innings
	pending GestureValue
	last    *RoundOutcome
}

// NewMatchController creates a match controller in the menu state. The
// gesture source is polled only during capture windows; rand drives the
// bowler's draws.
func NewMatchController(cfg Config, source GestureSource, rand RandSource, logger *log.Logger) *MatchController {
	return &MatchController{
		phase:    Menu,
		clock:    NewRoundClock(cfg.Thresholds),
		resolver: NewMoveResolver(cfg.RunTable),
		bowler:   NewBowler(cfg.BowlerMoves, rand),
		source:   source,
		bus:      NewEventBus(),
		logger:   logger.WithPrefix("match"),
		pending:  GestureUnknown,
	}
}

// EventBus returns the bus collaborators subscribe to for match events
func (mc *MatchController) EventBus() EventBus {
	return mc.bus
}

// Phase returns the current top-level match phase
func (mc *MatchController) Phase() MatchPhase {
	return mc.phase
}

// Result returns the match result, NoResult until the second innings ends
func (mc *MatchController) Result() MatchResult {
	return mc.result
}

// Advance drives the controller by one frame. It returns the events emitted
// this tick; the same events are published on the bus. Never blocks and
// never fails: invalid signals are no-ops.
func (mc *MatchController) Advance(in FrameInput) []Event {
	if in.Signal == SignalQuit {
		if mc.phase != Idle {
			mc.logger.Debug("quit signal, session idle", "from", mc.phase)
			mc.phase = Idle
		}
		return nil
	}

	var events []Event
	emit := func(e Event) {
		events = append(events, e)
		mc.bus.Publish(e)
	}

	switch mc.phase {
	case Idle:
		// terminal, nothing ticks

	case Menu:
		if in.Signal == SignalStart {
			mc.startMatch(emit)
		}

	case Result:
		if in.Signal == SignalRestart {
			mc.startMatch(emit)
		}

	case Innings1, Innings2:
		mc.advanceRound(emit)
	}

	return events
}

// startMatch resets all match state and begins the first innings
func (mc *MatchController) startMatch(emit func(Event)) {
	mc.logger.Info("match started")
	mc.innings1 = NewInnings(PlayerSide)
	mc.innings2 = nil
	mc.result = NoResult
	mc.phase = Innings1
	mc.round = 0
	mc.beginRound(emit)
}

// beginRound resets the round clock and capture state for a fresh round
func (mc *MatchController) beginRound(emit func(Event)) {
	mc.clock.Reset()
	mc.round++
	mc.pending = GestureUnknown
	mc.last = nil
	emit(NewPhaseChangedEvent(Ready, 0, mc.inningsNumber(), mc.round))
}

// advanceRound ticks the round clock and runs the phase the tick lands in
func (mc *MatchController) advanceRound(emit func(Event)) {
	before := mc.clock.Phase()
	tick := mc.clock.Tick()
	phase := mc.clock.Phase()

	if phase != before {
		emit(NewPhaseChangedEvent(phase, tick, mc.inningsNumber(), mc.round))
	}

	switch phase {
	case Capture:
		// keep the freshest real reading; the snapshot at the compare
		// tick is whatever survived the window
		if g := mc.source.Current(); g.Known() {
			mc.pending = g
		}

	case Compare:
		mc.resolveRound(emit)

	case Transition:
		mc.endRound(emit)
	}
}

// resolveRound freezes the pending gesture, draws the computer's move and
// applies the outcome to the active innings. Whichever side bats, the
// round is void without a gesture: the player always shows a hand, batting
// in the first innings and bowling in the second.
func (mc *MatchController) resolveRound(emit func(Event)) {
	active := mc.activeInnings()

	var outcome RoundOutcome
	if mc.pending.Known() {
		if active.BattingSide == PlayerSide {
			outcome = mc.resolver.Resolve(mc.pending, mc.bowler.Draw())
		} else {
			outcome = mc.resolver.ResolveValues(mc.bowler.Draw(), mc.resolver.RunValue(mc.pending))
		}
	} else {
		outcome = RoundOutcome{Kind: DeadBall}
	}

	active.Apply(outcome)
	mc.last = &outcome

	mc.logger.Debug("round resolved",
		"innings", mc.inningsNumber(),
		"round", mc.round,
		"outcome", outcome.Kind,
		"total", active.Runs)

	emit(NewRoundResolvedEvent(outcome, active.BattingSide, active.Runs, mc.inningsNumber(), mc.round))
}

// endRound fires at the transition tick: either the next round begins, or
// the innings/match transition rules apply
func (mc *MatchController) endRound(emit func(Event)) {
	active := mc.activeInnings()

	if !active.Concluded() {
		// includes dead-ball replays
		mc.beginRound(emit)
		return
	}

	if mc.phase == Innings1 {
		mc.logger.Info("first innings over", "target", mc.innings1.Runs)
		emit(NewInningsConcludedEvent(1, *mc.innings1))
		mc.innings2 = NewChase(ComputerSide, mc.innings1.Runs)
		mc.phase = Innings2
		mc.round = 0
		mc.beginRound(emit)
		return
	}

	emit(NewInningsConcludedEvent(2, *mc.innings2))
	mc.result = mc.computeResult()
	mc.logger.Info("match over",
		"result", mc.result,
		"player", mc.innings1.Runs,
		"computer", mc.innings2.Runs)
	emit(NewMatchConcludedEvent(mc.result, mc.innings1.Runs, mc.innings2.Runs))
	mc.phase = Result
}

// computeResult compares final totals. Computed exactly once, at the
// transition out of the second innings.
func (mc *MatchController) computeResult() MatchResult {
	switch {
	case mc.innings1.Runs > mc.innings2.Runs:
		return PlayerWin
	case mc.innings1.Runs < mc.innings2.Runs:
		return ComputerWin
	default:
		return Tie
	}
}

// activeInnings returns the innings currently batting
func (mc *MatchController) activeInnings() *InningsState {
	if mc.phase == Innings2 {
		return mc.innings2
	}
	return mc.innings1
}

// inningsNumber returns 1 or 2 during play, 0 otherwise
func (mc *MatchController) inningsNumber() int {
	switch mc.phase {
	case Innings1:
		return 1
	case Innings2:
		return 2
	default:
		return 0
	}
}

// MatchSnapshot is a read-only view of the match for presentation layers
type MatchSnapshot struct {
	Phase        MatchPhase
	ClockTick    int
	ClockPhase   Phase
	Innings      int
	Round        int
	PlayerRuns   int
	ComputerRuns int
	Target       *int
	BattingSide  Side
	LastOutcome  *RoundOutcome
	Result       MatchResult
}

// Snapshot captures the current match state for rendering. The copy shares
// nothing mutable with the controller.
func (mc *MatchController) Snapshot() MatchSnapshot {
	snap := MatchSnapshot{
		Phase:      mc.phase,
		ClockTick:  mc.clock.Current(),
		ClockPhase: mc.clock.Phase(),
		Innings:    mc.inningsNumber(),
		Round:      mc.round,
		Result:     mc.result,
	}
	if mc.innings1 != nil {
		snap.PlayerRuns = mc.innings1.Runs
		snap.BattingSide = mc.innings1.BattingSide
	}
	if mc.innings2 != nil {
		snap.ComputerRuns = mc.innings2.Runs
		snap.BattingSide = mc.innings2.BattingSide
		if mc.innings2.Target != nil {
			t := *mc.innings2.Target
			snap.Target = &t
		}
	}
	if mc.last != nil {
		o := *mc.last
		snap.LastOutcome = &o
	}
	return snap
}
