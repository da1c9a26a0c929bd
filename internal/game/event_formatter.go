package game

import "fmt"

// FormattingOptions controls how events are rendered for different contexts
type FormattingOptions struct {
	ShowTicks bool // include the clock tick in phase lines (for debug logs)
}

// EventFormatter turns match events into the human-readable lines the TUI
// log and the gateway log print
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any match event
func (ef *EventFormatter) Format(event Event) string {
	switch e := event.(type) {
	case PhaseChangedEvent:
		return ef.FormatPhaseChanged(e)
	case RoundResolvedEvent:
		return ef.FormatRoundResolved(e)
	case InningsConcludedEvent:
		return ef.FormatInningsConcluded(e)
	case MatchConcludedEvent:
		return ef.FormatMatchConcluded(e)
	default:
		return string(event.EventType())
	}
}

// FormatPhaseChanged renders the prompt for a round phase
func (ef *EventFormatter) FormatPhaseChanged(event PhaseChangedEvent) string {
	var text string
	switch event.Phase {
	case Ready:
		text = "Get Ready..."
	case Capture:
		text = "Show your hand!"
	case Compare:
		text = "Locked in!"
	case ResultDisplay, Transition:
		return ""
	}
	if ef.opts.ShowTicks {
		return fmt.Sprintf("[%d] %s", event.Tick, text)
	}
	return text
}

// FormatRoundResolved renders the outcome line for a round
func (ef *EventFormatter) FormatRoundResolved(event RoundResolvedEvent) string {
	batter := "You"
	if event.BattingSide == ComputerSide {
		batter = "Computer"
	}

	switch event.Outcome.Kind {
	case Out:
		return fmt.Sprintf("OUT! Both showed %d!", event.Outcome.BowlerMove)
	case RunsScored:
		return fmt.Sprintf("%s scored %d run(s)! Total: %d",
			batter, event.Outcome.BattingRuns, event.RunningTotal)
	default:
		return "Hand not detected! Please show your hand clearly."
	}
}

// FormatInningsConcluded renders the innings-over line
func (ef *EventFormatter) FormatInningsConcluded(event InningsConcludedEvent) string {
	if event.Innings == 1 {
		// original convention: the chase wins on target+1
		return fmt.Sprintf("Innings Over! Computer needs %d to win.", event.State.Runs+1)
	}
	if event.State.ChaseWon() {
		return fmt.Sprintf("Chase successful! Computer reached %d.", event.State.Runs)
	}
	return fmt.Sprintf("Innings Over! Computer finished on %d.", event.State.Runs)
}

// FormatMatchConcluded renders the final result line
func (ef *EventFormatter) FormatMatchConcluded(event MatchConcludedEvent) string {
	score := fmt.Sprintf("You: %d | Computer: %d", event.PlayerRuns, event.ComputerRuns)
	switch event.Result {
	case PlayerWin:
		return "You Won the Game! " + score
	case ComputerWin:
		return "You Lost the Game! " + score
	case Tie:
		return "It's a Tie! " + score
	default:
		return score
	}
}
