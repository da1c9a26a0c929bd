package game

// Side identifies which participant is batting
type Side int

const (
	// PlayerSide is the human player
	PlayerSide Side = iota
	// ComputerSide is the computer opponent
	ComputerSide
)

// String returns the string representation of the side
func (s Side) String() string {
	if s == ComputerSide {
		return "computer"
	}
	return "player"
}

// InningsState tracks one side's batting. The first innings has no target;
// the chase carries the total it must beat.
type InningsState struct {
	BattingSide Side
	Runs        int
	IsOut       bool
	Target      *int
	Rounds      int
}

// NewInnings creates a fresh first innings for the given side
func NewInnings(side Side) *InningsState {
	return &InningsState{BattingSide: side}
}

// NewChase creates a second innings chasing the given total. The chase wins
// by exceeding the target, not by matching it.
func NewChase(side Side, target int) *InningsState {
	return &InningsState{BattingSide: side, Target: &target}
}

// Concluded reports whether the innings is over: the batter is out, or a
// chase has passed its target
func (s *InningsState) Concluded() bool {
	if s.IsOut {
		return true
	}
	return s.Target != nil && s.Runs > *s.Target
}

// ChaseWon reports whether a chase concluded by passing the target
func (s *InningsState) ChaseWon() bool {
	return s.Target != nil && s.Runs > *s.Target
}

// RunsToWin returns how many more runs the chase needs, zero for a first
// innings or a finished chase
func (s *InningsState) RunsToWin() int {
	if s.Target == nil {
		return 0
	}
	need := *s.Target + 1 - s.Runs
	if need < 0 {
		return 0
	}
	return need
}

// Apply folds a round outcome into the innings. A concluded innings never
// changes; dead balls count for nothing, not even the round tally.
func (s *InningsState) Apply(outcome RoundOutcome) {
	if s.Concluded() {
		return
	}

	switch outcome.Kind {
	case Out:
		s.IsOut = true
		s.Rounds++
	case RunsScored:
		s.Runs += outcome.BattingRuns
		s.Rounds++
	case DeadBall:
		// void round, nothing recorded
	}
}
