package game

import "fmt"

// OutcomeKind classifies how a round resolved
type OutcomeKind int

const (
	// Out means the batting value matched the opposing move
	Out OutcomeKind = iota
	// RunsScored means the batting side added runs
	RunsScored
	// DeadBall means no gesture survived the capture window; the round is
	// void and replays
	DeadBall
)

// String returns the string representation of the outcome kind
func (k OutcomeKind) String() string {
	switch k {
	case Out:
		return "out"
	case RunsScored:
		return "runs_scored"
	case DeadBall:
		return "dead_ball"
	default:
		return "unknown"
	}
}

// RoundOutcome is the result of resolving a single round
type RoundOutcome struct {
	Kind        OutcomeKind
	BattingRuns int
	BowlerMove  int
}

// String returns a compact description of the outcome
func (o RoundOutcome) String() string {
	switch o.Kind {
	case Out:
		return fmt.Sprintf("out (both %d)", o.BowlerMove)
	case RunsScored:
		return fmt.Sprintf("%d run(s) vs %d", o.BattingRuns, o.BowlerMove)
	default:
		return "dead ball"
	}
}

// RandSource is the randomness the bowler draws from. *rand.Rand satisfies
// it; tests inject deterministic sequences.
type RandSource interface {
	IntN(n int) int
}

// Bowler draws the computer's move for each round, uniformly and
// independently from a fixed move set
type Bowler struct {
	moves []int
	rand  RandSource
}

// NewBowler creates a bowler over a copy of the given move set
func NewBowler(moves []int, rand RandSource) *Bowler {
	owned := make([]int, len(moves))
	copy(owned, moves)
	return &Bowler{moves: owned, rand: rand}
}

// Draw picks the next move. Draws are independent: no streak correction,
// no adaptation to the batter.
func (b *Bowler) Draw() int {
	return b.moves[b.rand.IntN(len(b.moves))]
}

// Moves returns a copy of the move set
func (b *Bowler) Moves() []int {
	out := make([]int, len(b.moves))
	copy(out, b.moves)
	return out
}

// MoveResolver decides round outcomes from a batting value and an opposing
// move
type MoveResolver struct {
	runs RunTable
}

// NewMoveResolver creates a resolver over the given run table
func NewMoveResolver(runs RunTable) *MoveResolver {
	return &MoveResolver{runs: runs}
}

// RunValue returns the runs a known gesture is worth
func (r *MoveResolver) RunValue(g GestureValue) int {
	return r.runs.Runs(g)
}

// Resolve produces the outcome for a round where the gesture is batting.
// Total over all inputs: an unknown gesture yields a dead ball rather than
// an error.
func (r *MoveResolver) Resolve(batting GestureValue, bowlerMove int) RoundOutcome {
	if !batting.Known() {
		return RoundOutcome{Kind: DeadBall}
	}
	return r.ResolveValues(r.runs.Runs(batting), bowlerMove)
}

// ResolveValues compares plain run values: when the computer bats its move
// is the batting value and the player's gesture bowls. Equality is out
// regardless of which side bats.
func (r *MoveResolver) ResolveValues(battingRuns, opposing int) RoundOutcome {
	if battingRuns == opposing {
		return RoundOutcome{Kind: Out, BattingRuns: battingRuns, BowlerMove: opposing}
	}
	return RoundOutcome{Kind: RunsScored, BattingRuns: battingRuns, BowlerMove: opposing}
}
