// Package simulator runs headless bulk matches with a synthetic player so
// rule changes can be sanity-checked without a camera or a screen.
package simulator

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/randutil"
)

// Config holds configuration for running simulations
type Config struct {
	Matches int
	Seed    int64
	Match   game.Config
	Logger  *log.Logger
}

// Results aggregates outcomes over a batch of simulated matches
type Results struct {
	Matches      int
	PlayerWins   int
	ComputerWins int
	Ties         int
	PlayerRuns   int
	ComputerRuns int
	Rounds       int
}

// Add folds one finished match into the tally
func (r *Results) Add(playerRuns, computerRuns, rounds int, result game.MatchResult) {
	r.Matches++
	r.PlayerRuns += playerRuns
	r.ComputerRuns += computerRuns
	r.Rounds += rounds
	switch result {
	case game.PlayerWin:
		r.PlayerWins++
	case game.ComputerWin:
		r.ComputerWins++
	case game.Tie:
		r.Ties++
	}
}

// Validate checks internal consistency of the tally
func (r *Results) Validate() error {
	if r.PlayerWins+r.ComputerWins+r.Ties != r.Matches {
		return fmt.Errorf("result counts (%d+%d+%d) do not sum to %d matches",
			r.PlayerWins, r.ComputerWins, r.Ties, r.Matches)
	}
	return nil
}

// AvgPlayerRuns returns the mean player innings total
func (r *Results) AvgPlayerRuns() float64 {
	if r.Matches == 0 {
		return 0
	}
	return float64(r.PlayerRuns) / float64(r.Matches)
}

// AvgComputerRuns returns the mean computer innings total
func (r *Results) AvgComputerRuns() float64 {
	if r.Matches == 0 {
		return 0
	}
	return float64(r.ComputerRuns) / float64(r.Matches)
}

// Simulator runs batches of matches
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config}
}

// Run executes the batch and returns aggregate results. Deterministic for
// a given seed.
func (s *Simulator) Run() (*Results, error) {
	results := &Results{}

	for m := 0; m < s.config.Matches; m++ {
		// independent seed per match so batches are order-insensitive
		matchSeed := s.config.Seed + int64(m)
		playerRuns, computerRuns, rounds, result, err := s.playMatch(matchSeed)
		if err != nil {
			return nil, fmt.Errorf("match %d (seed %d): %w", m+1, matchSeed, err)
		}
		results.Add(playerRuns, computerRuns, rounds, result)
	}

	if err := results.Validate(); err != nil {
		return nil, fmt.Errorf("results validation failed: %w", err)
	}

	return results, nil
}

// maxFrames bounds a simulated match; a match that runs this long without
// concluding indicates a state machine bug
const maxFrames = 1_000_000

// playMatch runs a single match to completion with a random synthetic
// batter
func (s *Simulator) playMatch(seed int64) (playerRuns, computerRuns, rounds int, result game.MatchResult, err error) {
	rng := randutil.New(seed)

	// the synthetic player shows a uniformly random hand every frame
	source := game.GestureFunc(func() game.GestureValue {
		return game.GestureValue(rng.IntN(game.MaxFingers + 1))
	})

	controller := game.NewMatchController(s.config.Match, source, rng, s.config.Logger)

	var concluded *game.MatchConcludedEvent
	var roundCount int
	controller.EventBus().Subscribe(game.SubscriberFunc(func(event game.Event) {
		switch e := event.(type) {
		case game.RoundResolvedEvent:
			if e.Outcome.Kind != game.DeadBall {
				roundCount++
			}
		case game.MatchConcludedEvent:
			concluded = &e
		}
	}))

	controller.Advance(game.FrameInput{Signal: game.SignalStart})
	for frame := 0; frame < maxFrames; frame++ {
		if controller.Phase() == game.Result {
			break
		}
		controller.Advance(game.FrameInput{})
	}

	if concluded == nil {
		return 0, 0, 0, game.NoResult, fmt.Errorf("match did not conclude within %d frames", maxFrames)
	}

	return concluded.PlayerRuns, concluded.ComputerRuns, roundCount, concluded.Result, nil
}
