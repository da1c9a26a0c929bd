package main

import (
	"fmt"
	"time"

	"github.com/lox/handcricket/cmd/handcricket/shared"
	"github.com/lox/handcricket/internal/config"
	"github.com/lox/handcricket/internal/simulator"
)

// SimulateCmd runs headless match batches for rule tuning
type SimulateCmd struct {
	Config  string `kong:"default='handcricket.hcl',help='Path to HCL config file'"`
	Matches int    `kong:"default='1000',help='Number of matches to simulate'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	logger.Info("starting simulation", "matches", c.Matches, "seed", seed)

	sim := simulator.New(simulator.Config{
		Matches: c.Matches,
		Seed:    seed,
		Match:   cfg.MatchConfig(),
		Logger:  logger,
	})

	start := time.Now()
	results, err := sim.Run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Simulated %d matches in %s (seed %d)\n", results.Matches, elapsed.Round(time.Millisecond), seed)
	fmt.Printf("  Player wins:   %6d (%.1f%%)\n", results.PlayerWins, pct(results.PlayerWins, results.Matches))
	fmt.Printf("  Computer wins: %6d (%.1f%%)\n", results.ComputerWins, pct(results.ComputerWins, results.Matches))
	fmt.Printf("  Ties:          %6d (%.1f%%)\n", results.Ties, pct(results.Ties, results.Matches))
	fmt.Printf("  Avg player total:   %.2f\n", results.AvgPlayerRuns())
	fmt.Printf("  Avg computer total: %.2f\n", results.AvgComputerRuns())
	fmt.Printf("  Rounds played:      %d\n", results.Rounds)

	return nil
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
