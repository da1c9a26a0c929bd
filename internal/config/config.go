// Package config loads hand cricket configuration from HCL files
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/handcricket/internal/game"
)

// Config represents the complete application configuration
type Config struct {
	Timing *TimingConfig `hcl:"timing,block"`
	Rules  *RulesConfig  `hcl:"rules,block"`
	Server *ServerConfig `hcl:"server,block"`
}

// TimingConfig controls the frame rate and round clock pacing
type TimingConfig struct {
	FrameRate  int `hcl:"frame_rate,optional"`
	ReadyEnd   int `hcl:"ready_end,optional"`
	CaptureEnd int `hcl:"capture_end,optional"`
	DisplayEnd int `hcl:"display_end,optional"`
}

// RulesConfig controls scoring: the finger-count run table and the set the
// bowler draws from
type RulesConfig struct {
	Runs        []int `hcl:"runs,optional"`
	BowlerMoves []int `hcl:"bowler_moves,optional"`
}

// ServerConfig controls the gesture gateway
type ServerConfig struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// Default returns the standard configuration
func Default() *Config {
	return &Config{
		Timing: &TimingConfig{
			FrameRate:  30,
			ReadyEnd:   5,
			CaptureEnd: 15,
			DisplayEnd: 25,
		},
		Rules: &RulesConfig{
			Runs:        []int{1, 1, 2, 3, 4, 6},
			BowlerMoves: []int{1, 2, 3, 4, 6},
		},
		Server: &ServerConfig{
			Address: "localhost",
			Port:    8090,
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults when
// the file does not exist. Missing fields within a present file also take
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Timing == nil {
		c.Timing = def.Timing
	} else {
		if c.Timing.FrameRate == 0 {
			c.Timing.FrameRate = def.Timing.FrameRate
		}
		if c.Timing.ReadyEnd == 0 {
			c.Timing.ReadyEnd = def.Timing.ReadyEnd
		}
		if c.Timing.CaptureEnd == 0 {
			c.Timing.CaptureEnd = def.Timing.CaptureEnd
		}
		if c.Timing.DisplayEnd == 0 {
			c.Timing.DisplayEnd = def.Timing.DisplayEnd
		}
	}
	if c.Rules == nil {
		c.Rules = def.Rules
	} else {
		if len(c.Rules.Runs) == 0 {
			c.Rules.Runs = def.Rules.Runs
		}
		if len(c.Rules.BowlerMoves) == 0 {
			c.Rules.BowlerMoves = def.Rules.BowlerMoves
		}
	}
	if c.Server == nil {
		c.Server = def.Server
	} else {
		if c.Server.Address == "" {
			c.Server.Address = def.Server.Address
		}
		if c.Server.Port == 0 {
			c.Server.Port = def.Server.Port
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Timing.FrameRate < 1 || c.Timing.FrameRate > 240 {
		return fmt.Errorf("frame_rate must be between 1 and 240, got %d", c.Timing.FrameRate)
	}
	thresholds := c.Thresholds()
	if !thresholds.Valid() {
		return fmt.Errorf("clock thresholds must be strictly ordered: ready_end=%d capture_end=%d display_end=%d",
			thresholds.ReadyEnd, thresholds.CaptureEnd, thresholds.DisplayEnd)
	}
	if len(c.Rules.Runs) != game.MaxFingers+1 {
		return fmt.Errorf("runs table must have %d entries, got %d", game.MaxFingers+1, len(c.Rules.Runs))
	}
	for i, r := range c.Rules.Runs {
		if r < 1 {
			return fmt.Errorf("runs table entry %d must be at least 1, got %d", i, r)
		}
	}
	if len(c.Rules.BowlerMoves) == 0 {
		return fmt.Errorf("bowler_moves must not be empty")
	}
	for _, m := range c.Rules.BowlerMoves {
		if m < 1 {
			return fmt.Errorf("bowler move must be at least 1, got %d", m)
		}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	return nil
}

// Thresholds converts the timing block into round clock thresholds
func (c *Config) Thresholds() game.ClockThresholds {
	return game.ClockThresholds{
		ReadyEnd:   c.Timing.ReadyEnd,
		CaptureEnd: c.Timing.CaptureEnd,
		DisplayEnd: c.Timing.DisplayEnd,
	}
}

// MatchConfig converts the rules and timing blocks into a match config
func (c *Config) MatchConfig() game.Config {
	var runs game.RunTable
	copy(runs[:], c.Rules.Runs)
	return game.Config{
		Thresholds:  c.Thresholds(),
		RunTable:    runs,
		BowlerMoves: c.Rules.BowlerMoves,
	}
}

// ServerAddress returns the full gateway listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
