package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/handcricket/internal/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "handcricket.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, 30, cfg.Timing.FrameRate)
	require.Equal(t, []int{1, 1, 2, 3, 4, 6}, cfg.Rules.Runs)
	require.Equal(t, []int{1, 2, 3, 4, 6}, cfg.Rules.BowlerMoves)
	require.Equal(t, "localhost:8090", cfg.ServerAddress())
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
timing {
  frame_rate  = 60
  ready_end   = 10
  capture_end = 30
  display_end = 50
}

rules {
  runs         = [1, 1, 2, 3, 4, 6]
  bowler_moves = [1, 2, 3]
}

server {
  address = "0.0.0.0"
  port    = 9000
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, 60, cfg.Timing.FrameRate)
	require.Equal(t, game.ClockThresholds{ReadyEnd: 10, CaptureEnd: 30, DisplayEnd: 50}, cfg.Thresholds())
	require.Equal(t, []int{1, 2, 3}, cfg.Rules.BowlerMoves)
	require.Equal(t, "0.0.0.0:9000", cfg.ServerAddress())
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
timing {
  frame_rate = 15
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, 15, cfg.Timing.FrameRate)
	require.Equal(t, 5, cfg.Timing.ReadyEnd)
	require.Equal(t, 25, cfg.Timing.DisplayEnd)
	require.Equal(t, []int{1, 1, 2, 3, 4, 6}, cfg.Rules.Runs)
	require.Equal(t, 8090, cfg.Server.Port)
}

func TestLoad_InvalidHCL(t *testing.T) {
	path := writeConfig(t, `timing { frame_rate = `)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "frame rate too high",
			mutate:  func(cfg *Config) { cfg.Timing.FrameRate = 500 },
			wantErr: "frame_rate",
		},
		{
			name:    "thresholds out of order",
			mutate:  func(cfg *Config) { cfg.Timing.CaptureEnd = 3 },
			wantErr: "thresholds",
		},
		{
			name:    "runs table wrong size",
			mutate:  func(cfg *Config) { cfg.Rules.Runs = []int{1, 2, 3} },
			wantErr: "runs table",
		},
		{
			name:    "zero run entry",
			mutate:  func(cfg *Config) { cfg.Rules.Runs = []int{0, 1, 2, 3, 4, 6} },
			wantErr: "at least 1",
		},
		{
			name:    "empty bowler moves",
			mutate:  func(cfg *Config) { cfg.Rules.BowlerMoves = nil },
			wantErr: "bowler_moves",
		},
		{
			name:    "bad port",
			mutate:  func(cfg *Config) { cfg.Server.Port = 70000 },
			wantErr: "port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatchConfig(t *testing.T) {
	mc := Default().MatchConfig()
	require.Equal(t, game.DefaultRunTable(), mc.RunTable)
	require.Equal(t, game.DefaultThresholds(), mc.Thresholds)
	require.Equal(t, []int{1, 2, 3, 4, 6}, mc.BowlerMoves)
	require.True(t, mc.RunTable.Valid())
}
