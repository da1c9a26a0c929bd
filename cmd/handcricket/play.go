package main

import (
	"context"
	"time"

	"github.com/lox/handcricket/cmd/handcricket/shared"
	"github.com/lox/handcricket/internal/config"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/randutil"
	"github.com/lox/handcricket/internal/tui"
	"github.com/lox/handcricket/internal/vision"
)

// PlayCmd runs an interactive match in the terminal
type PlayCmd struct {
	Config    string `kong:"default='handcricket.hcl',help='Path to HCL config file'"`
	VisionURL string `kong:"name='vision-url',help='Websocket URL of a detector feed; keys 0-5 are used when unset'"`
	Seed      *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
	LogFile   string `kong:"default='handcricket.log',help='Debug log destination (the TUI owns the terminal)'"`
}

func (c *PlayCmd) Run() error {
	logger, f, err := shared.SetupFileLogger(c.LogFile, c.Debug)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var rng game.RandSource
	if c.Seed != nil {
		logger.Info("using deterministic seed", "seed", *c.Seed)
		rng = randutil.New(*c.Seed)
	} else {
		r, seed := randutil.NewFromTime()
		logger.Info("using random seed", "seed", seed)
		rng = r
	}

	var source game.GestureSource
	var keys *tui.KeySource

	if c.VisionURL != "" {
		remote := vision.NewRemoteSource(c.VisionURL, 0, logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			_ = remote.Run(ctx)
		}()
		// give the first dial a moment so round one can see a hand
		time.Sleep(100 * time.Millisecond)
		source = remote
		logger.Info("using detector feed", "url", c.VisionURL)
	} else {
		keys = tui.NewKeySource(0)
		source = keys
		logger.Info("using keyboard gesture source")
	}

	controller := game.NewMatchController(cfg.MatchConfig(), source, rng, logger)
	model := tui.New(controller, keys, cfg.Timing.FrameRate, logger)

	return tui.Run(model)
}
