package main

import (
	"time"

	"github.com/coder/quartz"

	"github.com/lox/handcricket/cmd/handcricket/shared"
	"github.com/lox/handcricket/internal/config"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/randutil"
	"github.com/lox/handcricket/internal/server"
)

// ServeCmd runs the gesture gateway: detector readings in over /vision,
// match events out over /watch
type ServeCmd struct {
	Config       string `kong:"default='handcricket.hcl',help='Path to HCL config file'"`
	Addr         string `kong:"help='Listen address, overrides the config file'"`
	Seed         *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	ReadingTTLMs int    `kong:"name='reading-ttl-ms',default='500',help='How long a detector reading stays valid'"`
	Debug        bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddress()
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

	s := server.NewServer(logger, server.Options{
		Match:      cfg.MatchConfig(),
		FrameRate:  cfg.Timing.FrameRate,
		ReadingTTL: time.Duration(c.ReadingTTLMs) * time.Millisecond,
	}, rng, quartz.NewReal())

	logger.Info("starting gateway",
		"addr", addr,
		"frame_rate", cfg.Timing.FrameRate,
		"match_id", s.MatchID())

	ctx := shared.SetupSignalHandler(logger)
	return s.Run(ctx, addr)
}
