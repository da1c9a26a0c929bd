package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// FramePump drives a match controller at a fixed frame rate. The controller
// itself never sleeps or blocks; all pacing lives here. Tests substitute a
// quartz mock clock to advance frames synchronously.
type FramePump struct {
	controller *MatchController
	clock      quartz.Clock
	interval   time.Duration
	signals    chan Signal
	logger     *log.Logger
}

// NewFramePump creates a pump ticking at the given frames per second
func NewFramePump(controller *MatchController, fps int, clock quartz.Clock, logger *log.Logger) *FramePump {
	if fps <= 0 {
		fps = 30
	}
	return &FramePump{
		controller: controller,
		clock:      clock,
		interval:   time.Second / time.Duration(fps),
		signals:    make(chan Signal, 8),
		logger:     logger.WithPrefix("pump"),
	}
}

// Signal queues a control signal for delivery on the next frame. Never
// blocks; if the queue is full the signal is dropped.
func (p *FramePump) Signal(s Signal) {
	select {
	case p.signals <- s:
	default:
		p.logger.Warn("signal queue full, dropping", "signal", s)
	}
}

// Run ticks the controller until the context is cancelled. At most one
// queued signal is delivered per frame so discrete control events stay
// discrete.
func (p *FramePump) Run(ctx context.Context) error {
	tick := func() error {
		in := FrameInput{}
		select {
		case s := <-p.signals:
			in.Signal = s
		default:
		}
		p.controller.Advance(in)
		return nil
	}
	return p.clock.TickerFunc(ctx, p.interval, tick, "frame-pump").Wait()
}
