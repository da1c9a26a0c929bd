package game

// Phase is a window within a single round, derived purely from the tick
// count of the round clock
type Phase int

const (
	// Ready is the countdown window before capture opens
	Ready Phase = iota
	// Capture is the window where the gesture source is polled
	Capture
	// Compare is the single tick where the round resolves
	Compare
	// ResultDisplay is the display-only window after resolution
	ResultDisplay
	// Transition is every tick past the display window; the round ends here
	Transition
)

// String returns the string representation of the round phase
func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Capture:
		return "capture"
	case Compare:
		return "compare"
	case ResultDisplay:
		return "result_display"
	case Transition:
		return "transition"
	default:
		return "unknown"
	}
}

// ClockThresholds are the tick boundaries between round phases. Ready runs
// [0, ReadyEnd), Capture [ReadyEnd, CaptureEnd), Compare is exactly
// CaptureEnd, ResultDisplay (CaptureEnd, DisplayEnd], Transition after.
type ClockThresholds struct {
	ReadyEnd   int
	CaptureEnd int
	DisplayEnd int
}

// DefaultThresholds returns the standard pacing at the reference frame rate
func DefaultThresholds() ClockThresholds {
	return ClockThresholds{
		ReadyEnd:   5,
		CaptureEnd: 15,
		DisplayEnd: 25,
	}
}

// Valid reports whether the thresholds are strictly ordered with a
// non-empty ready window
func (t ClockThresholds) Valid() bool {
	return t.ReadyEnd > 0 && t.CaptureEnd > t.ReadyEnd && t.DisplayEnd > t.CaptureEnd
}

// RoundClock counts frames within one round and maps the count to a phase.
// It never wraps on its own; the controller resets it at round boundaries.
type RoundClock struct {
	thresholds ClockThresholds
	tick       int
}

// NewRoundClock creates a round clock at tick zero
func NewRoundClock(thresholds ClockThresholds) *RoundClock {
	return &RoundClock{thresholds: thresholds}
}

// Tick advances the clock by one frame and returns the new tick count
func (c *RoundClock) Tick() int {
	c.tick++
	return c.tick
}

// Reset returns the clock to tick zero for a fresh round
func (c *RoundClock) Reset() {
	c.tick = 0
}

// Current returns the current tick count
func (c *RoundClock) Current() int {
	return c.tick
}

// Phase returns the phase the current tick lands in
func (c *RoundClock) Phase() Phase {
	return c.PhaseAt(c.tick)
}

// PhaseAt maps an arbitrary tick count to its phase
func (c *RoundClock) PhaseAt(tick int) Phase {
	switch {
	case tick < c.thresholds.ReadyEnd:
		return Ready
	case tick < c.thresholds.CaptureEnd:
		return Capture
	case tick == c.thresholds.CaptureEnd:
		return Compare
	case tick <= c.thresholds.DisplayEnd:
		return ResultDisplay
	default:
		return Transition
	}
}
