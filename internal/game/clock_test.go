package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhaseAt_DefaultThresholds(t *testing.T) {
	clock := NewRoundClock(DefaultThresholds())

	tests := []struct {
		tick int
		want Phase
	}{
		{0, Ready},
		{4, Ready},
		{5, Capture},
		{10, Capture},
		{14, Capture},
		{15, Compare},
		{16, ResultDisplay},
		{20, ResultDisplay},
		{25, ResultDisplay},
		{26, Transition},
		{100, Transition},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, clock.PhaseAt(tt.tick), "tick %d", tt.tick)
	}
}

func TestPhaseAt_TotalOverRange(t *testing.T) {
	clock := NewRoundClock(DefaultThresholds())

	// every tick maps to exactly one phase and phases appear in order
	var last Phase
	for tick := 0; tick <= 200; tick++ {
		phase := clock.PhaseAt(tick)
		require.GreaterOrEqual(t, phase, last, "phases must not regress at tick %d", tick)
		last = phase
	}
	require.Equal(t, Transition, last)
}

func TestRoundClock_TickAndReset(t *testing.T) {
	clock := NewRoundClock(DefaultThresholds())

	require.Equal(t, 0, clock.Current())
	require.Equal(t, Ready, clock.Phase())

	for i := 1; i <= 15; i++ {
		require.Equal(t, i, clock.Tick())
	}
	require.Equal(t, Compare, clock.Phase())

	clock.Reset()
	require.Equal(t, 0, clock.Current())
	require.Equal(t, Ready, clock.Phase())
}

func TestClockThresholds_Valid(t *testing.T) {
	require.True(t, DefaultThresholds().Valid())
	require.False(t, ClockThresholds{ReadyEnd: 0, CaptureEnd: 15, DisplayEnd: 25}.Valid())
	require.False(t, ClockThresholds{ReadyEnd: 5, CaptureEnd: 5, DisplayEnd: 25}.Valid())
	require.False(t, ClockThresholds{ReadyEnd: 5, CaptureEnd: 15, DisplayEnd: 15}.Valid())
}

func TestPhase_String(t *testing.T) {
	require.Equal(t, "ready", Ready.String())
	require.Equal(t, "capture", Capture.String())
	require.Equal(t, "compare", Compare.String())
	require.Equal(t, "result_display", ResultDisplay.String())
	require.Equal(t, "transition", Transition.String())
}
