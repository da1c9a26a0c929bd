package game

import "fmt"

// MaxFingers is the highest finger count a gesture can carry
const MaxFingers = 5

// GestureValue is a detected finger count in [0, MaxFingers], or
// GestureUnknown when no hand was read
type GestureValue int

// GestureUnknown means the source had no usable reading
const GestureUnknown GestureValue = -1

// Known reports whether the value is a real finger count
func (g GestureValue) Known() bool {
	return g >= 0 && g <= MaxFingers
}

// String returns the string representation of the gesture
func (g GestureValue) String() string {
	if !g.Known() {
		return "unknown"
	}
	return fmt.Sprintf("%d fingers", int(g))
}

// ParseGesture converts a raw finger count into a gesture value, mapping
// anything outside the valid range to GestureUnknown
func ParseGesture(fingers int) GestureValue {
	g := GestureValue(fingers)
	if !g.Known() {
		return GestureUnknown
	}
	return g
}

// GestureSource supplies the freshest gesture reading. Current must never
// block: a source with nothing to report returns GestureUnknown.
type GestureSource interface {
	Current() GestureValue
}

// GestureFunc adapts a plain function to a GestureSource
type GestureFunc func() GestureValue

// Current implements GestureSource
func (f GestureFunc) Current() GestureValue {
	return f()
}

// NoGesture is a source that never has a reading
var NoGesture GestureSource = GestureFunc(func() GestureValue {
	return GestureUnknown
})

// RunTable maps each finger count to the runs it scores
type RunTable [MaxFingers + 1]int

// DefaultRunTable returns the standard scoring: a closed fist counts as
// one, five fingers as six, everything else face value
func DefaultRunTable() RunTable {
	return RunTable{1, 1, 2, 3, 4, 6}
}

// Runs returns the run value for a known gesture
func (t RunTable) Runs(g GestureValue) int {
	return t[g]
}

// Valid reports whether every entry scores at least one run
func (t RunTable) Valid() bool {
	for _, runs := range t {
		if runs < 1 {
			return false
		}
	}
	return true
}
