package tui

import (
	"time"

	"github.com/lox/handcricket/internal/game"
)

// DefaultHold is how long a pressed digit counts as a shown hand
const DefaultHold = 1500 * time.Millisecond

// KeySource turns digit key presses into a gesture source: pressing 0-5
// "shows" that many fingers for a short hold window, mimicking holding a
// hand up to a camera. Only touched from the bubbletea update loop, so it
// needs no locking.
type KeySource struct {
	value game.GestureValue
	at    time.Time
	hold  time.Duration
	now   func() time.Time
}

// NewKeySource creates a key-driven gesture source
func NewKeySource(hold time.Duration) *KeySource {
	if hold == 0 {
		hold = DefaultHold
	}
	return &KeySource{
		value: game.GestureUnknown,
		hold:  hold,
		now:   time.Now,
	}
}

// Press records a digit key press
func (k *KeySource) Press(fingers int) {
	k.value = game.ParseGesture(fingers)
	k.at = k.now()
}

// Current implements game.GestureSource
func (k *KeySource) Current() game.GestureValue {
	if !k.value.Known() || k.now().Sub(k.at) > k.hold {
		return game.GestureUnknown
	}
	return k.value
}
