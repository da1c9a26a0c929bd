// Package matchid generates sortable match identifiers: a 48-bit millisecond
// timestamp followed by 48 random bits, encoded as 20 characters of
// Crockford base32.
package matchid

import (
	"crypto/rand"
	"fmt"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the encoded identifier length
const Length = 20

// RandSource provides the random tail bytes; injectable for deterministic
// tests
type RandSource interface {
	IntN(n int) int
}

// Generator produces match IDs with configurable randomness
type Generator struct {
	randSource RandSource
	now        func() time.Time
}

// NewGenerator creates a generator. A nil randSource uses crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource, now: time.Now}
}

// New creates a match ID with crypto/rand entropy
func New() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new match ID. IDs generated later sort later because
// the timestamp occupies the high bits.
func (g *Generator) Generate() string {
	var raw [12]byte

	ms := g.now().UnixMilli()
	for i := 0; i < 6; i++ {
		raw[i] = byte(ms >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 12; i++ {
			raw[i] = byte(g.randSource.IntN(256))
		}
	} else {
		if _, err := rand.Read(raw[6:]); err != nil {
			panic("matchid: failed to read random bytes: " + err.Error())
		}
	}

	return encode(raw)
}

// encode maps 96 bits onto 20 base32 characters, 5 bits per character,
// high bits first. 96 is not a multiple of 5 so the final character carries
// a single bit.
func encode(raw [12]byte) string {
	out := make([]byte, Length)
	for i := range out {
		start := i * 5
		var v uint16
		for b := start; b < start+5 && b < 96; b++ {
			v <<= 1
			if raw[b/8]&(1<<(7-b%8)) != 0 {
				v |= 1
			}
		}
		if start+5 > 96 {
			v <<= uint(start + 5 - 96)
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that an ID has the right length and alphabet
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("match ID must be %d characters, got %d", Length, len(id))
	}
	for i := 0; i < len(id); i++ {
		if !validChar(id[i]) {
			return fmt.Errorf("invalid character %q at position %d", id[i], i)
		}
	}
	return nil
}

func validChar(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}
