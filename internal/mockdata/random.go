// Package mockdata generates reproducible synthetic attack data for the dashboard.
//
// Every generator builds its own Stream from a seed, so the same seed always
// yields the same output and no state is shared between calls.
package mockdata

import "math/rand/v2"

const (
	lcgMultiplier = 16807
	lcgModulus    = 2147483647

	// zeroState replaces a seed that reduces to 0, which would otherwise pin
	// the generator at zero forever.
	zeroState = lcgModulus - 1
)

// DefaultSeed is the seed the dashboard uses when none is given.
const DefaultSeed int64 = 42

// Source yields floats in [0, 1).
type Source interface {
	Float64() float64
}

// Stream is a Park-Miller multiplicative LCG.
type Stream struct {
	state int64
}

// NewStream returns a stream whose state is the seed reduced into (0, 2147483647).
// Negative seeds wrap around the modulus.
func NewStream(seed int64) *Stream {
	state := seed % lcgModulus
	if state < 0 {
		state += lcgModulus
	}
	if state == 0 {
		state = zeroState
	}
	return &Stream{state: state}
}

// Float64 advances the stream once and returns a value in [0, 1).
func (s *Stream) Float64() float64 {
	s.state = (s.state * lcgMultiplier) % lcgModulus
	return float64(s.state-1) / (lcgModulus - 1)
}

// SystemSource draws from the runtime's non-deterministic generator.
// The live feed uses it instead of a seeded stream.
type SystemSource struct{}

func (SystemSource) Float64() float64 {
	return rand.Float64()
}
