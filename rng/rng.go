// Package rng provides the seeded pseudo-random source that drives every
// randomized decision in a transform call. The generator is Mulberry32: a
// 32-bit state mixed by multiply/xor/shift per draw. Keeping it as an
// explicit threaded value (never package-level state) makes a whole
// transform a pure function of (inputs, seed).
package rng

import "time"

// Source is a Mulberry32 generator.
type Source struct {
	state uint32
}

// New returns a Source seeded with the given value.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// TimeSeed derives a seed from the current time, for callers that did not
// supply one. The seed is reported back so the run can be reproduced.
func TimeSeed() uint32 {
	return uint32(time.Now().UnixNano())
}

// Float64 returns the next draw in [0, 1).
func (s *Source) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Range returns the next draw scaled into [min, max).
func (s *Source) Range(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// Intn returns the next draw as an integer in [0, n).
func (s *Source) Intn(n int) int {
	return int(s.Float64() * float64(n))
}

// Shuffle performs a Fisher-Yates shuffle over n elements, consuming one
// draw per remaining element from the end of the array downward.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
