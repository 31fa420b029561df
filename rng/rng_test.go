package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterminism(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d diverged", i)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestFloat64Bounds(t *testing.T) {
	s := New(42)
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.Range(-10, 10)
		require.GreaterOrEqual(t, v, -10.0)
		require.Less(t, v, 10.0)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	s := New(99)
	vals := []int{0, 1, 2, 3, 4, 5, 6, 7}
	s.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })

	seen := make(map[int]bool)
	for _, v := range vals {
		require.False(t, seen[v], "value %d duplicated", v)
		seen[v] = true
	}
	assert.Len(t, seen, 8)
}

func TestShuffleDeterministic(t *testing.T) {
	run := func() []int {
		s := New(555)
		vals := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		s.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
		return vals
	}
	assert.Equal(t, run(), run())
}
