package bch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for data := uint(0); data < 32; data++ {
		word := Encode(data)
		got, dist, ok := Decode(word)
		require.True(t, ok)
		assert.Equal(t, 0, dist)
		assert.Equal(t, data, got)
	}
}

func TestDecodeCorrectsUpToThreeBitErrors(t *testing.T) {
	word := Encode(0b10110)
	for _, flips := range [][]uint{
		{0},
		{0, 5},
		{0, 5, 10},
	} {
		corrupted := word
		for _, bit := range flips {
			corrupted ^= 1 << bit
		}
		data, dist, ok := Decode(corrupted)
		require.True(t, ok)
		assert.Equal(t, uint(0b10110), data)
		assert.LessOrEqual(t, dist, 3)
	}
}

func TestDecodeRejectsExcessiveErrors(t *testing.T) {
	word := Encode(0b00000)
	// Flipping the low four bits leaves the word at Hamming distance 4 or
	// more from every valid codeword, outside the distance-3 correction
	// radius.
	corrupted := word ^ 0b1111
	_, _, ok := Decode(corrupted)
	assert.False(t, ok)
}

func TestEncodeRangePanics(t *testing.T) {
	assert.Panics(t, func() { Encode(32) })
}

func TestAllCodewordsAreDistinct(t *testing.T) {
	seen := make(map[uint]bool)
	for d := uint(0); d < 32; d++ {
		w := Encode(d)
		assert.False(t, seen[w], "duplicate codeword for data %d", d)
		seen[w] = true
	}
}
