package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPredicateMatchesFormulas(t *testing.T) {
	cases := []struct {
		maskID uint8
		x, y   int
		want   bool
	}{
		{0, 2, 4, true},   // (2+4)%2==0
		{0, 2, 3, false},  // (2+3)%2!=0
		{1, 4, 0, true},   // y%2==0
		{1, 4, 1, false},
		{2, 3, 5, true},   // x%3==0
		{2, 4, 5, false},
		{3, 1, 2, true},   // (1+2)%3==0
		{3, 1, 1, false},
		{4, 2, 4, true},   // (4/2+2/3)%2 == (2+0)%2==0
		{4, 2, 2, false},  // (2/2+2/3)%2 == (1+0)%2!=0
	}
	for _, c := range cases {
		got := MaskPredicate(c.maskID, c.x, c.y)
		assert.Equal(t, c.want, got, "mask %d at (%d,%d)", c.maskID, c.x, c.y)
	}
}

func TestMaskPredicateUnknownIDIsFalse(t *testing.T) {
	assert.False(t, MaskPredicate(8, 0, 0))
}

func TestUnmaskOnlyTouchesDataModules(t *testing.T) {
	var grid Grid21
	// Mark a function module dark and a data module dark; Unmask with a
	// mask that would flip both at this coordinate should leave the
	// function module alone.
	grid.set(0, 0, true) // function module (top-left finder)
	grid.set(9, 9, true) // data module

	before := grid
	Unmask(&grid, 0) // mask 0 flips (0,0) and (9,9): (0+0)%2==0, (9+9)%2==0

	assert.Equal(t, before.at(0, 0), grid.at(0, 0), "function module must be untouched")
	assert.NotEqual(t, before.at(9, 9), grid.at(9, 9), "data module should be flipped")
}

func TestUnmaskIsSelfInverse(t *testing.T) {
	var grid Grid21
	for i := range grid {
		grid[i] = i%3 == 0
	}
	original := grid
	Unmask(&grid, 5)
	Unmask(&grid, 5)
	assert.Equal(t, original, grid)
}
