package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddIsXor(t *testing.T) {
	assert.Equal(t, byte(0x53)^0xCA, Add(0x53, 0xCA))
	assert.Equal(t, byte(0), Add(7, 7))
}

func TestMulZeroAndOne(t *testing.T) {
	for a := 0; a < 256; a++ {
		x := byte(a)
		assert.Equal(t, byte(0), Mul(x, 0))
		assert.Equal(t, x, Mul(x, 1))
	}
}

func TestMulCommutative(t *testing.T) {
	for a := 0; a < 256; a += 7 {
		for b := 0; b < 256; b += 11 {
			x, y := byte(a), byte(b)
			assert.Equal(t, Mul(x, y), Mul(y, x))
		}
	}
}

func TestExpLogRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		x := byte(a)
		assert.Equal(t, x, Exp(Log(x)))
	}
}

func TestLogZeroUndefined(t *testing.T) {
	assert.Equal(t, -1, Log(0))
}

func TestPowMatchesRepeatedMul(t *testing.T) {
	for a := 1; a < 256; a += 3 {
		x := byte(a)
		want := byte(1)
		for i := 0; i < 5; i++ {
			want = Mul(want, x)
		}
		assert.Equal(t, want, Pow(x, 5))
	}
	assert.Equal(t, byte(1), Pow(0, 0))
	assert.Equal(t, byte(0), Pow(0, 3))
}

func TestInverseRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		x := byte(a)
		assert.Equal(t, byte(1), Mul(x, Inverse(x)))
	}
}

func TestInverseZeroPanics(t *testing.T) {
	assert.Panics(t, func() { Inverse(0) })
}

func TestDiv(t *testing.T) {
	for a := 0; a < 256; a += 5 {
		for b := 1; b < 256; b += 9 {
			x, y := byte(a), byte(b)
			got := Div(x, y)
			assert.Equal(t, x, Mul(got, y))
		}
	}
	assert.Equal(t, byte(0), Div(0, 5))
}
