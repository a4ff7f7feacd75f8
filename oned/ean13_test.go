package oned_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlidesign/barcodescan/binarize"
	"github.com/mlidesign/barcodescan/core"
	"github.com/mlidesign/barcodescan/oned"
	"github.com/mlidesign/barcodescan/synth"
)

func decodeEAN13Row(t *testing.T, img core.Image) (core.DecodedSymbol, error) {
	t.Helper()
	row := img.Row(img.Height / 2)
	runs := binarize.RowRuns(row, 40)
	modules := binarize.QuantizeAll(runs.Lengths)
	return oned.DecodeEAN13Modules(modules)
}

func TestEAN13RoundTrip(t *testing.T) {
	img, err := synth.EAN13("5901234123457", 3, 20)
	require.NoError(t, err)

	sym, err := decodeEAN13Row(t, img)
	require.NoError(t, err)
	assert.Equal(t, core.EAN13, sym.Symbology)
	assert.Equal(t, "5901234123457", sym.Text)
}

func TestUPCARoundTrip(t *testing.T) {
	img, err := synth.EAN13("036000291452", 3, 20)
	require.NoError(t, err)

	sym, err := decodeEAN13Row(t, img)
	require.NoError(t, err)
	assert.Equal(t, core.UPCA, sym.Symbology)
	assert.Equal(t, "036000291452", sym.Text)
}

func TestEAN13RejectsBadChecksum(t *testing.T) {
	img, err := synth.EAN13("5901234123457", 3, 20)
	require.NoError(t, err)

	row := img.Row(img.Height / 2)
	runs := binarize.RowRuns(row, 40)
	modules := binarize.QuantizeAll(runs.Lengths)
	// Replace the check digit's pattern (the last four widths before the
	// closing guard and quiet zone) with the R-pattern of 8 instead of 7, so
	// every window still decodes but the check digit no longer matches.
	r8 := oned.RPattern(8)
	copy(modules[len(modules)-8:len(modules)-4], r8[:])
	_, err = oned.DecodeEAN13Modules(modules)
	assert.ErrorIs(t, err, core.ErrChecksum)
}

func TestEAN13RejectsEmptyInput(t *testing.T) {
	_, err := oned.DecodeEAN13Modules(nil)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEAN13FirstDigitMaskTableIsInjective(t *testing.T) {
	seen := make(map[uint]bool)
	for d := 0; d < 10; d++ {
		m := oned.FirstDigitMask(d)
		assert.False(t, seen[m], "duplicate first-digit mask for digit %d", d)
		seen[m] = true
	}
}
