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

func decodeCode128Row(t *testing.T, img core.Image) (core.DecodedSymbol, error) {
	t.Helper()
	row := img.Row(img.Height / 2)
	runs := binarize.RowRuns(row, 24)
	return oned.DecodeCode128Runs(runs.Lengths)
}

func TestCode128SetBRoundTrip(t *testing.T) {
	img, err := synth.Code128("HELLO-128", synth.SetB, 3, 20)
	require.NoError(t, err)

	sym, err := decodeCode128Row(t, img)
	require.NoError(t, err)
	assert.Equal(t, core.Code128, sym.Symbology)
	assert.Equal(t, "HELLO-128", sym.Text)
}

func TestCode128SetCRoundTrip(t *testing.T) {
	img, err := synth.Code128("0123456789", synth.SetC, 3, 20)
	require.NoError(t, err)

	sym, err := decodeCode128Row(t, img)
	require.NoError(t, err)
	assert.Equal(t, core.Code128, sym.Symbology)
	assert.Equal(t, "0123456789", sym.Text)
}

func TestCode128RejectsTooShortRunSequence(t *testing.T) {
	_, err := oned.DecodeCode128Runs([]int{2, 1, 2, 2})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCode128SetCRejectsOddDigitCount(t *testing.T) {
	_, err := synth.Code128("123", synth.SetC, 3, 20)
	assert.Error(t, err)
}

func TestCode128PatternAndStopAccessorsAgreeWithTableShape(t *testing.T) {
	p := oned.Pattern(0)
	sum := 0
	for _, w := range p {
		sum += w
	}
	assert.Equal(t, 11, sum)

	stop := oned.StopPattern()
	sum = 0
	for _, w := range stop {
		sum += w
	}
	assert.Equal(t, 13, sum)
}
