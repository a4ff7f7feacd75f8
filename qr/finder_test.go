package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinderRatioErrorIsZeroForIdealSignature(t *testing.T) {
	// 1:1:3:1:1 at unit width 4: widths 4,4,12,4,4.
	err := finderRatioError([5]int{4, 4, 12, 4, 4})
	assert.InDelta(t, 0, err, 1e-9)
}

func TestFinderRatioErrorRejectsNonFinderRuns(t *testing.T) {
	// Five equal-width runs look nothing like 1:1:3:1:1.
	err := finderRatioError([5]int{5, 5, 5, 5, 5})
	assert.Greater(t, err, finderRatioTolerance)
}

func TestFinderRatioErrorHandlesZeroSum(t *testing.T) {
	err := finderRatioError([5]int{0, 0, 0, 0, 0})
	assert.Equal(t, mathInf, err)
}

// solidFinderRow builds a single pixel row containing one synthetic
// 1:1:3:1:1 finder pattern centered in a field of light pixels.
func solidFinderRow(unit, width int) []byte {
	row := make([]byte, width)
	for i := range row {
		row[i] = 255
	}
	widths := []int{unit, unit, unit * 3, unit, unit}
	start := (width - unit*7) / 2
	dark := true
	pos := start
	for _, w := range widths {
		if dark {
			for i := 0; i < w; i++ {
				row[pos+i] = 0
			}
		}
		pos += w
		dark = !dark
	}
	return row
}

func TestFindOnLineLocatesCenteredFinderPattern(t *testing.T) {
	const unit, width = 4, 200
	row := solidFinderRow(unit, width)
	centers := findOnLine(row)
	require.NotEmpty(t, centers)

	wantCenter := float64(width) / 2
	found := false
	for _, c := range centers {
		if c > wantCenter-float64(unit) && c < wantCenter+float64(unit) {
			found = true
		}
	}
	assert.True(t, found, "expected a finder candidate near %v, got %v", wantCenter, centers)
}

func TestFindOnLineEmptyRowReturnsNil(t *testing.T) {
	assert.Nil(t, findOnLine(nil))
}

func TestClassifyTLTRBLOrdersRightAngleAsTL(t *testing.T) {
	pts := []FinderCenter{
		{Point: Point{X: 0, Y: 0}, Support: 3},  // right-angle vertex
		{Point: Point{X: 100, Y: 0}, Support: 3}, // same row as TL -> TR
		{Point: Point{X: 0, Y: 100}, Support: 3}, // same column as TL -> BL
	}
	tl, tr, bl, ok := ClassifyTLTRBL(pts)
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 0}, tl)
	assert.Equal(t, Point{X: 100, Y: 0}, tr)
	assert.Equal(t, Point{X: 0, Y: 100}, bl)
}

func TestClassifyTLTRBLRequiresExactlyThree(t *testing.T) {
	_, _, _, ok := ClassifyTLTRBL([]FinderCenter{{Point: Point{}, Support: 1}})
	assert.False(t, ok)
}
