// Package synth builds synthetic raster images of valid EAN-13, Code 128,
// and QR v1 symbols, for round-trip tests and the CLI's demo mode. The QR
// raster painter (quiet zone, module-to-pixel expansion) is grounded on
// original_source/src/qr/finder.rs's synthetic test-image generators; the
// 1D run painter is new, following the same module-to-pixel expansion
// idea generalized to a run-length sequence instead of a fixed grid.
package synth

import "github.com/mlidesign/barcodescan/core"

const quietZoneModules = 10

// paintRuns rasterizes an alternating dark/light run sequence (starting
// dark) into a single pixel row of the given module width, with a light
// quiet zone of quietZoneModules on each side.
func paintRuns(runs []int, unit int) []byte {
	total := quietZoneModules * 2
	for _, r := range runs {
		total += r
	}
	row := make([]byte, total*unit)
	for i := range row {
		row[i] = 255
	}
	pos := quietZoneModules * unit
	dark := true
	for _, r := range runs {
		if dark {
			for i := 0; i < r*unit; i++ {
				row[pos+i] = 0
			}
		}
		pos += r * unit
		dark = !dark
	}
	return row
}

// replicateRows repeats a single pixel row into a height-tall image.
func replicateRows(row []byte, height int) core.Image {
	data := make([]byte, len(row)*height)
	for y := 0; y < height; y++ {
		copy(data[y*len(row):(y+1)*len(row)], row)
	}
	return core.NewImage(len(row), height, data)
}
