package qr

// IsFunctionModuleV1 reports whether (x, y) in a 21x21 v1 symbol is a
// function module: one of the three finder+separator 9x9/8x9/9x8
// rectangles at the corners, or the timing row (y=6) / column (x=6). This
// is the stricter of the two variants spec.md flags as ambiguous (resolved
// in SPEC_FULL.md section 9, open question 2): format-information bands
// fall out of the finder-rectangle extents rather than being re-marked by
// a separate rule. Grounded on original_source/src/qr/data.rs's
// is_function_v1.
func IsFunctionModuleV1(x, y int) bool {
	if x < 0 || x >= gridSize || y < 0 || y >= gridSize {
		return false
	}
	// Top-left finder + separator + format bands: rows/cols 0..8.
	if x <= 8 && y <= 8 {
		return true
	}
	// Top-right finder + separator + format band: cols 13..20, rows 0..8.
	if x >= 13 && y <= 8 {
		return true
	}
	// Bottom-left finder + separator + format band: cols 0..8, rows 13..20.
	if x <= 8 && y >= 13 {
		return true
	}
	// Timing pattern.
	if x == 6 || y == 6 {
		return true
	}
	return false
}

// FunctionModuleCount returns the number of function modules in a v1
// symbol; spec.md requires this to equal 233.
func FunctionModuleCount() int {
	count := 0
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			if IsFunctionModuleV1(x, y) {
				count++
			}
		}
	}
	return count
}

// zigZagCoordsV1 is the precomputed traversal order of all 420 module
// coordinates outside the timing column, in column-pair zig-zag order,
// skipping column x=6 entirely (spec.md section 9, open question 1;
// original_source's walk_pairs_v1).
var zigZagCoordsV1 = buildZigZagV1()

func buildZigZagV1() [][2]int {
	var coords [][2]int
	upward := true
	for xRight := gridSize - 1; xRight >= 0; xRight -= 2 {
		xLeft := xRight - 1
		if xRight == 6 {
			xRight--
			xLeft = xRight - 1
		}
		if xLeft == 6 {
			xLeft--
		}
		if xLeft < 0 {
			break
		}
		if upward {
			for y := gridSize - 1; y >= 0; y-- {
				coords = append(coords, [2]int{xRight, y}, [2]int{xLeft, y})
			}
		} else {
			for y := 0; y < gridSize; y++ {
				coords = append(coords, [2]int{xRight, y}, [2]int{xLeft, y})
			}
		}
		upward = !upward
	}
	return coords
}

// ExtractDataBits walks the zig-zag coordinate order, collecting the
// (already unmasked) bit from every non-function module, stopping at 208
// bits.
func ExtractDataBits(grid Grid21) []bool {
	const wantBits = 208
	bits := make([]bool, 0, wantBits)
	for _, c := range zigZagCoordsV1 {
		x, y := c[0], c[1]
		if IsFunctionModuleV1(x, y) {
			continue
		}
		bits = append(bits, grid.at(x, y))
		if len(bits) == wantBits {
			break
		}
	}
	return bits
}
