// Package oned implements the 1D row-scan decoders: EAN-13/UPC-A and
// Code 128. The EAN-13 decoder operates on the quantized module stream
// produced by package binarize; the Code 128 decoder takes raw run lengths
// and normalizes each symbol window itself. There is no teacher counterpart for 1D symbologies in
// nayuki/qrcodegen (a QR-only encoder), so the guard/pattern/checksum logic
// here is grounded directly on spec.md's numeric description and on the
// small single-purpose decode-helper style used by
// jalphad-abstract_algebra's QR extractor in the reference pack.
package oned

import "github.com/mlidesign/barcodescan/core"

// lPatterns ("A") and gPatterns ("B") are the left-half odd/even digit
// encodings; rPatterns ("C") are the right-half encodings. Each entry is
// four run widths (in modules) summing to 7.
var lPatterns = [10][4]int{
	{3, 2, 1, 1}, {2, 2, 2, 1}, {2, 1, 2, 2}, {1, 4, 1, 1}, {1, 1, 3, 2},
	{1, 2, 3, 1}, {1, 1, 1, 4}, {1, 3, 1, 2}, {1, 2, 1, 3}, {3, 1, 1, 2},
}

var gPatterns = [10][4]int{
	{1, 1, 2, 3}, {1, 2, 2, 2}, {2, 2, 1, 2}, {1, 1, 4, 1}, {2, 3, 1, 1},
	{1, 3, 2, 1}, {4, 1, 1, 1}, {2, 1, 3, 1}, {3, 1, 2, 1}, {2, 1, 1, 3},
}

var rPatterns = lPatterns

// firstDigitMask maps the 6-bit L/G parity pattern of the left half to the
// implied first digit. Bit 5-i set means the i-th left digit (0 = leftmost)
// used the G pattern, i.e. the mask is the parity string read MSB-first in
// left-to-right digit order, matching the standard EAN-13 table.
var firstDigitMask = [10]uint{
	0b000000, 0b001011, 0b001101, 0b001110, 0b010011,
	0b011001, 0b011100, 0b010101, 0b010110, 0b011010,
}

// LPattern, GPattern, and RPattern expose the canonical digit patterns for
// package synth's EAN-13 raster encoder, so the encode and decode sides
// share one source of truth for the symbol tables.
func LPattern(d int) [4]int { return lPatterns[d] }
func GPattern(d int) [4]int { return gPatterns[d] }
func RPattern(d int) [4]int { return rPatterns[d] }

// FirstDigitMask returns the 6-bit L/G parity pattern that implies first
// digit d.
func FirstDigitMask(d int) uint { return firstDigitMask[d] }

func patternDistance(modules []int, pattern [4]int) int {
	d := 0
	for i := 0; i < 4; i++ {
		diff := modules[i] - pattern[i]
		if diff < 0 {
			diff = -diff
		}
		d += diff
	}
	return d
}

func bestDigit(modules []int, table *[10][4]int) (digit, dist int) {
	best := 1 << 30
	bestDigit := -1
	for d := 0; d < 10; d++ {
		dist := patternDistance(modules, table[d])
		if dist < best {
			best = dist
			bestDigit = d
		}
	}
	return bestDigit, best
}

const maxPatternDistance = 3

// DecodeEAN13Modules attempts to decode a quantized module stream (as
// produced by binarize.QuantizeAll) as an EAN-13 or UPC-A symbol. It
// returns core.ErrNotFound if no guard could be located, or
// core.ErrChecksum if a pattern decoded but failed verification.
func DecodeEAN13Modules(modules []int) (core.DecodedSymbol, error) {
	i := 0
	n := len(modules)

	// Leading guard [1,1,1].
	for ; i+3 <= n; i++ {
		if modules[i] == 1 && modules[i+1] == 1 && modules[i+2] == 1 {
			break
		}
	}
	if i+3 > n {
		return core.DecodedSymbol{}, core.ErrNotFound
	}
	i += 3

	digits := make([]int, 13)
	mask := uint(0)
	for d := 0; d < 6; d++ {
		if i+4 > n {
			return core.DecodedSymbol{}, core.ErrNotFound
		}
		window := modules[i : i+4]
		lDigit, lDist := bestDigit(window, &lPatterns)
		gDigit, gDist := bestDigit(window, &gPatterns)
		if lDist <= gDist {
			if lDist > maxPatternDistance {
				return core.DecodedSymbol{}, core.ErrNotFound
			}
			digits[1+d] = lDigit
		} else {
			if gDist > maxPatternDistance {
				return core.DecodedSymbol{}, core.ErrNotFound
			}
			digits[1+d] = gDigit
			mask |= 1 << uint(5-d)
		}
		i += 4
	}

	// Center guard: five consecutive 1-modules.
	if i+5 > n {
		return core.DecodedSymbol{}, core.ErrNotFound
	}
	for k := 0; k < 5; k++ {
		if modules[i+k] != 1 {
			return core.DecodedSymbol{}, core.ErrNotFound
		}
	}
	i += 5

	for d := 0; d < 6; d++ {
		if i+4 > n {
			return core.DecodedSymbol{}, core.ErrNotFound
		}
		window := modules[i : i+4]
		digit, dist := bestDigit(window, &rPatterns)
		if dist > maxPatternDistance {
			return core.DecodedSymbol{}, core.ErrNotFound
		}
		digits[7+d] = digit
		i += 4
	}

	// Closing guard [1,1,1].
	if i+3 > n || modules[i] != 1 || modules[i+1] != 1 || modules[i+2] != 1 {
		return core.DecodedSymbol{}, core.ErrNotFound
	}

	firstDigit := -1
	for d := 0; d < 10; d++ {
		if firstDigitMask[d] == mask {
			firstDigit = d
			break
		}
	}
	if firstDigit < 0 {
		return core.DecodedSymbol{}, core.ErrNotFound
	}
	digits[0] = firstDigit

	sum := 0
	for idx := 0; idx < 12; idx++ {
		if idx%2 == 0 {
			sum += digits[idx]
		} else {
			sum += digits[idx] * 3
		}
	}
	check := (10 - sum%10) % 10
	if check != digits[12] {
		return core.DecodedSymbol{}, core.ErrChecksum
	}

	text := make([]byte, 13)
	for idx, d := range digits {
		text[idx] = byte('0' + d)
	}

	if digits[0] == 0 {
		return core.DecodedSymbol{
			Symbology:  core.UPCA,
			Text:       string(text[1:]),
			Confidence: 0.9,
		}, nil
	}
	return core.DecodedSymbol{
		Symbology:  core.EAN13,
		Text:       string(text),
		Confidence: 0.9,
	}, nil
}
