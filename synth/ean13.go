package synth

import (
	"fmt"

	"github.com/mlidesign/barcodescan/core"
	"github.com/mlidesign/barcodescan/oned"
)

// EAN13 rasterizes a 13-digit EAN-13 (or 12-digit UPC-A, zero-prefixed
// internally) digit string into a symbol image at the given module width
// and pixel height, reusing oned's canonical L/G/R pattern tables so the
// encode and decode sides never drift apart.
func EAN13(digits string, unit, height int) (core.Image, error) {
	d, err := parseDigits(digits)
	if err != nil {
		return core.Image{}, err
	}

	var runs []int
	runs = append(runs, 1, 1, 1) // left guard

	mask := oned.FirstDigitMask(d[0])
	for i := 0; i < 6; i++ {
		var pat [4]int
		if mask&(1<<uint(5-i)) != 0 {
			pat = oned.GPattern(d[1+i])
		} else {
			pat = oned.LPattern(d[1+i])
		}
		runs = append(runs, pat[:]...)
	}

	runs = append(runs, 1, 1, 1, 1, 1) // center guard

	for i := 0; i < 6; i++ {
		pat := oned.RPattern(d[7+i])
		runs = append(runs, pat[:]...)
	}

	runs = append(runs, 1, 1, 1) // right guard

	row := paintRuns(runs, unit)
	return replicateRows(row, height), nil
}

func parseDigits(s string) ([13]int, error) {
	var out [13]int
	switch len(s) {
	case 13:
		for i, c := range s {
			if c < '0' || c > '9' {
				return out, fmt.Errorf("synth: non-digit character %q", c)
			}
			out[i] = int(c - '0')
		}
	case 12:
		out[0] = 0
		for i, c := range s {
			if c < '0' || c > '9' {
				return out, fmt.Errorf("synth: non-digit character %q", c)
			}
			out[1+i] = int(c - '0')
		}
	default:
		return out, fmt.Errorf("synth: expected 12 or 13 digits, got %d", len(s))
	}
	sum := 0
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			sum += out[i]
		} else {
			sum += out[i] * 3
		}
	}
	check := (10 - sum%10) % 10
	out[12] = check
	return out, nil
}
