package oned

import "github.com/mlidesign/barcodescan/core"

// code128Patterns holds the six run widths (modules, summing to 11) for
// symbol values 0..105: 0..102 are character codes, 103/104/105 are
// START A/B/C. This is the standard ISO/IEC 15417 symbol table.
var code128Patterns = [...][6]int{
	{2, 1, 2, 2, 2, 2}, {2, 2, 2, 1, 2, 2}, {2, 2, 2, 2, 2, 1}, {1, 2, 1, 2, 2, 3},
	{1, 2, 1, 3, 2, 2}, {1, 3, 1, 2, 2, 2}, {1, 2, 2, 2, 1, 3}, {1, 2, 2, 3, 1, 2},
	{1, 3, 2, 2, 1, 2}, {2, 2, 1, 2, 1, 3}, {2, 2, 1, 3, 1, 2}, {2, 3, 1, 2, 1, 2},
	{1, 1, 2, 2, 3, 2}, {1, 2, 2, 1, 3, 2}, {1, 2, 2, 2, 3, 1}, {1, 1, 3, 2, 2, 2},
	{1, 2, 3, 1, 2, 2}, {1, 2, 3, 2, 2, 1}, {2, 2, 3, 2, 1, 1}, {2, 2, 1, 1, 3, 2},
	{2, 2, 1, 2, 3, 1}, {2, 1, 3, 2, 1, 2}, {2, 2, 3, 1, 1, 2}, {3, 1, 2, 1, 3, 1},
	{3, 1, 1, 2, 2, 2}, {3, 2, 1, 1, 2, 2}, {3, 2, 1, 2, 2, 1}, {3, 1, 2, 2, 1, 2},
	{3, 2, 2, 1, 1, 2}, {3, 2, 2, 2, 1, 1}, {2, 1, 2, 1, 2, 3}, {2, 1, 2, 3, 2, 1},
	{2, 3, 2, 1, 2, 1}, {1, 1, 1, 3, 2, 3}, {1, 3, 1, 1, 2, 3}, {1, 3, 1, 3, 2, 1},
	{1, 1, 2, 3, 1, 3}, {1, 3, 2, 1, 1, 3}, {1, 3, 2, 3, 1, 1}, {2, 1, 1, 3, 1, 3},
	{2, 3, 1, 1, 1, 3}, {2, 3, 1, 3, 1, 1}, {1, 1, 2, 1, 3, 3}, {1, 1, 2, 3, 3, 1},
	{1, 3, 2, 1, 3, 1}, {1, 1, 3, 1, 2, 3}, {1, 1, 3, 3, 2, 1}, {1, 3, 3, 1, 2, 1},
	{3, 1, 3, 1, 2, 1}, {2, 1, 1, 3, 3, 1}, {2, 3, 1, 1, 3, 1}, {2, 1, 3, 1, 1, 3},
	{2, 1, 3, 3, 1, 1}, {2, 1, 3, 1, 3, 1}, {3, 1, 1, 1, 2, 3}, {3, 1, 1, 3, 2, 1},
	{3, 3, 1, 1, 2, 1}, {3, 1, 2, 1, 1, 3}, {3, 1, 2, 3, 1, 1}, {3, 3, 2, 1, 1, 1},
	{3, 1, 4, 1, 1, 1}, {2, 2, 1, 4, 1, 1}, {4, 3, 1, 1, 1, 1}, {1, 1, 1, 2, 2, 4},
	{1, 1, 1, 4, 2, 2}, {1, 2, 1, 1, 2, 4}, {1, 2, 1, 4, 2, 1}, {1, 4, 1, 1, 2, 2},
	{1, 4, 1, 2, 2, 1}, {1, 1, 2, 2, 1, 4}, {1, 1, 2, 4, 1, 2}, {1, 2, 2, 1, 1, 4},
	{1, 2, 2, 4, 1, 1}, {1, 4, 2, 1, 1, 2}, {1, 4, 2, 2, 1, 1}, {2, 4, 1, 2, 1, 1},
	{2, 2, 1, 1, 1, 4}, {4, 1, 3, 1, 1, 1}, {2, 4, 1, 1, 1, 2}, {1, 3, 4, 1, 1, 1},
	{1, 1, 1, 2, 4, 2}, {1, 2, 1, 1, 4, 2}, {1, 2, 1, 2, 4, 1}, {1, 1, 4, 2, 1, 2},
	{1, 2, 4, 1, 1, 2}, {1, 2, 4, 2, 1, 1}, {4, 1, 1, 2, 1, 2}, {4, 2, 1, 1, 1, 2},
	{4, 2, 1, 2, 1, 1}, {2, 1, 2, 1, 4, 1}, {2, 1, 4, 1, 2, 1}, {4, 1, 2, 1, 2, 1},
	{1, 1, 1, 1, 4, 3}, {1, 1, 1, 3, 4, 1}, {1, 3, 1, 1, 4, 1}, {1, 1, 4, 1, 1, 3},
	{1, 1, 4, 3, 1, 1}, {4, 1, 1, 1, 1, 3}, {4, 1, 1, 3, 1, 1}, {1, 1, 3, 1, 4, 1},
	{1, 1, 4, 1, 3, 1}, {3, 1, 1, 1, 4, 1}, {4, 1, 1, 1, 3, 1}, {2, 1, 1, 4, 1, 2},
	{2, 1, 1, 2, 1, 4}, {2, 1, 1, 2, 3, 2},
}

// code128Stop is the canonical seven-width STOP pattern, summing to 13.
var code128Stop = [7]int{2, 3, 3, 1, 1, 1, 2}

const (
	startA = 103
	startB = 104
	startC = 105

	// StartA, StartB, StartC are the exported start-code symbol values,
	// for package synth's raster encoder.
	StartA = startA
	StartB = startB
	StartC = startC
)

// Pattern returns the six run widths for symbol value v (0..105).
func Pattern(v int) [6]int { return code128Patterns[v] }

// StopPattern returns the canonical seven-width STOP pattern.
func StopPattern() [7]int { return code128Stop }

func normalize(widths []int, targetSum int) []float64 {
	sum := 0
	for _, w := range widths {
		sum += w
	}
	out := make([]float64, len(widths))
	if sum == 0 {
		return out
	}
	scale := float64(targetSum) / float64(sum)
	for i, w := range widths {
		out[i] = float64(w) * scale
	}
	return out
}

func manhattanDistF(a []float64, b []int) float64 {
	d := 0.0
	for i := range a {
		diff := a[i] - float64(b[i])
		if diff < 0 {
			diff = -diff
		}
		d += diff
	}
	return d
}

func matchSixRunPattern(runs []int) (value int, dist float64) {
	norm := normalize(runs, 11)
	best := 1e18
	bestValue := -1
	for v := 0; v < len(code128Patterns); v++ {
		d := manhattanDistF(norm, code128Patterns[v][:])
		if d < best {
			best = d
			bestValue = v
		}
	}
	return bestValue, best
}

func matchStopPattern(runs []int) float64 {
	norm := normalize(runs, 13)
	return manhattanDistF(norm, code128Stop[:])
}

const code128MaxCharDist = 1.6
const code128MaxStopDist = 1.0

// DecodeCode128Runs attempts to decode a raw (unquantized) run-length
// sequence as a Code 128 symbol, per spec.md's backward-STOP-walk strategy:
// locate a STOP candidate, then walk backward in groups of six runs until a
// start code is found.
func DecodeCode128Runs(runs []int) (core.DecodedSymbol, error) {
	n := len(runs)
	if n < 7+6 {
		return core.DecodedSymbol{}, core.ErrNotFound
	}

	stopStart := -1
	for i := n - 7; i >= 0; i-- {
		if matchStopPattern(runs[i:i+7]) <= code128MaxStopDist {
			stopStart = i
			break
		}
	}
	if stopStart < 0 {
		return core.DecodedSymbol{}, core.ErrNotFound
	}

	var valuesReversed []int
	pos := stopStart
	startValue := -1
	for pos-6 >= 0 {
		pos -= 6
		window := runs[pos : pos+6]
		value, dist := matchSixRunPattern(window)
		if dist > code128MaxCharDist {
			return core.DecodedSymbol{}, core.ErrNotFound
		}
		if value == startA || value == startB || value == startC {
			startValue = value
			break
		}
		valuesReversed = append(valuesReversed, value)
	}
	if startValue < 0 {
		return core.DecodedSymbol{}, core.ErrNotFound
	}

	values := make([]int, len(valuesReversed))
	for i, v := range valuesReversed {
		values[len(values)-1-i] = v
	}
	if len(values) < 1 {
		return core.DecodedSymbol{}, core.ErrNotFound
	}
	payload := values[:len(values)-1]
	checksum := values[len(values)-1]

	expected := startValue
	for i, v := range payload {
		expected += v * (i + 1)
	}
	expected %= 103
	if expected != checksum {
		return core.DecodedSymbol{}, core.ErrChecksum
	}

	text, err := interpretCode128(startValue, payload)
	if err != nil {
		return core.DecodedSymbol{}, err
	}

	return core.DecodedSymbol{
		Symbology:  core.Code128,
		Text:       text,
		Confidence: 0.9,
	}, nil
}

type code128Set int

const (
	setA code128Set = iota
	setB
	setC
)

// interpretCode128 runs the A/B/C/shift/FNC1 state machine over the
// payload values, per spec.md section 4.3.
func interpretCode128(startValue int, payload []int) (string, error) {
	var set code128Set
	switch startValue {
	case startA:
		set = setA
	case startB:
		set = setB
	case startC:
		set = setC
	default:
		return "", core.ErrNotFound
	}

	var out []byte
	shift := false
	shiftSet := setA

	for _, v := range payload {
		active := set
		if shift {
			active = shiftSet
			shift = false
		}

		switch active {
		case setA:
			switch {
			case v <= 95:
				out = append(out, byte(v))
			case v == 96 || v == 97: // FNC3/FNC2, ignored
			case v == 98:
				shift = true
				shiftSet = setB
			case v == 99:
				set = setC
			case v == 100:
				set = setB
			case v == 101: // CODE-A no-op
			case v == 102:
				out = append(out, 29)
			default:
				return "", core.ErrInvalidPayload
			}
		case setB:
			switch {
			case v <= 95:
				out = append(out, byte(v+32))
			case v == 98:
				shift = true
				shiftSet = setA
			case v == 99:
				set = setC
			case v == 100: // no-op
			case v == 101:
				set = setA
			case v == 102:
				out = append(out, 29)
			default:
				return "", core.ErrInvalidPayload
			}
		case setC:
			switch {
			case v <= 98:
				out = append(out, byte('0'+v/10), byte('0'+v%10))
			case v == 99: // no-op
			case v == 100:
				set = setB
			case v == 101:
				set = setA
			case v == 102:
				out = append(out, 29)
			default:
				return "", core.ErrInvalidPayload
			}
		}
	}
	return string(out), nil
}
