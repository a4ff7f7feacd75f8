package qr

import "github.com/mlidesign/barcodescan/bch"

// EcLevel is a QR error-correction level.
type EcLevel int

const (
	EcL EcLevel = iota
	EcM
	EcQ
	EcH
)

func (l EcLevel) String() string {
	switch l {
	case EcL:
		return "L"
	case EcM:
		return "M"
	case EcQ:
		return "Q"
	case EcH:
		return "H"
	default:
		return "?"
	}
}

// ecBits is the fixed 2-bit encoding used inside the 5-bit BCH data word:
// L=01, M=00, Q=11, H=10.
var ecBits = [4]uint{EcL: 0b01, EcM: 0b00, EcQ: 0b11, EcH: 0b10}

var ecFromBits = map[uint]EcLevel{0b01: EcL, 0b00: EcM, 0b11: EcQ, 0b10: EcH}

// formatCopyACoords and formatCopyBCoords are the fixed coordinate lists
// for the two redundant copies of format information in a v1 symbol, per
// spec.md section 4.6. Order matters: the first coordinate yields the
// highest-order bit of the 15-bit codeword.
var formatCopyACoords = [15][2]int{
	{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8}, {7, 8}, {8, 8},
	{8, 7}, {8, 5}, {8, 4}, {8, 3}, {8, 2}, {8, 1}, {8, 0},
}

var formatCopyBCoords = [15][2]int{
	{8, 20}, {8, 19}, {8, 18}, {8, 17}, {8, 16}, {8, 15}, {8, 14},
	{13, 8}, {14, 8}, {15, 8}, {16, 8}, {17, 8}, {18, 8}, {19, 8}, {20, 8},
}

func readFormatWord(grid Grid21, coords [15][2]int) uint {
	var word uint
	for _, c := range coords {
		word <<= 1
		if grid.at(c[0], c[1]) {
			word |= 1
		}
	}
	return word
}

// FormatInfo is the decoded QR format word.
type FormatInfo struct {
	EC       EcLevel
	MaskID   uint8
	Distance int
}

// DecodeFormatInfo reads both 15-bit format copies and returns the
// candidate with the smaller Hamming distance to a valid BCH(15,5)
// codeword, per spec.md section 4.6. ok is false if neither copy is within
// distance 3 of any valid codeword.
func DecodeFormatInfo(grid Grid21) (FormatInfo, bool) {
	wordA := readFormatWord(grid, formatCopyACoords)
	wordB := readFormatWord(grid, formatCopyBCoords)

	best, bestOK := bestFormat(wordA)
	candB, okB := bestFormat(wordB)
	if okB && (!bestOK || candB.Distance < best.Distance) {
		best, bestOK = candB, true
	}
	return best, bestOK
}

func bestFormat(word uint) (FormatInfo, bool) {
	data, dist, ok := bch.Decode(word)
	if !ok {
		return FormatInfo{}, false
	}
	ec, known := ecFromBits[data>>3]
	if !known {
		return FormatInfo{}, false
	}
	return FormatInfo{EC: ec, MaskID: uint8(data & 0b111), Distance: dist}, true
}

// EncodeFormatInfo computes the 15-bit masked BCH codeword for (ec, maskID),
// the inverse of DecodeFormatInfo; used by package synth to paint valid
// format bits into a synthetic symbol.
func EncodeFormatInfo(ec EcLevel, maskID uint8) uint {
	data := (ecBits[ec] << 3) | uint(maskID)
	return bch.Encode(data)
}
