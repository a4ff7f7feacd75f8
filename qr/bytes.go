package qr

import (
	"unicode/utf8"

	"github.com/mlidesign/barcodescan/core"
)

// codewordsPerEC gives (dataCodewords, ecCodewords) for each EC level in a
// v1 symbol, per spec.md's data model: 26 codewords total in every case.
var codewordsPerEC = map[EcLevel][2]int{
	EcL: {19, 7},
	EcM: {16, 10},
	EcQ: {13, 13},
	EcH: {9, 17},
}

const totalCodewords = 26

// PackBits packs a 208-bit slice, MSB-first per byte, into 26 codewords.
func PackBits(bits []bool) []byte {
	out := make([]byte, totalCodewords)
	for i, b := range bits {
		if !b {
			continue
		}
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		out[byteIdx] |= 1 << uint(bitIdx)
	}
	return out
}

// UnpackBits is the inverse of PackBits, used by package synth.
func UnpackBits(codewords []byte) []bool {
	bits := make([]bool, len(codewords)*8)
	for i, c := range codewords {
		for b := 0; b < 8; b++ {
			bits[i*8+b] = (c>>(7-uint(b)))&1 == 1
		}
	}
	return bits
}

// SplitCodewords divides a 26-codeword block into data and EC codewords
// for the given EC level.
func SplitCodewords(codewords []byte, ec EcLevel) (data, ecBytes []byte) {
	split := codewordsPerEC[ec]
	return codewords[:split[0]], codewords[split[0]:]
}

// ECLen returns the number of error-correction codewords for the given EC
// level in a v1 symbol.
func ECLen(ec EcLevel) int {
	return codewordsPerEC[ec][1]
}

// ByteModePayload is a decoded QR Byte-mode payload.
type ByteModePayload struct {
	Text         string
	Raw          []byte
	ValidUTF8    bool
}

// ParseByteMode reads a 4-bit mode indicator (must be 0b0100), an 8-bit
// length, and that many payload bytes from data. Returns
// core.ErrInvalidPayload if the declared length would overflow the
// available data bytes.
func ParseByteMode(data []byte) (ByteModePayload, error) {
	if len(data) < 2 {
		return ByteModePayload{}, core.ErrInvalidPayload
	}
	mode := data[0] >> 4
	if mode != 0b0100 {
		return ByteModePayload{}, core.ErrInvalidPayload
	}
	length := int((data[0]&0x0F)<<4 | (data[1] >> 4))

	// The length field occupies the low nibble of data[0] and the high
	// nibble of data[1]; payload bytes begin at the low nibble of data[1].
	maxPayload := len(data) - 2
	if length > maxPayload {
		return ByteModePayload{}, core.ErrInvalidPayload
	}

	payload := make([]byte, length)
	for i := 0; i < length; i++ {
		lo := data[1+i] & 0x0F
		hi := data[2+i] >> 4
		payload[i] = (lo << 4) | hi
	}

	valid := utf8.Valid(payload)
	result := ByteModePayload{Raw: payload, ValidUTF8: valid}
	if valid {
		result.Text = string(payload)
	}
	return result, nil
}
