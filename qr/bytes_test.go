package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackBitsRoundTrip(t *testing.T) {
	bits := make([]bool, 208)
	for i := range bits {
		bits[i] = i%5 == 0
	}
	packed := PackBits(bits)
	assert.Len(t, packed, totalCodewords)

	unpacked := UnpackBits(packed)
	require.Len(t, unpacked, totalCodewords*8)
	assert.Equal(t, bits, unpacked[:len(bits)])
}

func TestSplitCodewordsMatchesECLen(t *testing.T) {
	codewords := make([]byte, totalCodewords)
	for ec, split := range codewordsPerEC {
		data, ecBytes := SplitCodewords(codewords, ec)
		assert.Len(t, data, split[0])
		assert.Len(t, ecBytes, split[1])
		assert.Equal(t, split[1], ECLen(ec))
	}
}

func TestParseByteModeValidPayload(t *testing.T) {
	// Nibble stream: mode(0100) | length(00000101) | "HELLO", packed
	// MSB-first two nibbles per byte, per spec.md section 4.10.
	buf := []byte{0x40, 0x54, 0x84, 0x54, 0xc4, 0xc4, 0xf0}

	got, err := ParseByteMode(buf)
	require.NoError(t, err)
	assert.True(t, got.ValidUTF8)
	assert.Equal(t, "HELLO", got.Text)
	assert.Equal(t, []byte("HELLO"), got.Raw)
}

func TestParseByteModeRejectsWrongModeIndicator(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00}
	_, err := ParseByteMode(buf)
	assert.Error(t, err)
}

func TestParseByteModeRejectsOverflowingLength(t *testing.T) {
	// Declares a length far larger than the available data.
	buf := []byte{0x4F, 0xF0}
	_, err := ParseByteMode(buf)
	assert.Error(t, err)
}

func TestParseByteModeRejectsTooShortInput(t *testing.T) {
	_, err := ParseByteMode([]byte{0x40})
	assert.Error(t, err)
}
