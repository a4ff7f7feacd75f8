package imageio_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlidesign/barcodescan/imageio"
)

func TestLoadBinaryPGM(t *testing.T) {
	// 2x2 image: 0, 255, 128, 64.
	raw := "P5\n2 2\n255\n" + string([]byte{0, 255, 128, 64})
	img, err := imageio.Load(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, []byte{0, 255, 128, 64}, img.Data)
}

func TestLoadASCIIPGM(t *testing.T) {
	raw := "P2\n2 2\n255\n0 255\n128 64\n"
	img, err := imageio.Load(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, []byte{0, 255, 128, 64}, img.Data)
}

func TestLoadPGMWithCommentIsSkipped(t *testing.T) {
	raw := "P5\n# a comment\n2 1\n255\n" + string([]byte{10, 20})
	img, err := imageio.Load(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20}, img.Data)
}

func TestLoadPGMRejectsBadMaxval(t *testing.T) {
	raw := "P5\n2 2\n999\n" + string([]byte{0, 0, 0, 0})
	_, err := imageio.Load(strings.NewReader(raw))
	assert.Error(t, err)
}

func TestLoadPGMRejectsUnsupportedMagic(t *testing.T) {
	raw := "P3\n2 2\n255\n" + string([]byte{0, 0, 0, 0})
	_, err := imageio.Load(strings.NewReader(raw))
	assert.Error(t, err)
}

func TestLoadPGMRejectsShortBody(t *testing.T) {
	raw := "P5\n4 4\n255\n" + string([]byte{0, 0})
	_, err := imageio.Load(strings.NewReader(raw))
	assert.Error(t, err)
}

func TestLoadPNGConvertsToGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	src.Set(2, 0, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := imageio.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.Equal(t, byte(255), img.Data[0])
	assert.Equal(t, byte(0), img.Data[1])
	assert.InDelta(t, 128, int(img.Data[2]), 1)
}

func TestLoadRejectsGarbageInput(t *testing.T) {
	_, err := imageio.Load(strings.NewReader("not an image"))
	assert.Error(t, err)
}

func TestLoadRejectsEmptyInput(t *testing.T) {
	_, err := imageio.Load(strings.NewReader(""))
	assert.Error(t, err)
}
