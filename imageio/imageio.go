// Package imageio decodes image files into the core.Image grayscale raster
// the decoders consume. PGM has a small, fixed grammar, so it stays a
// hand-rolled reader, matching the teacher's own preference for terse
// single-purpose parsing functions over a dependency for a trivial format;
// PNG and JPEG are decoded via the stdlib image codecs and converted to
// luminance with the ITU-R BT.601 weights.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/mlidesign/barcodescan/core"
)

// Load sniffs the input format from its header bytes and decodes it into a
// core.Image.
func Load(r io.Reader) (core.Image, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(2)
	if err != nil {
		return core.Image{}, fmt.Errorf("imageio: read header: %w", err)
	}
	if header[0] == 'P' && (header[1] == '5' || header[1] == '2') {
		return loadPGM(br)
	}
	return loadStdlib(br)
}

// loadStdlib decodes any format registered with image.RegisterFormat
// (PNG, JPEG) and converts it to 8-bit grayscale via ITU-R 601 luma
// weights.
func loadStdlib(r io.Reader) (core.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return core.Image{}, fmt.Errorf("imageio: decode: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r32, g32, b32, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA() returns 16-bit-scaled channels; scale to 8-bit first.
			r8, g8, b8 := float64(r32>>8), float64(g32>>8), float64(b32>>8)
			lum := 0.299*r8 + 0.587*g8 + 0.114*b8
			data[y*w+x] = byte(lum + 0.5)
		}
	}
	return core.NewImage(w, h, data), nil
}

// loadPGM decodes a binary (P5) or ASCII (P2) Netpbm grayscale image.
func loadPGM(r *bufio.Reader) (core.Image, error) {
	magic, err := readToken(r)
	if err != nil {
		return core.Image{}, err
	}
	width, err := readIntToken(r)
	if err != nil {
		return core.Image{}, err
	}
	height, err := readIntToken(r)
	if err != nil {
		return core.Image{}, err
	}
	maxval, err := readIntToken(r)
	if err != nil {
		return core.Image{}, err
	}
	if maxval <= 0 || maxval > 255 {
		return core.Image{}, fmt.Errorf("imageio: unsupported PGM maxval %d", maxval)
	}

	data := make([]byte, width*height)
	switch magic {
	case "P5":
		if _, err := io.ReadFull(r, data); err != nil {
			return core.Image{}, fmt.Errorf("imageio: short PGM body: %w", err)
		}
	case "P2":
		for i := range data {
			v, err := readIntToken(r)
			if err != nil {
				return core.Image{}, fmt.Errorf("imageio: short PGM body: %w", err)
			}
			data[i] = byte(v)
		}
	default:
		return core.Image{}, fmt.Errorf("imageio: unsupported PGM magic %q", magic)
	}
	return core.NewImage(width, height, data), nil
}

func skipWhitespaceAndComments(r *bufio.Reader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '#':
			for {
				c, err := r.ReadByte()
				if err != nil {
					return err
				}
				if c == '\n' {
					break
				}
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			continue
		default:
			return r.UnreadByte()
		}
	}
}

func readToken(r *bufio.Reader) (string, error) {
	if err := skipWhitespaceAndComments(r); err != nil {
		return "", err
	}
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if len(buf) > 0 {
				break
			}
			return "", err
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

func readIntToken(r *bufio.Reader) (int, error) {
	tok, err := readToken(r)
	if err != nil {
		return 0, err
	}
	var v int
	if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
		return 0, fmt.Errorf("imageio: expected integer, got %q", tok)
	}
	return v, nil
}
