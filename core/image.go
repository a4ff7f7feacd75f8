// Package core defines the data types shared by every decoder: the raw
// grayscale Image the pipeline consumes, the DecodedSymbol it produces, and
// the error taxonomy used to signal a rejected attempt without panicking.
package core

import "fmt"

// Image is a row-major 8-bit grayscale raster. 0 is black, 255 is white.
// An Image is read-only for the duration of a decode call; no decoder
// mutates Data.
type Image struct {
	Width  int
	Height int
	Data   []byte // len(Data) == Width*Height
}

// NewImage builds an Image, panicking if data does not match width*height.
// This is a programmer-error check, not a decode-time data error: callers
// assemble Images from trusted buffers before handing them to the pipeline.
func NewImage(width, height int, data []byte) Image {
	if width < 0 || height < 0 {
		panic("core: negative image dimensions")
	}
	if len(data) != width*height {
		panic(fmt.Sprintf("core: image data length %d does not match %d*%d", len(data), width, height))
	}
	return Image{Width: width, Height: height, Data: data}
}

// At returns the pixel value at (x, y). Panics if out of bounds: by
// invariant, callers never probe outside the raster.
func (img Image) At(x, y int) byte {
	return img.Data[y*img.Width+x]
}

// Row returns the pixel slice for row y without copying.
func (img Image) Row(y int) []byte {
	return img.Data[y*img.Width : (y+1)*img.Width]
}

// Empty reports whether the image has zero area.
func (img Image) Empty() bool {
	return img.Width <= 0 || img.Height <= 0
}

// BilinearAt samples the image at fractional coordinates (fx, fy) using
// bilinear interpolation, clamping to the border when the sample falls
// outside [0, Width-1] x [0, Height-1].
func (img Image) BilinearAt(fx, fy float64) float64 {
	if img.Empty() {
		return 0
	}
	clampf := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	fx = clampf(fx, 0, float64(img.Width-1))
	fy = clampf(fy, 0, float64(img.Height-1))

	x0 := int(fx)
	y0 := int(fy)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > img.Width-1 {
		x1 = img.Width - 1
	}
	if y1 > img.Height-1 {
		y1 = img.Height - 1
	}
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	v00 := float64(img.At(x0, y0))
	v10 := float64(img.At(x1, y0))
	v01 := float64(img.At(x0, y1))
	v11 := float64(img.At(x1, y1))

	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*ty
}
