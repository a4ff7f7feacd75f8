package synth

import (
	"fmt"

	qrcodegen "github.com/mlidesign/barcodescan"
	"github.com/mlidesign/barcodescan/core"
	"github.com/mlidesign/barcodescan/mask"
	"github.com/mlidesign/barcodescan/qr"
	"github.com/mlidesign/barcodescan/qrcodeecc"
	"github.com/mlidesign/barcodescan/qrsegment"
	"github.com/mlidesign/barcodescan/version"
)

var eccByLevel = map[qr.EcLevel]qrcodeecc.QrCodeEcc{
	qr.EcL: qrcodeecc.Low,
	qr.EcM: qrcodeecc.Medium,
	qr.EcQ: qrcodeecc.Quartile,
	qr.EcH: qrcodeecc.High,
}

func dataLenFor(ec qr.EcLevel) int {
	switch ec {
	case qr.EcL:
		return 19
	case qr.EcM:
		return 16
	case qr.EcQ:
		return 13
	case qr.EcH:
		return 9
	default:
		return 19
	}
}

// QR rasterizes a synthetic QR version-1, error-correction level ec, mask
// maskID, Byte-mode symbol encoding text into a pixel image at the given
// module width, with a 4-module quiet zone.
//
// Rather than re-deriving ECC interleaving and module placement by hand,
// this drives the teacher's own encoder (package qrcodegen, adapted from
// nayuki/qrcodegen) through its mid-level API: a single Byte-mode segment,
// forced to version 1 by pinning minVersion = maxVersion, with boosted ECC
// disabled so the requested level and mask survive unchanged. That keeps
// the fixture generator and the production decoder sharing a real QR
// encoder implementation instead of a parallel hand-rolled one.
func QR(text string, ec qr.EcLevel, maskID uint8, unit int) (core.Image, error) {
	maxPayload := dataLenFor(ec) - 2
	if len(text) > maxPayload {
		return core.Image{}, fmt.Errorf("synth: text too long for QR v1-%s (max %d bytes)", ec, maxPayload)
	}

	seg := qrsegment.MakeBytes([]byte(text))
	v1 := version.New(1)
	m := mask.New(maskID)

	code, err := qrcodegen.EncodeSegmentsAdvanced(
		[]qrcodegen.QrSegment{seg},
		eccByLevel[ec],
		v1,
		v1,
		&m,
		false,
	)
	if err != nil {
		return core.Image{}, fmt.Errorf("synth: %w", err)
	}
	if code.Version().Value() != 1 {
		return core.Image{}, fmt.Errorf("synth: encoder chose version %d, want 1", code.Version().Value())
	}

	return rasterizeQrCode(code, unit), nil
}

// rasterizeQrCode expands a qrcodegen.QrCode's module grid into a pixel
// image at unit pixels per module, with a 4-module light quiet zone.
func rasterizeQrCode(code *qrcodegen.QrCode, unit int) core.Image {
	const quiet = 4
	size := int(code.Size())
	side := (size + 2*quiet) * unit
	data := make([]byte, side*side)
	for i := range data {
		data[i] = 255
	}
	for my := 0; my < size; my++ {
		for mx := 0; mx < size; mx++ {
			if !code.GetModule(int32(mx), int32(my)) {
				continue
			}
			px0 := (mx + quiet) * unit
			py0 := (my + quiet) * unit
			for dy := 0; dy < unit; dy++ {
				for dx := 0; dx < unit; dx++ {
					data[(py0+dy)*side+(px0+dx)] = 0
				}
			}
		}
	}
	return core.NewImage(side, side, data)
}
