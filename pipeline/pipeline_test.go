package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlidesign/barcodescan/core"
	"github.com/mlidesign/barcodescan/pipeline"
	"github.com/mlidesign/barcodescan/qr"
	"github.com/mlidesign/barcodescan/synth"
)

func TestDecodeEAN13RoundTrip(t *testing.T) {
	img, err := synth.EAN13("5901234123457", 3, 60)
	require.NoError(t, err)

	p := pipeline.New(pipeline.DefaultConfig())
	results := p.Decode(img)
	require.NotEmpty(t, results)

	found := false
	for _, r := range results {
		if r.Symbology == core.EAN13 && r.Text == "5901234123457" {
			found = true
		}
	}
	assert.True(t, found, "expected an EAN13 result among %+v", results)
}

func TestDecodeUPCARoundTrip(t *testing.T) {
	img, err := synth.EAN13("036000291452", 3, 60)
	require.NoError(t, err)

	p := pipeline.New(pipeline.DefaultConfig())
	results := p.Decode(img)
	require.NotEmpty(t, results)

	found := false
	for _, r := range results {
		if r.Symbology == core.UPCA && r.Text == "036000291452" {
			found = true
		}
	}
	assert.True(t, found, "expected a UPCA result among %+v", results)
}

func TestDecodeCode128SetBRoundTrip(t *testing.T) {
	img, err := synth.Code128("HELLO-128", synth.SetB, 3, 60)
	require.NoError(t, err)

	p := pipeline.New(pipeline.DefaultConfig())
	results := p.Decode(img)
	require.NotEmpty(t, results)

	found := false
	for _, r := range results {
		if r.Symbology == core.Code128 && r.Text == "HELLO-128" {
			found = true
		}
	}
	assert.True(t, found, "expected a Code128 result among %+v", results)
}

func TestDecodeCode128SetCRoundTrip(t *testing.T) {
	img, err := synth.Code128("0123456789", synth.SetC, 3, 60)
	require.NoError(t, err)

	p := pipeline.New(pipeline.DefaultConfig())
	results := p.Decode(img)
	require.NotEmpty(t, results)

	found := false
	for _, r := range results {
		if r.Symbology == core.Code128 && r.Text == "0123456789" {
			found = true
		}
	}
	assert.True(t, found, "expected a Code128 result among %+v", results)
}

func TestDecodeQRRoundTripAcrossECLevels(t *testing.T) {
	for _, ec := range []qr.EcLevel{qr.EcL, qr.EcM, qr.EcQ, qr.EcH} {
		ec := ec
		t.Run(ec.String(), func(t *testing.T) {
			img, err := synth.QR("HELLO", ec, 0, 4)
			require.NoError(t, err)

			p := pipeline.New(pipeline.DefaultConfig())
			results := p.Decode(img)
			require.NotEmpty(t, results)

			var got *core.DecodedSymbol
			for i := range results {
				if results[i].Symbology == core.QR {
					got = &results[i]
				}
			}
			require.NotNil(t, got, "expected a QR result among %+v", results)
			assert.Equal(t, "HELLO", got.Text)
			assert.Equal(t, ec.String(), got.Extras["qr.ec"])
		})
	}
}

func TestDecodeQRRoundTripWithNonZeroMask(t *testing.T) {
	img, err := synth.QR("MASKED", qr.EcM, 5, 4)
	require.NoError(t, err)

	p := pipeline.New(pipeline.DefaultConfig())
	results := p.Decode(img)
	require.NotEmpty(t, results)
	assert.Equal(t, "MASKED", results[0].Text)
	assert.Equal(t, "5", results[0].Extras["qr.mask"])
}

// flipModule inverts the unit x unit pixel block for QR module (mx, my) in
// an image rasterized by synth.QR's 4-module quiet zone convention.
func flipModule(img core.Image, mx, my, unit int) {
	const quiet = 4
	px0 := (mx + quiet) * unit
	py0 := (my + quiet) * unit
	for dy := 0; dy < unit; dy++ {
		for dx := 0; dx < unit; dx++ {
			i := (py0+dy)*img.Width + (px0 + dx)
			if img.Data[i] < 128 {
				img.Data[i] = 255
			} else {
				img.Data[i] = 0
			}
		}
	}
}

// TestDecodeQRSurvivesSingleModuleCorruption exercises the Reed-Solomon
// correction path end to end (spec.md section 8, scenario 6): a single
// data module flipped in the raster must still decode, with the
// correction reflected in Extras rather than silently discarded.
func TestDecodeQRSurvivesSingleModuleCorruption(t *testing.T) {
	const unit = 4
	img, err := synth.QR("CORRUPT ME", qr.EcQ, 0, unit)
	require.NoError(t, err)

	// (9, 9) sits outside every finder/separator/format/timing rectangle
	// in a v1 symbol, so this flips one payload or EC data bit, not
	// structural information.
	flipModule(img, 9, 9, unit)

	p := pipeline.New(pipeline.DefaultConfig())
	results := p.Decode(img)
	require.NotEmpty(t, results)

	var got *core.DecodedSymbol
	for i := range results {
		if results[i].Symbology == core.QR {
			got = &results[i]
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, "CORRUPT ME", got.Text)
	assert.Equal(t, "true", got.Extras["qr.rs_corrected"])
	assert.NotEqual(t, "0", got.Extras["qr.rs_corrected_bytes"])
}

func TestDecodeEmptyImageReturnsNil(t *testing.T) {
	p := pipeline.New(pipeline.DefaultConfig())
	assert.Nil(t, p.Decode(core.Image{}))
}

func TestDecodeAllWhiteImageFindsNothing(t *testing.T) {
	data := make([]byte, 200*60)
	for i := range data {
		data[i] = 255
	}
	img := core.NewImage(200, 60, data)

	p := pipeline.New(pipeline.DefaultConfig())
	assert.Empty(t, p.Decode(img))
}

func TestDecodeAllBlackImageFindsNothing(t *testing.T) {
	data := make([]byte, 200*60)
	img := core.NewImage(200, 60, data)

	p := pipeline.New(pipeline.DefaultConfig())
	assert.Empty(t, p.Decode(img))
}

func TestDecodeImageNarrowerThanMinModulesIsSkippedNotCrashed(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.MinModules = 1000 // wider than any row this test constructs
	img, err := synth.EAN13("5901234123457", 3, 60)
	require.NoError(t, err)

	p := pipeline.New(cfg)
	assert.NotPanics(t, func() {
		results := p.Decode(img)
		assert.Empty(t, results)
	})
}

// TestDecodeDoesNotDuplicateAcrossRowsOrDirections confirms the same
// symbol scanned on multiple rows, and in both forward and reverse
// directions, produces exactly one result.
func TestDecodeDoesNotDuplicateAcrossRowsOrDirections(t *testing.T) {
	img, err := synth.EAN13("5901234123457", 3, 60)
	require.NoError(t, err)

	cfg := pipeline.DefaultConfig()
	cfg.ScanRows = 15 // default; many rows all hit the same barcode
	p := pipeline.New(cfg)
	results := p.Decode(img)

	count := 0
	for _, r := range results {
		if r.Symbology == core.EAN13 && r.Text == "5901234123457" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDecodeQRRejectedWhenECLevelNotAllowed(t *testing.T) {
	img, err := synth.QR("FILTERED", qr.EcL, 0, 4)
	require.NoError(t, err)

	cfg := pipeline.DefaultConfig()
	cfg.EnableEAN13UPCA = false
	cfg.EnableCode128 = false
	cfg.QRAllowedECLevels = map[qr.EcLevel]bool{qr.EcH: true}

	p := pipeline.New(cfg)
	results := p.Decode(img)
	assert.Empty(t, results)
}

func TestDecodeQRAllowedWhenECLevelInSet(t *testing.T) {
	img, err := synth.QR("ALLOWED", qr.EcL, 0, 4)
	require.NoError(t, err)

	cfg := pipeline.DefaultConfig()
	cfg.EnableEAN13UPCA = false
	cfg.EnableCode128 = false
	cfg.QRAllowedECLevels = map[qr.EcLevel]bool{qr.EcL: true, qr.EcH: true}

	p := pipeline.New(cfg)
	results := p.Decode(img)
	require.Len(t, results, 1)
	assert.Equal(t, "ALLOWED", results[0].Text)
}

func TestDecodeQRVerifyRSTogglesExtrasKey(t *testing.T) {
	img, err := synth.QR("VERIFY", qr.EcM, 0, 4)
	require.NoError(t, err)

	cfgOn := pipeline.DefaultConfig()
	cfgOn.EnableEAN13UPCA = false
	cfgOn.EnableCode128 = false
	cfgOn.QRVerifyRS = true
	resultsOn := pipeline.New(cfgOn).Decode(img)
	require.Len(t, resultsOn, 1)
	_, hasKey := resultsOn[0].Extras["qr.rs_match"]
	assert.True(t, hasKey)
	assert.Equal(t, "true", resultsOn[0].Extras["qr.rs_match"])

	cfgOff := cfgOn
	cfgOff.QRVerifyRS = false
	resultsOff := pipeline.New(cfgOff).Decode(img)
	require.Len(t, resultsOff, 1)
	_, hasKeyOff := resultsOff[0].Extras["qr.rs_match"]
	assert.False(t, hasKeyOff)
}

func TestDecodeDisabledSymbologyIsNeverReturned(t *testing.T) {
	img, err := synth.EAN13("5901234123457", 3, 60)
	require.NoError(t, err)

	cfg := pipeline.DefaultConfig()
	cfg.EnableEAN13UPCA = false
	p := pipeline.New(cfg)
	results := p.Decode(img)
	for _, r := range results {
		assert.NotEqual(t, core.EAN13, r.Symbology)
	}
}
