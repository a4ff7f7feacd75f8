// Package pipeline orchestrates the whole decode: row-scanning dispatch for
// the 1D symbologies, a single finder-driven attempt for QR, and result
// deduplication. Grounded on spec.md section 4.10; the small-struct,
// functional-options construction style follows the teacher's own
// qrcodegen.go (distinct constructors per concern rather than one giant
// configuration object with every field public and mutable after
// construction).
package pipeline

import (
	"fmt"
	"strconv"

	"github.com/mlidesign/barcodescan/binarize"
	"github.com/mlidesign/barcodescan/core"
	"github.com/mlidesign/barcodescan/oned"
	"github.com/mlidesign/barcodescan/qr"
	"github.com/mlidesign/barcodescan/rs"
)

// Config enumerates the pipeline's tunable behavior, per spec.md section 6.
type Config struct {
	EnableEAN13UPCA   bool
	EnableCode128     bool
	EnableQR          bool
	ScanRows          int
	MinModules        int
	QRScanLines       int
	QRAllowedECLevels map[qr.EcLevel]bool // nil/empty means all allowed
	QRVerifyRS        bool
}

// DefaultConfig returns the pipeline's documented defaults.
func DefaultConfig() Config {
	return Config{
		EnableEAN13UPCA: true,
		EnableCode128:   true,
		EnableQR:        true,
		ScanRows:        15,
		MinModules:      30,
		QRScanLines:     32,
		QRVerifyRS:      true,
	}
}

// Logger is the minimal interface the pipeline needs from an ambient
// logger; package log's wrapper satisfies it. Kept separate from a
// concrete logging dependency so the hard core stays import-free of any
// logging library, per SPEC_FULL.md's ambient-vs-core separation.
type Logger interface {
	Tracef(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Tracef(string, ...any) {}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithLogger attaches a trace-mode logger.
func WithLogger(l Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// Pipeline runs the configured decoders over an Image.
type Pipeline struct {
	cfg    Config
	logger Logger
}

// New builds a Pipeline from cfg, applying any options.
func New(cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, logger: noopLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decode runs every enabled decoder over img and returns the deduplicated,
// ordered result set: 1D results in ascending scan-row order, then the QR
// result (if any).
func (p *Pipeline) Decode(img core.Image) []core.DecodedSymbol {
	if img.Empty() {
		return nil
	}

	var results []core.DecodedSymbol
	seen := make(map[string]bool)

	add := func(sym core.DecodedSymbol) {
		key := sym.Symbology.String() + "\x00" + sym.Text
		if seen[key] {
			return
		}
		seen[key] = true
		results = append(results, sym)
	}

	if p.cfg.EnableEAN13UPCA || p.cfg.EnableCode128 {
		rows := scanRows(img.Height, p.cfg.ScanRows)
		attempted, skipped := 0, 0
		for _, y := range rows {
			row := img.Row(y)
			if len(row) < p.cfg.MinModules {
				skipped++
				continue
			}
			attempted++
			p.decodeRow(img, y, row, add)
		}
		p.logger.Tracef("1D scan: %d/%d rows attempted (%d too short), %d results so far", attempted, len(rows), skipped, len(results))
	}

	if p.cfg.EnableQR {
		if sym, err := p.decodeQR(img); err == nil {
			add(sym)
		} else {
			p.logger.Tracef("QR: no symbol decoded: %v", err)
		}
	}

	return results
}

func scanRows(height, n int) []int {
	if n < 1 {
		n = 1
	}
	if n > height {
		n = height
	}
	rows := make([]int, n)
	for i := 0; i < n; i++ {
		rows[i] = (i + 1) * height / (n + 1)
		if rows[i] >= height {
			rows[i] = height - 1
		}
	}
	return rows
}

func reverseBytes(row []byte) []byte {
	out := make([]byte, len(row))
	for i, v := range row {
		out[len(row)-1-i] = v
	}
	return out
}

func (p *Pipeline) decodeRow(img core.Image, y int, row []byte, add func(core.DecodedSymbol)) {
	for _, direction := range []string{"forward", "reverse"} {
		candidate := row
		if direction == "reverse" {
			candidate = reverseBytes(row)
		}

		if p.cfg.EnableEAN13UPCA {
			runs := binarize.RowRuns(candidate, 40)
			modules := binarize.QuantizeAll(runs.Lengths)
			if sym, err := oned.DecodeEAN13Modules(modules); err == nil {
				sym.Extras = map[string]string{"row": strconv.Itoa(y), "direction": direction}
				add(sym)
			}
		}
		if p.cfg.EnableCode128 {
			runs := binarize.RowRuns(candidate, 24)
			if sym, err := oned.DecodeCode128Runs(runs.Lengths); err == nil {
				sym.Extras = map[string]string{"row": strconv.Itoa(y), "direction": direction}
				add(sym)
			}
		}
	}
}

func (p *Pipeline) qrECAllowed(ec qr.EcLevel) bool {
	if len(p.cfg.QRAllowedECLevels) == 0 {
		return true
	}
	return p.cfg.QRAllowedECLevels[ec]
}

func (p *Pipeline) decodeQR(img core.Image) (core.DecodedSymbol, error) {
	scanLines := p.cfg.QRScanLines
	if scanLines < 1 {
		scanLines = 32
	}
	centers := qr.FindFinderPatterns(img, scanLines)
	p.logger.Tracef("QR: %d finder cluster(s) found", len(centers))
	if len(centers) != 3 {
		return core.DecodedSymbol{}, core.ErrNotFound
	}
	tl, tr, bl, ok := qr.ClassifyTLTRBL(centers)
	if !ok {
		return core.DecodedSymbol{}, core.ErrNotFound
	}

	grid, err := qr.SampleGrid(img, tl, tr, bl)
	if err != nil {
		p.logger.Tracef("QR: grid sampling failed: %v", err)
		return core.DecodedSymbol{}, err
	}

	format, ok := qr.DecodeFormatInfo(grid)
	if !ok {
		return core.DecodedSymbol{}, core.ErrInvalidFormat
	}
	if !p.qrECAllowed(format.EC) {
		p.logger.Tracef("QR: EC level %s excluded by configuration", format.EC)
		return core.DecodedSymbol{}, core.ErrInvalidFormat
	}

	qr.Unmask(&grid, format.MaskID)
	bits := qr.ExtractDataBits(grid)
	codewords := qr.PackBits(bits)

	ecLen := qr.ECLen(format.EC)
	decodeResult := rs.Decode(codewords, ecLen)
	p.logger.Tracef("QR: RS decode mask=%d ec=%s corrections=%d uncorrectable=%v", format.MaskID, format.EC, decodeResult.Corrections, decodeResult.Uncorrectable)

	// Per the RSUncorrectable error taxonomy: a block RS could not fully
	// correct is not abandoned outright. Byte-mode parsing is still
	// attempted against the uncorrected codewords; success is permitted,
	// but qrConfidence below withholds the correction bonus, and a failed
	// fallback parse is reported as core.ErrRSUncorrectable rather than the
	// underlying payload error, since the RS block is the root cause.
	payloadSource := decodeResult.Corrected
	if decodeResult.Uncorrectable {
		payloadSource = codewords
	}
	data, _ := qr.SplitCodewords(payloadSource, format.EC)
	payload, err := qr.ParseByteMode(data)
	if err != nil {
		if decodeResult.Uncorrectable {
			return core.DecodedSymbol{}, core.ErrRSUncorrectable
		}
		return core.DecodedSymbol{}, err
	}
	if !payload.ValidUTF8 {
		if decodeResult.Uncorrectable {
			return core.DecodedSymbol{}, core.ErrRSUncorrectable
		}
		return core.DecodedSymbol{}, core.ErrInvalidPayload
	}

	confidence := qrConfidence(format.EC, decodeResult)

	extras := map[string]string{
		"qr.ec":                 format.EC.String(),
		"qr.mask":               fmt.Sprintf("%d", format.MaskID),
		"qr.rs_corrected":       strconv.FormatBool(decodeResult.Corrections > 0),
		"qr.rs_corrected_bytes": strconv.Itoa(decodeResult.Corrections),
	}
	if p.cfg.QRVerifyRS {
		extras["qr.rs_match"] = strconv.FormatBool(decodeResult.Corrections == 0 && !decodeResult.Uncorrectable)
	}

	return core.DecodedSymbol{
		Symbology:  core.QR,
		Text:       payload.Text,
		Confidence: confidence,
		Raw:        payload.Raw,
		Extras:     extras,
	}, nil
}

func qrConfidence(ec qr.EcLevel, result rs.Result) float64 {
	conf := 0.80
	switch ec {
	case qr.EcM:
		conf += 0.02
	case qr.EcQ:
		conf += 0.03
	case qr.EcH:
		conf += 0.05
	}
	switch {
	case result.Uncorrectable:
		// No boost: Byte-mode parse succeeded despite an RS block that
		// could not be fully corrected.
	case result.Corrections == 0:
		conf += 0.10
	default:
		conf += 0.05
	}
	if conf > 0.99 {
		conf = 0.99
	}
	return conf
}
