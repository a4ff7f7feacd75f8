// Package config loads a pipeline.Config from a YAML file, using
// gopkg.in/yaml.v3 the way dfbb-im2code's internal/config package loads
// its own settings file, rather than a bespoke flag-only configuration
// surface.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mlidesign/barcodescan/pipeline"
	"github.com/mlidesign/barcodescan/qr"
)

// file mirrors pipeline.Config in YAML-friendly form: qr.EcLevel has no
// natural scalar YAML representation, so allowed levels are spelled out
// as their short names ("L", "M", "Q", "H") here and translated after
// unmarshaling.
type file struct {
	EAN13UPCA   *bool    `yaml:"ean13_upca"`
	Code128     *bool    `yaml:"code128"`
	QR          *bool    `yaml:"qr"`
	ScanRows    *int     `yaml:"scan_rows"`
	MinModules  *int     `yaml:"min_modules"`
	QRScanLines *int     `yaml:"qr_scan_lines"`
	QRAllowedEC []string `yaml:"qr_allowed_ec_levels"`
	QRVerifyRS  *bool    `yaml:"qr_verify_rs"`
}

var ecByName = map[string]qr.EcLevel{
	"L": qr.EcL,
	"M": qr.EcM,
	"Q": qr.EcQ,
	"H": qr.EcH,
}

// Load reads a YAML configuration file at path and merges it over
// pipeline.DefaultConfig, so an omitted field keeps its documented
// default rather than zeroing out.
func Load(path string) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return pipeline.Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if f.EAN13UPCA != nil {
		cfg.EnableEAN13UPCA = *f.EAN13UPCA
	}
	if f.Code128 != nil {
		cfg.EnableCode128 = *f.Code128
	}
	if f.QR != nil {
		cfg.EnableQR = *f.QR
	}
	if f.ScanRows != nil {
		cfg.ScanRows = *f.ScanRows
	}
	if f.MinModules != nil {
		cfg.MinModules = *f.MinModules
	}
	if f.QRScanLines != nil {
		cfg.QRScanLines = *f.QRScanLines
	}
	if f.QRVerifyRS != nil {
		cfg.QRVerifyRS = *f.QRVerifyRS
	}
	if len(f.QRAllowedEC) > 0 {
		allowed := make(map[qr.EcLevel]bool, len(f.QRAllowedEC))
		for _, name := range f.QRAllowedEC {
			ec, ok := ecByName[name]
			if !ok {
				return pipeline.Config{}, fmt.Errorf("config: unknown QR EC level %q", name)
			}
			allowed[ec] = true
		}
		cfg.QRAllowedECLevels = allowed
	}

	return cfg, nil
}
