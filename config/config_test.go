package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlidesign/barcodescan/config"
	"github.com/mlidesign/barcodescan/pipeline"
	"github.com/mlidesign/barcodescan/qr"
)

func writeTempYAML(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	path := writeTempYAML(t, "")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultConfig(), cfg)
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	path := writeTempYAML(t, "scan_rows: 42\nqr: false\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	want := pipeline.DefaultConfig()
	want.ScanRows = 42
	want.EnableQR = false
	assert.Equal(t, want, cfg)
}

func TestLoadQRAllowedECLevels(t *testing.T) {
	path := writeTempYAML(t, "qr_allowed_ec_levels:\n  - M\n  - H\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[qr.EcLevel]bool{qr.EcM: true, qr.EcH: true}, cfg.QRAllowedECLevels)
}

func TestLoadUnknownECLevelNameErrors(t *testing.T) {
	path := writeTempYAML(t, "qr_allowed_ec_levels:\n  - Z\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	path := writeTempYAML(t, "scan_rows: [this, is, not, an, int]\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadQRVerifyRSFalseOverridesDefaultTrue(t *testing.T) {
	path := writeTempYAML(t, "qr_verify_rs: false\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.QRVerifyRS)
}
