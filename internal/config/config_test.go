package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "rugwatch-1", cfg.General.InstanceID)
	assert.Equal(t, "info", cfg.General.LogLevel)
	assert.Equal(t, "json", cfg.General.LogFormat)

	assert.Equal(t, 0.10, cfg.Scoring.HighOwnershipPct)
	assert.Equal(t, float64(1_000_000), cfg.Scoring.LargeAmount)
	assert.Equal(t, 24, cfg.Scoring.RecentWindowHours)
	assert.Equal(t, 10, cfg.Scoring.RecentTxThreshold)
	assert.Equal(t, int64(3600), cfg.Scoring.EventWindowSecs)
	assert.Equal(t, 3, cfg.Scoring.ConnectionThreshold)
	assert.Equal(t, 5.0, cfg.Scoring.HighTxPerDay)
	assert.Equal(t, 100.0, cfg.Scoring.LargeVolumeSOL)
	assert.Equal(t, 2, cfg.Scoring.EarlyTxThreshold)

	assert.Equal(t, 0.5, cfg.Tokenomics.MinLockedFraction)
	assert.Equal(t, float64(10_000), cfg.Tokenomics.MinLiquidityUSD)
	assert.Equal(t, 0.05, cfg.Tokenomics.MaxTransferFee)

	assert.Equal(t, 10.0, cfg.Detector.DropAlertPct)
	assert.Equal(t, 20.0, cfg.Detector.DropHighPct)

	assert.Equal(t, 8, cfg.Profile.MaxConcurrentFetches)
	assert.Equal(t, int64(-1_000_000), cfg.Profile.LargeOutflowThreshold)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
general:
  instance_id: rugwatch-test
  log_level: debug
  log_format: text
scoring:
  high_ownership_pct: 0.2
  recent_tx_threshold: 5
profile:
  max_concurrent_fetches: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "rugwatch-test", cfg.General.InstanceID)
	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, 0.2, cfg.Scoring.HighOwnershipPct)
	assert.Equal(t, 5, cfg.Scoring.RecentTxThreshold)
	assert.Equal(t, 2, cfg.Profile.MaxConcurrentFetches)

	// Unset fields keep the defaults.
	assert.Equal(t, float64(1_000_000), cfg.Scoring.LargeAmount)
	assert.Equal(t, 10.0, cfg.Detector.DropAlertPct)
}

func TestLoad_EnvExpansion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	t.Setenv("RUGWATCH_TEST_INSTANCE", "rugwatch-env")
	content := `
general:
  instance_id: ${RUGWATCH_TEST_INSTANCE}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rugwatch-env", cfg.General.InstanceID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("general: [not a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
