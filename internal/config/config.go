package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for rugwatch.
type Config struct {
	General    GeneralConfig    `yaml:"general"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Tokenomics TokenomicsConfig `yaml:"tokenomics"`
	Detector   DetectorConfig   `yaml:"detector"`
	Profile    ProfileConfig    `yaml:"profile"`
}

type GeneralConfig struct {
	InstanceID  string `yaml:"instance_id"`
	Environment string `yaml:"environment"` // production|staging|development
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"` // json|text
}

// ScoringConfig holds the thresholds for all three per-holder scorers.
type ScoringConfig struct {
	HighOwnershipPct  float64 `yaml:"high_ownership_pct"`
	LargeAmount       float64 `yaml:"large_amount"`
	RecentWindowHours int     `yaml:"recent_window_hours"`
	RecentTxThreshold int     `yaml:"recent_tx_threshold"`

	EventWindowSecs     int64 `yaml:"event_window_secs"`
	TimedTxThreshold    int   `yaml:"timed_tx_threshold"`
	ConnectionThreshold int   `yaml:"connection_threshold"`

	HighTxPerDay     float64 `yaml:"high_tx_per_day"`
	LargeVolumeSOL   float64 `yaml:"large_volume_sol"`
	EarlyWindowSecs  int64   `yaml:"early_window_secs"`
	EarlyTxThreshold int     `yaml:"early_tx_threshold"`
}

type TokenomicsConfig struct {
	MinLockedFraction float64 `yaml:"min_locked_fraction"`
	MinLiquidityUSD   float64 `yaml:"min_liquidity_usd"`
	MaxTransferFee    float64 `yaml:"max_transfer_fee"`
}

type DetectorConfig struct {
	DropAlertPct float64 `yaml:"drop_alert_pct"`
	DropHighPct  float64 `yaml:"drop_high_pct"`
}

type ProfileConfig struct {
	MaxConcurrentFetches  int   `yaml:"max_concurrent_fetches"`
	LargeOutflowThreshold int64 `yaml:"large_outflow_threshold"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML configuration file. Environment variables in
// the file are expanded, and a .env file is honored if present.
func Load(path string) (*Config, error) {
	// Environment variables > .env file > hardcoded defaults.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.General.InstanceID == "" {
		cfg.General.InstanceID = "rugwatch-1"
	}
	if cfg.General.Environment == "" {
		cfg.General.Environment = "development"
	}
	if cfg.General.LogLevel == "" {
		cfg.General.LogLevel = "info"
	}
	if cfg.General.LogFormat == "" {
		cfg.General.LogFormat = "json"
	}

	if cfg.Scoring.HighOwnershipPct == 0 {
		cfg.Scoring.HighOwnershipPct = 0.10
	}
	if cfg.Scoring.LargeAmount == 0 {
		cfg.Scoring.LargeAmount = 1_000_000
	}
	if cfg.Scoring.RecentWindowHours == 0 {
		cfg.Scoring.RecentWindowHours = 24
	}
	if cfg.Scoring.RecentTxThreshold == 0 {
		cfg.Scoring.RecentTxThreshold = 10
	}
	if cfg.Scoring.EventWindowSecs == 0 {
		cfg.Scoring.EventWindowSecs = 3600
	}
	if cfg.Scoring.TimedTxThreshold == 0 {
		cfg.Scoring.TimedTxThreshold = 1
	}
	if cfg.Scoring.ConnectionThreshold == 0 {
		cfg.Scoring.ConnectionThreshold = 3
	}
	if cfg.Scoring.HighTxPerDay == 0 {
		cfg.Scoring.HighTxPerDay = 5
	}
	if cfg.Scoring.LargeVolumeSOL == 0 {
		cfg.Scoring.LargeVolumeSOL = 100
	}
	if cfg.Scoring.EarlyWindowSecs == 0 {
		cfg.Scoring.EarlyWindowSecs = 3600
	}
	if cfg.Scoring.EarlyTxThreshold == 0 {
		cfg.Scoring.EarlyTxThreshold = 2
	}

	if cfg.Tokenomics.MinLockedFraction == 0 {
		cfg.Tokenomics.MinLockedFraction = 0.5
	}
	if cfg.Tokenomics.MinLiquidityUSD == 0 {
		cfg.Tokenomics.MinLiquidityUSD = 10_000
	}
	if cfg.Tokenomics.MaxTransferFee == 0 {
		cfg.Tokenomics.MaxTransferFee = 0.05
	}

	if cfg.Detector.DropAlertPct == 0 {
		cfg.Detector.DropAlertPct = 10
	}
	if cfg.Detector.DropHighPct == 0 {
		cfg.Detector.DropHighPct = 20
	}

	if cfg.Profile.MaxConcurrentFetches == 0 {
		cfg.Profile.MaxConcurrentFetches = 8
	}
	if cfg.Profile.LargeOutflowThreshold == 0 {
		cfg.Profile.LargeOutflowThreshold = -1_000_000
	}
}
