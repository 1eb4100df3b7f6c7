package scoring

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/rugwatch/rugwatch/internal/graph"
	"github.com/rugwatch/rugwatch/internal/token"
)

// ---------------------------------------------------------------------------
// Holder Risk Scorer — ownership / insider / volume / activity
// ---------------------------------------------------------------------------

// RiskConfig configures the holder risk scorer.
type RiskConfig struct {
	// Ownership fraction above which concentration points apply.
	HighOwnershipPct float64 `yaml:"high_ownership_pct"`

	// Raw token amount (no decimal normalization) above which volume points apply.
	LargeAmount float64 `yaml:"large_amount"`

	// Recency window for the activity check.
	RecentWindowHours int `yaml:"recent_window_hours"`

	// Recent transaction count above which activity points apply.
	RecentTxThreshold int `yaml:"recent_tx_threshold"`
}

// DefaultRiskConfig returns the production thresholds.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		HighOwnershipPct:  0.10,
		LargeAmount:       1_000_000,
		RecentWindowHours: 24,
		RecentTxThreshold: 10,
	}
}

// RiskScorer computes the 0-100 holder risk score.
type RiskScorer struct {
	config RiskConfig
}

// NewRiskScorer creates a holder risk scorer.
func NewRiskScorer(config RiskConfig) *RiskScorer {
	return &RiskScorer{config: config}
}

// Window returns the recency window used for the activity check.
func (s *RiskScorer) Window() time.Duration {
	return time.Duration(s.config.RecentWindowHours) * time.Hour
}

// Score evaluates one holder against the insider graph and the holder's
// recent transactions. Each rule is independent and order-insensitive.
func (s *RiskScorer) Score(holder token.Holder, insiders *graph.Graph, txs []token.Transaction) int {
	score := 0

	if holder.Pct > s.config.HighOwnershipPct {
		score += 30 // high ownership concentration
	}
	if insiders.Contains(holder.Owner) {
		score += 50 // insider flag
	}
	if holder.Amount > s.config.LargeAmount {
		score += 20 // large token volume
	}
	recent := RecentTxCount(txs, s.Window())
	if recent > s.config.RecentTxThreshold {
		score += 20 // high recent activity
	}

	score = clampScore(score)

	log.Debug().
		Str("owner", holder.Owner).
		Float64("pct", holder.Pct).
		Int("recent_txs", recent).
		Int("score", score).
		Msg("risk: holder scored")

	return score
}
