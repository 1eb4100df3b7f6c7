package scoring

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/rugwatch/rugwatch/internal/token"
)

// ---------------------------------------------------------------------------
// Behavior Risk Scorer — frequency, volume, early-activity vs token creation
// ---------------------------------------------------------------------------

const lamportsPerSOL = 1e9

// BehaviorConfig configures the behavior risk scorer.
type BehaviorConfig struct {
	// Transactions per day above which frequency points apply.
	HighTxPerDay float64 `yaml:"high_tx_per_day"`

	// Total moved volume in SOL above which volume points apply.
	LargeVolumeSOL float64 `yaml:"large_volume_sol"`

	// Window after token creation counted as early activity, in seconds.
	EarlyWindowSecs int64 `yaml:"early_window_secs"`

	// Early transaction count above which early-activity points apply.
	EarlyTxThreshold int `yaml:"early_tx_threshold"`
}

// DefaultBehaviorConfig returns the production thresholds.
func DefaultBehaviorConfig() BehaviorConfig {
	return BehaviorConfig{
		HighTxPerDay:     5,
		LargeVolumeSOL:   100,
		EarlyWindowSecs:  3600,
		EarlyTxThreshold: 2,
	}
}

// BehaviorScorer computes the 0-100 behavioral risk score.
type BehaviorScorer struct {
	config BehaviorConfig
}

// NewBehaviorScorer creates a behavior risk scorer.
func NewBehaviorScorer(config BehaviorConfig) *BehaviorScorer {
	return &BehaviorScorer{config: config}
}

// Score evaluates a wallet's transactions relative to the token creation
// time (unix seconds). A creation time at or after now counts as one day,
// so a fresh token never divides by zero.
func (s *BehaviorScorer) Score(txs []token.Transaction, creationTime int64) int {
	now := time.Now().Unix()
	daysSinceCreation := float64(now-creationTime) / 86400
	if daysSinceCreation <= 0 {
		daysSinceCreation = 1
	}

	score := 0

	txsPerDay := float64(len(txs)) / daysSinceCreation
	if txsPerDay > s.config.HighTxPerDay {
		score += 25 // high frequency
	}

	var totalLamports float64
	for _, tx := range txs {
		totalLamports += math.Abs(float64(tx.Lamports))
	}
	totalVolume := totalLamports / lamportsPerSOL
	if totalVolume > s.config.LargeVolumeSOL {
		score += 35 // large volume
	}

	earlyTxs := 0
	for _, tx := range txs {
		if tx.BlockTime != 0 && tx.BlockTime < creationTime+s.config.EarlyWindowSecs {
			earlyTxs++
		}
	}
	if earlyTxs > s.config.EarlyTxThreshold {
		score += 40 // suspicious early activity
	}

	score = clampScore(score)

	log.Debug().
		Float64("txs_per_day", txsPerDay).
		Float64("volume_sol", totalVolume).
		Int("early_txs", earlyTxs).
		Int("score", score).
		Msg("behavior: wallet scored")

	return score
}
