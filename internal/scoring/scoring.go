// Package scoring holds the per-holder heuristic scorers: ownership risk,
// insider probability, and behavior risk. All scores are additive point
// systems clamped to [0,100]; missing inputs count as zero and never error.
package scoring

import (
	"time"

	"github.com/rugwatch/rugwatch/internal/token"
)

// RecentTxCount returns the number of transactions with a blockTime inside
// the trailing window, relative to the evaluation time. The risk scorer and
// the profile builder both use this so their recency views stay consistent.
func RecentTxCount(txs []token.Transaction, window time.Duration) int {
	cutoff := time.Now().Add(-window)
	count := 0
	for _, tx := range txs {
		if time.Unix(tx.BlockTime, 0).After(cutoff) {
			count++
		}
	}
	return count
}

func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	return score
}

func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
