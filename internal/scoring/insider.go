package scoring

import (
	"github.com/rs/zerolog/log"
	"github.com/rugwatch/rugwatch/internal/graph"
	"github.com/rugwatch/rugwatch/internal/token"
)

// ---------------------------------------------------------------------------
// Insider Probability Scorer — transaction timing vs token lifecycle events
// plus graph connectivity
// ---------------------------------------------------------------------------

// InsiderConfig configures the insider probability scorer.
type InsiderConfig struct {
	// Half-width of the timing window around each event, in seconds.
	EventWindowSecs int64 `yaml:"event_window_secs"`

	// Event-timed transaction count above which timing points apply.
	TimedTxThreshold int `yaml:"timed_tx_threshold"`

	// Graph connection count above which centrality points apply.
	ConnectionThreshold int `yaml:"connection_threshold"`
}

// DefaultInsiderConfig returns the production thresholds.
func DefaultInsiderConfig() InsiderConfig {
	return InsiderConfig{
		EventWindowSecs:     3600,
		TimedTxThreshold:    1,
		ConnectionThreshold: 3,
	}
}

// InsiderScorer computes the 0-100 undisclosed-insider probability.
type InsiderScorer struct {
	config InsiderConfig
}

// NewInsiderScorer creates an insider probability scorer.
func NewInsiderScorer(config InsiderConfig) *InsiderScorer {
	return &InsiderScorer{config: config}
}

// Score evaluates a single wallet's transactions. All supplied transactions
// are assumed to belong to one wallet; the wallet under evaluation is taken
// from the first transaction, so an empty list fails every connectivity term.
func (s *InsiderScorer) Score(txs []token.Transaction, insiders *graph.Graph, events []token.TokenEvent) int {
	eventTimes := make([]int64, 0, len(events))
	for _, e := range events {
		eventTimes = append(eventTimes, e.CreatedAt.Unix())
	}

	score := 0

	// Transactions within the window of any lifecycle event.
	timed := 0
	for _, tx := range txs {
		for _, et := range eventTimes {
			if absInt64(tx.BlockTime-et) < s.config.EventWindowSecs {
				timed++
				break
			}
		}
	}
	if timed > s.config.TimedTxThreshold {
		score += 50
	}

	wallet := ""
	if len(txs) > 0 {
		wallet = txs[0].Owner
	}

	// Connectivity is an id-match count, not edge degree. See graph.ConnectionCount.
	if insiders.ConnectionCount(wallet) > s.config.ConnectionThreshold {
		score += 30
	}
	if insiders.Contains(wallet) {
		score += 20 // direct membership bonus
	}

	score = clampScore(score)

	log.Debug().
		Str("wallet", wallet).
		Int("event_timed_txs", timed).
		Int("score", score).
		Msg("insider: wallet scored")

	return score
}
