package tokenomics

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/rugwatch/rugwatch/internal/token"
)

// ---------------------------------------------------------------------------
// Liquidity Event Detector — sudden drops and LP unlocks vs history
// ---------------------------------------------------------------------------

// Severity grades a detected liquidity event.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Event is the detection result for one token report.
type Event struct {
	Detected bool     `json:"detected"`
	Reason   string   `json:"reason"`
	Severity Severity `json:"severity,omitempty"`
}

// DetectorConfig configures the liquidity event detector.
type DetectorConfig struct {
	// Liquidity drop percentage above which an event is raised.
	DropAlertPct float64 `yaml:"drop_alert_pct"`

	// Drop percentage above which the event is graded high severity.
	DropHighPct float64 `yaml:"drop_high_pct"`
}

// DefaultDetectorConfig returns the production thresholds.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		DropAlertPct: 10,
		DropHighPct:  20,
	}
}

// Detector compares current liquidity against historical snapshots.
type Detector struct {
	config DetectorConfig
}

// NewDetector creates a liquidity event detector.
func NewDetector(config DetectorConfig) *Detector {
	return &Detector{config: config}
}

// Detect flags sudden liquidity drops and partial LP unlocks. Snapshots are
// expected ordered by timestamp descending; historical[0] is the most recent
// prior observation. The drop check runs first: a drop above the alert
// threshold wins over the unlock check, a drop at or below it falls through.
func (d *Detector) Detect(current *token.TokenReport, historical []token.LiquiditySnapshot) Event {
	if len(historical) == 0 {
		return Event{Detected: false, Reason: "No historical data"}
	}

	prevLiquidity := historical[0].TotalMarketLiquidity
	var currentLiquidity float64
	if current != nil {
		currentLiquidity = current.TotalMarketLiquidity
	}

	var liquidityDrop float64
	if prevLiquidity > 0 {
		liquidityDrop = (prevLiquidity - currentLiquidity) / prevLiquidity * 100
	}

	if liquidityDrop > d.config.DropAlertPct {
		severity := SeverityMedium
		if liquidityDrop > d.config.DropHighPct {
			severity = SeverityHigh
		}
		event := Event{
			Detected: true,
			Reason: fmt.Sprintf("Liquidity dropped by %s%% in the last 24 hours",
				decimal.NewFromFloat(liquidityDrop).StringFixed(2)),
			Severity: severity,
		}
		log.Warn().
			Float64("prev_liquidity", prevLiquidity).
			Float64("current_liquidity", currentLiquidity).
			Str("severity", string(severity)).
			Msg("detector: liquidity drop")
		return event
	}

	if hasPartialLPUnlock(current) {
		log.Warn().Msg("detector: partial LP unlock")
		return Event{
			Detected: true,
			Reason:   "LP tokens partially unlocked, potential risk of liquidity removal",
			Severity: SeverityHigh,
		}
	}

	return Event{Detected: false, Reason: "No suspicious activity detected"}
}

// hasPartialLPUnlock reports whether any market's LP tokens sit strictly
// between fully unlocked (0) and fully locked (100).
func hasPartialLPUnlock(report *token.TokenReport) bool {
	if report == nil {
		return false
	}
	for _, m := range report.Markets {
		if m.LP != nil && m.LP.LPLocked > 0 && m.LP.LPLocked < 100 {
			return true
		}
	}
	return false
}
