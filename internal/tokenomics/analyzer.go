// Package tokenomics derives token-level liquidity indicators: the
// lock/fee/liquidity summary and the sudden-drop / LP-unlock event detector.
package tokenomics

import (
	"github.com/shopspring/decimal"

	"github.com/rugwatch/rugwatch/internal/token"
)

// ---------------------------------------------------------------------------
// Tokenomics Analyzer — liquidity lock, market liquidity, transfer fee
// ---------------------------------------------------------------------------

// LockersData is the external locker-service response, pass-through except
// the aggregate locked fraction.
type LockersData struct {
	Total LockerTotal `json:"total"`
}

// LockerTotal aggregates all lockers for a token.
type LockerTotal struct {
	Pct float64 `json:"pct"` // locked fraction, 0.0-1.0
}

// Summary is the tokenomics analysis result. The percent fields are
// preformatted two-decimal strings, matching the upstream wire format.
type Summary struct {
	LiquidityLockedPct string  `json:"liquidityLockedPct"`
	MarketLiquidityUSD float64 `json:"marketLiquidityUSD"`
	TransferFeePct     string  `json:"transferFeePct"`
	LiquidityRisk      int     `json:"liquidityRisk"`
}

// AnalyzerConfig configures the tokenomics analyzer.
type AnalyzerConfig struct {
	// Locked fraction below which lock-risk points apply.
	MinLockedFraction float64 `yaml:"min_locked_fraction"`

	// Market liquidity in USD below which liquidity-risk points apply.
	MinLiquidityUSD float64 `yaml:"min_liquidity_usd"`

	// Transfer-fee fraction above which fee-risk points apply.
	MaxTransferFee float64 `yaml:"max_transfer_fee"`
}

// DefaultAnalyzerConfig returns the production thresholds.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MinLockedFraction: 0.5,
		MinLiquidityUSD:   10_000,
		MaxTransferFee:    0.05,
	}
}

// Analyzer computes the tokenomics summary for a token report.
type Analyzer struct {
	config AnalyzerConfig
}

// NewAnalyzer creates a tokenomics analyzer.
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze computes the summary. A nil report or lockers document counts as
// all-zero input; nothing here errors.
func (a *Analyzer) Analyze(report *token.TokenReport, lockers *LockersData) Summary {
	var liquidityLocked, marketLiquidity, transferFee float64
	if lockers != nil {
		liquidityLocked = lockers.Total.Pct
	}
	if report != nil {
		marketLiquidity = report.TotalMarketLiquidity
		transferFee = report.TransferFee.Pct
	}

	risk := 0
	if liquidityLocked < a.config.MinLockedFraction {
		risk += 40 // low locked liquidity
	}
	if marketLiquidity < a.config.MinLiquidityUSD {
		risk += 30 // low liquidity
	}
	if transferFee > a.config.MaxTransferFee {
		risk += 20 // high transfer fee
	}

	return Summary{
		LiquidityLockedPct: asPct(liquidityLocked),
		MarketLiquidityUSD: marketLiquidity,
		TransferFeePct:     asPct(transferFee),
		LiquidityRisk:      clampScore(risk),
	}
}

// asPct formats a fraction as a two-decimal percentage string.
func asPct(fraction float64) string {
	return decimal.NewFromFloat(fraction * 100).StringFixed(2)
}

func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	return score
}
