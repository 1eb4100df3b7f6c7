package token

import (
	"time"
)

// ---------------------------------------------------------------------------
// Wire types — token reports, holders, transactions, snapshots
// Field names follow the upstream report provider's JSON attributes.
// ---------------------------------------------------------------------------

// TokenReport is the externally-fetched analysis report for a token.
// Fields the engine never reads are carried through untouched by callers;
// only the named fields below participate in scoring.
type TokenReport struct {
	Mint                 string      `json:"mint"`
	Creator              string      `json:"creator"`
	TotalMarketLiquidity float64     `json:"totalMarketLiquidity"`
	TransferFee          TransferFee `json:"transferFee"`
	Markets              []Market    `json:"markets"`
	CreatedAt            time.Time   `json:"createdAt"`
	TopHolders           []Holder    `json:"topHolders"`
}

// TransferFee describes the token's transfer fee, as a fraction.
type TransferFee struct {
	Pct float64 `json:"pct"`
}

// Market is one DEX market entry in a token report.
type Market struct {
	LP *LPInfo `json:"lp"`
}

// LPInfo describes the liquidity-provider token state for a market.
// LPLocked is percentage-like: 0 = fully unlocked/none, 100 = fully locked.
type LPInfo struct {
	LPLocked float64 `json:"lpLocked"`
}

// Holder is one top holder of the token under analysis.
type Holder struct {
	Owner          string  `json:"owner"`
	Pct            float64 `json:"pct"` // fraction of total supply, 0.0-1.0
	Amount         float64 `json:"amount"`
	UIAmountString string  `json:"uiAmountString"`
}

// Transaction is a single wallet transaction relevant to scoring.
type Transaction struct {
	Owner        string `json:"owner"`
	BlockTime    int64  `json:"blockTime"` // unix seconds
	Lamports     int64  `json:"lamports"`  // signed, direction by sign
	ChangeAmount int64  `json:"changeAmount"`
}

// LiquiditySnapshot is a historical liquidity observation, supplied by an
// external store ordered by timestamp descending.
type LiquiditySnapshot struct {
	Token                string  `json:"token"`
	Timestamp            int64   `json:"timestamp"` // unix seconds
	TotalMarketLiquidity float64 `json:"totalMarketLiquidity"`
	LPLocked             float64 `json:"lpLocked"`
}

// EventKind classifies a token lifecycle event.
type EventKind string

const (
	EventCreation        EventKind = "creation"
	EventAuthorityChange EventKind = "authority_change"
)

// TokenEvent is a token lifecycle event used for transaction-timing checks.
type TokenEvent struct {
	Kind      EventKind `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventsFromReport derives the token-event list used by the insider scorer.
// At minimum it contains the synthetic creation event from report.createdAt.
func EventsFromReport(report *TokenReport) []TokenEvent {
	if report == nil {
		return nil
	}
	return []TokenEvent{
		{Kind: EventCreation, CreatedAt: report.CreatedAt},
	}
}

// WalletProfile is the per-holder record returned to callers.
type WalletProfile struct {
	Address             string  `json:"address"`
	Amount              string  `json:"amount"` // uiAmountString passthrough
	Percentage          float64 `json:"percentage"`
	RiskScore           int     `json:"riskScore"`
	IsInsider           bool    `json:"isInsider"`
	InsiderProbability  int     `json:"insiderProbability"`
	BehaviorRiskScore   int     `json:"behaviorRiskScore"`
	TransactionsFetched bool    `json:"transactionsFetched"`
	RecentTxCount       int     `json:"recentTxCount"`
	TimingRisk          int     `json:"timingRisk"`
}
