package profile

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rugwatch/rugwatch/internal/graph"
	"github.com/rugwatch/rugwatch/internal/scoring"
	"github.com/rugwatch/rugwatch/internal/token"
)

// ---------------------------------------------------------------------------
// Profile Builder — per-holder fan-out over the scorers
// ---------------------------------------------------------------------------

// BuilderConfig configures the profile builder.
type BuilderConfig struct {
	// Upper bound on concurrent transaction fetches, so a large holder list
	// cannot overwhelm the upstream provider.
	MaxConcurrentFetches int `yaml:"max_concurrent_fetches"`

	// changeAmount below which a transaction flags timing risk.
	LargeOutflowThreshold int64 `yaml:"large_outflow_threshold"`
}

// DefaultBuilderConfig returns the production defaults.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		MaxConcurrentFetches:  8,
		LargeOutflowThreshold: -1_000_000,
	}
}

// Builder assembles wallet profiles for a token's top holders.
type Builder struct {
	config   BuilderConfig
	source   TxSource
	risk     *scoring.RiskScorer
	insider  *scoring.InsiderScorer
	behavior *scoring.BehaviorScorer

	// Stats.
	profilesBuilt atomic.Int64
	fetchFailures atomic.Int64
}

// NewBuilder creates a profile builder over the given transaction source
// and scorers.
func NewBuilder(config BuilderConfig, source TxSource,
	risk *scoring.RiskScorer, insider *scoring.InsiderScorer, behavior *scoring.BehaviorScorer) *Builder {
	return &Builder{
		config:   config,
		source:   source,
		risk:     risk,
		insider:  insider,
		behavior: behavior,
	}
}

// BuildProfiles produces one profile per holder, in holder order. Holders
// are independent: fetches run concurrently under the configured limit, and
// a failed fetch degrades that holder's transaction-derived fields to zero
// without failing the batch.
func (b *Builder) BuildProfiles(ctx context.Context, report *token.TokenReport,
	insiders *graph.Graph, holders []token.Holder) []token.WalletProfile {

	batchID := uuid.New().String()[:8]
	events := token.EventsFromReport(report)
	var creationTime int64
	if report != nil {
		creationTime = report.CreatedAt.Unix()
	}

	profiles := make([]token.WalletProfile, len(holders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.config.MaxConcurrentFetches)
	for i, holder := range holders {
		i, holder := i, holder
		g.Go(func() error {
			profiles[i] = b.buildOne(gctx, batchID, holder, insiders, events, creationTime)
			return nil
		})
	}
	// Workers never return errors; failures degrade per holder.
	_ = g.Wait()

	b.profilesBuilt.Add(int64(len(profiles)))

	log.Info().
		Str("batch", batchID).
		Int("holders", len(holders)).
		Int("insider_nodes", insiders.NodeCount()).
		Msg("builder: profiles built")

	return profiles
}

// buildOne scores a single holder. The risk score is always computed; the
// transaction-derived fields require a successful fetch.
func (b *Builder) buildOne(ctx context.Context, batchID string, holder token.Holder,
	insiders *graph.Graph, events []token.TokenEvent, creationTime int64) token.WalletProfile {

	txs, err := b.source.WalletTransactions(ctx, holder.Owner)
	fetched := err == nil
	if err != nil {
		b.fetchFailures.Add(1)
		txs = nil
		log.Warn().Err(err).
			Str("batch", batchID).
			Str("owner", holder.Owner).
			Msg("builder: transaction fetch failed, scoring with empty history")
	}

	profile := token.WalletProfile{
		Address:             holder.Owner,
		Amount:              holder.UIAmountString,
		Percentage:          holder.Pct,
		RiskScore:           b.risk.Score(holder, insiders, txs),
		IsInsider:           insiders.Contains(holder.Owner),
		TransactionsFetched: fetched,
	}

	if fetched {
		profile.InsiderProbability = b.insider.Score(txs, insiders, events)
		profile.BehaviorRiskScore = b.behavior.Score(txs, creationTime)
		profile.RecentTxCount = scoring.RecentTxCount(txs, b.risk.Window())
		profile.TimingRisk = b.timingRisk(txs)
	}

	return profile
}

// timingRisk flags wallets with any large negative balance change.
func (b *Builder) timingRisk(txs []token.Transaction) int {
	for _, tx := range txs {
		if tx.ChangeAmount < b.config.LargeOutflowThreshold {
			return 30
		}
	}
	return 0
}

// BuilderStats are the builder's lifetime counters.
type BuilderStats struct {
	ProfilesBuilt int64 `json:"profiles_built"`
	FetchFailures int64 `json:"fetch_failures"`
}

// Stats returns builder statistics.
func (b *Builder) Stats() BuilderStats {
	return BuilderStats{
		ProfilesBuilt: b.profilesBuilt.Load(),
		FetchFailures: b.fetchFailures.Load(),
	}
}
