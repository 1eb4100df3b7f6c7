package profile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rugwatch/rugwatch/internal/graph"
	"github.com/rugwatch/rugwatch/internal/scoring"
	"github.com/rugwatch/rugwatch/internal/token"
)

func newTestBuilder(source TxSource) *Builder {
	return NewBuilder(DefaultBuilderConfig(), source,
		scoring.NewRiskScorer(scoring.DefaultRiskConfig()),
		scoring.NewInsiderScorer(scoring.DefaultInsiderConfig()),
		scoring.NewBehaviorScorer(scoring.DefaultBehaviorConfig()))
}

func insiderGraph(ids ...string) *graph.Graph {
	g := graph.Empty()
	for _, id := range ids {
		g.Nodes = append(g.Nodes, graph.Node{ID: id, Participant: true})
	}
	return g
}

func testReport() *token.TokenReport {
	return &token.TokenReport{
		Mint:      "mint1",
		CreatedAt: time.Now().Add(-30 * 24 * time.Hour),
	}
}

func TestBuilder_ProfilesMatchHolders(t *testing.T) {
	source := NewStubTxSource()
	b := newTestBuilder(source)

	now := time.Now().Unix()
	source.SetTransactions("w1", []token.Transaction{
		{Owner: "w1", BlockTime: now - 60},
		{Owner: "w1", BlockTime: now - 120},
	})

	holders := []token.Holder{
		{Owner: "w1", Pct: 0.02, Amount: 500, UIAmountString: "500"},
		{Owner: "w2", Pct: 0.01, Amount: 100, UIAmountString: "100"},
	}
	profiles := b.BuildProfiles(context.Background(), testReport(), graph.Empty(), holders)

	require.Len(t, profiles, 2)
	assert.Equal(t, "w1", profiles[0].Address)
	assert.Equal(t, "500", profiles[0].Amount)
	assert.Equal(t, 0.02, profiles[0].Percentage)
	assert.True(t, profiles[0].TransactionsFetched)
	assert.Equal(t, 2, profiles[0].RecentTxCount)
	assert.Equal(t, "w2", profiles[1].Address)
	assert.Equal(t, 0, profiles[1].RecentTxCount)
}

func TestBuilder_InsiderConsistency(t *testing.T) {
	source := NewStubTxSource()
	b := newTestBuilder(source)

	g := insiderGraph("insider1")
	holders := []token.Holder{
		{Owner: "insider1", Pct: 0.01},
		{Owner: "clean1", Pct: 0.01},
	}
	profiles := b.BuildProfiles(context.Background(), testReport(), g, holders)

	require.Len(t, profiles, 2)
	// isInsider and the risk scorer's insider term use the same membership test.
	assert.True(t, profiles[0].IsInsider)
	assert.Equal(t, 50, profiles[0].RiskScore)
	assert.False(t, profiles[1].IsInsider)
	assert.Equal(t, 0, profiles[1].RiskScore)
}

func TestBuilder_FetchFailureDegradesHolder(t *testing.T) {
	source := NewStubTxSource()
	b := newTestBuilder(source)

	now := time.Now().Unix()
	source.SetTransactions("ok", []token.Transaction{
		{Owner: "ok", BlockTime: now - 60, ChangeAmount: -2_000_000},
	})
	source.FailWallet("broken")

	holders := []token.Holder{
		{Owner: "broken", Pct: 0.15, Amount: 2_000_000},
		{Owner: "ok", Pct: 0.01},
	}
	profiles := b.BuildProfiles(context.Background(), testReport(), graph.Empty(), holders)

	require.Len(t, profiles, 2)

	// Degraded holder: fetch-derived fields zeroed, risk score still carries
	// the ownership and amount terms.
	broken := profiles[0]
	assert.False(t, broken.TransactionsFetched)
	assert.Equal(t, 50, broken.RiskScore) // 30 ownership + 20 amount
	assert.Equal(t, 0, broken.InsiderProbability)
	assert.Equal(t, 0, broken.BehaviorRiskScore)
	assert.Equal(t, 0, broken.RecentTxCount)
	assert.Equal(t, 0, broken.TimingRisk)

	// The failure is isolated: the other holder is fully scored.
	ok := profiles[1]
	assert.True(t, ok.TransactionsFetched)
	assert.Equal(t, 1, ok.RecentTxCount)
	assert.Equal(t, 30, ok.TimingRisk)

	stats := b.Stats()
	assert.Equal(t, int64(2), stats.ProfilesBuilt)
	assert.Equal(t, int64(1), stats.FetchFailures)
}

func TestBuilder_TimingRiskThreshold(t *testing.T) {
	source := NewStubTxSource()
	b := newTestBuilder(source)

	now := time.Now().Unix()
	source.SetTransactions("w1", []token.Transaction{
		{Owner: "w1", BlockTime: now - 60, ChangeAmount: -1_000_000}, // at threshold
	})
	source.SetTransactions("w2", []token.Transaction{
		{Owner: "w2", BlockTime: now - 60, ChangeAmount: -1_000_001}, // below it
	})

	holders := []token.Holder{{Owner: "w1"}, {Owner: "w2"}}
	profiles := b.BuildProfiles(context.Background(), testReport(), graph.Empty(), holders)

	require.Len(t, profiles, 2)
	assert.Equal(t, 0, profiles[0].TimingRisk)
	assert.Equal(t, 30, profiles[1].TimingRisk)
}

func TestBuilder_OutputOrderUnderConcurrency(t *testing.T) {
	source := NewStubTxSource()
	config := DefaultBuilderConfig()
	config.MaxConcurrentFetches = 4
	b := NewBuilder(config, source,
		scoring.NewRiskScorer(scoring.DefaultRiskConfig()),
		scoring.NewInsiderScorer(scoring.DefaultInsiderConfig()),
		scoring.NewBehaviorScorer(scoring.DefaultBehaviorConfig()))

	holders := make([]token.Holder, 50)
	for i := range holders {
		holders[i] = token.Holder{Owner: fmt.Sprintf("wallet-%03d", i)}
	}
	profiles := b.BuildProfiles(context.Background(), testReport(), graph.Empty(), holders)

	require.Len(t, profiles, 50)
	for i, p := range profiles {
		assert.Equal(t, holders[i].Owner, p.Address)
	}
}

func TestBuilder_ScoreBounds(t *testing.T) {
	source := NewStubTxSource()
	b := newTestBuilder(source)

	created := time.Now().Add(-48 * time.Hour)
	report := &token.TokenReport{Mint: "mint1", CreatedAt: created}

	txs := make([]token.Transaction, 30)
	for i := range txs {
		txs[i] = token.Transaction{
			Owner:     "whale",
			BlockTime: created.Unix() + int64(i),
			Lamports:  10_000_000_000,
		}
	}
	source.SetTransactions("whale", txs)

	g := insiderGraph("whale")
	holders := []token.Holder{{Owner: "whale", Pct: 0.5, Amount: 10_000_000}}
	profiles := b.BuildProfiles(context.Background(), report, g, holders)

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.GreaterOrEqual(t, p.RiskScore, 0)
	assert.LessOrEqual(t, p.RiskScore, 100)
	assert.GreaterOrEqual(t, p.InsiderProbability, 0)
	assert.LessOrEqual(t, p.InsiderProbability, 100)
	assert.GreaterOrEqual(t, p.BehaviorRiskScore, 0)
	assert.LessOrEqual(t, p.BehaviorRiskScore, 100)
}

func TestMapTxSource_MissingWalletIsEmptyNotError(t *testing.T) {
	source := NewMapTxSource(nil)
	txs, err := source.WalletTransactions(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, txs)
}
