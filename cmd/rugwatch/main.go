package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rugwatch/rugwatch/internal/config"
	"github.com/rugwatch/rugwatch/internal/graph"
	"github.com/rugwatch/rugwatch/internal/profile"
	"github.com/rugwatch/rugwatch/internal/scoring"
	"github.com/rugwatch/rugwatch/internal/token"
	"github.com/rugwatch/rugwatch/internal/tokenomics"
)

// AnalysisResult is the document written to stdout.
type AnalysisResult struct {
	Token          string                `json:"token"`
	Creator        string                `json:"creator"`
	WalletProfiles []token.WalletProfile `json:"walletProfiles"`
	Tokenomics     tokenomics.Summary    `json:"tokenomics"`
	LiquidityEvent tokenomics.Event      `json:"liquidityEvent"`
}

func main() {
	// 1. Parse flags.
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	reportPath := flag.String("report", "", "Path to token report JSON (required)")
	graphPath := flag.String("graph", "", "Path to insider graph JSON")
	lockersPath := flag.String("lockers", "", "Path to lockers JSON")
	txPath := flag.String("transactions", "", "Path to per-wallet transactions JSON (object keyed by wallet)")
	snapshotsPath := flag.String("snapshots", "", "Path to liquidity snapshots JSON (newest first)")
	flag.Parse()

	// 2. Load configuration.
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: failed to load config from %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// 3. Setup logging. Results own stdout, logs go to stderr.
	setupLogging(cfg.General)

	log.Info().
		Str("instance_id", cfg.General.InstanceID).
		Str("environment", cfg.General.Environment).
		Msg("rugwatch risk engine starting")

	if *reportPath == "" {
		log.Fatal().Msg("-report is required")
	}

	// 4. Load inputs.
	report := &token.TokenReport{}
	if err := readJSON(*reportPath, report); err != nil {
		log.Fatal().Err(err).Str("path", *reportPath).Msg("failed to load token report")
	}

	insiders := loadGraph(*graphPath)

	var lockers *tokenomics.LockersData
	if *lockersPath != "" {
		l := &tokenomics.LockersData{}
		if err := readJSON(*lockersPath, l); err != nil {
			log.Warn().Err(err).Msg("lockers data unavailable, defaulting to unlocked")
		} else {
			lockers = l
		}
	}

	txs := make(map[string][]token.Transaction)
	if *txPath != "" {
		if err := readJSON(*txPath, &txs); err != nil {
			log.Warn().Err(err).Msg("transactions unavailable, profiles degrade to empty history")
			txs = make(map[string][]token.Transaction)
		}
	}

	var snapshots []token.LiquiditySnapshot
	if *snapshotsPath != "" {
		if err := readJSON(*snapshotsPath, &snapshots); err != nil {
			log.Warn().Err(err).Msg("snapshots unavailable, liquidity detection has no history")
			snapshots = nil
		}
	}

	// 5. Build engine components.
	riskScorer := scoring.NewRiskScorer(scoring.RiskConfig{
		HighOwnershipPct:  cfg.Scoring.HighOwnershipPct,
		LargeAmount:       cfg.Scoring.LargeAmount,
		RecentWindowHours: cfg.Scoring.RecentWindowHours,
		RecentTxThreshold: cfg.Scoring.RecentTxThreshold,
	})
	insiderScorer := scoring.NewInsiderScorer(scoring.InsiderConfig{
		EventWindowSecs:     cfg.Scoring.EventWindowSecs,
		TimedTxThreshold:    cfg.Scoring.TimedTxThreshold,
		ConnectionThreshold: cfg.Scoring.ConnectionThreshold,
	})
	behaviorScorer := scoring.NewBehaviorScorer(scoring.BehaviorConfig{
		HighTxPerDay:     cfg.Scoring.HighTxPerDay,
		LargeVolumeSOL:   cfg.Scoring.LargeVolumeSOL,
		EarlyWindowSecs:  cfg.Scoring.EarlyWindowSecs,
		EarlyTxThreshold: cfg.Scoring.EarlyTxThreshold,
	})
	analyzer := tokenomics.NewAnalyzer(tokenomics.AnalyzerConfig{
		MinLockedFraction: cfg.Tokenomics.MinLockedFraction,
		MinLiquidityUSD:   cfg.Tokenomics.MinLiquidityUSD,
		MaxTransferFee:    cfg.Tokenomics.MaxTransferFee,
	})
	detector := tokenomics.NewDetector(tokenomics.DetectorConfig{
		DropAlertPct: cfg.Detector.DropAlertPct,
		DropHighPct:  cfg.Detector.DropHighPct,
	})
	builder := profile.NewBuilder(profile.BuilderConfig{
		MaxConcurrentFetches:  cfg.Profile.MaxConcurrentFetches,
		LargeOutflowThreshold: cfg.Profile.LargeOutflowThreshold,
	}, profile.NewMapTxSource(txs), riskScorer, insiderScorer, behaviorScorer)

	// 6. Run the engine.
	ctx := context.Background()
	result := AnalysisResult{
		Token:          report.Mint,
		Creator:        report.Creator,
		Tokenomics:     analyzer.Analyze(report, lockers),
		LiquidityEvent: detector.Detect(report, snapshots),
		WalletProfiles: builder.BuildProfiles(ctx, report, insiders, report.TopHolders),
	}

	// 7. Emit the result document.
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("failed to encode result")
	}

	stats := builder.Stats()
	log.Info().
		Int64("profiles_built", stats.ProfilesBuilt).
		Int64("fetch_failures", stats.FetchFailures).
		Bool("liquidity_event", result.LiquidityEvent.Detected).
		Msg("rugwatch risk engine done")
}

// loadGraph reads the insider graph, substituting an empty graph when the
// provider output is absent or malformed rather than failing the run.
func loadGraph(path string) *graph.Graph {
	if path == "" {
		log.Warn().Msg("no insider graph supplied, using empty graph")
		return graph.Empty()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("insider graph unavailable, using empty graph")
		return graph.Empty()
	}
	g, err := graph.Parse(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("insider graph malformed, using empty graph")
		return graph.Empty()
	}
	return g
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func setupLogging(general config.GeneralConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro
	level, err := zerolog.ParseLevel(general.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if general.LogFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Str("service", "rugwatch").
			Str("instance", general.InstanceID).Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).
			With().Timestamp().Str("service", "rugwatch").
			Str("instance", general.InstanceID).Logger()
	}
}
