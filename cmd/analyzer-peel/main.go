// Package main traces and scores one peel chain from a starting output.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/forensiclabs/utxoscope-backend/internal/analysis"
	"github.com/forensiclabs/utxoscope-backend/internal/export"
	"github.com/forensiclabs/utxoscope-backend/internal/metrics"
	"github.com/forensiclabs/utxoscope-backend/internal/provider/esplora"
	"github.com/forensiclabs/utxoscope-backend/internal/repository/clickhouse"
)

type config struct {
	EsploraURL    string        `long:"esplora-url" env:"ANALYZER_PEEL_ESPLORA_URL" description:"Esplora API base URL" default:"https://blockstream.info/api"`
	CallDelay     time.Duration `long:"call-delay" env:"ANALYZER_PEEL_CALL_DELAY" description:"pause between successive provider calls" default:"250ms"`
	MaxRPS        int           `long:"max-rps" env:"ANALYZER_PEEL_MAX_RPS" description:"request rate cap against the Esplora instance" default:"4"`
	OutputDir     string        `long:"output-dir" env:"ANALYZER_PEEL_OUTPUT_DIR" description:"root directory for CSV evidence runs" default:"outputs"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"ANALYZER_PEEL_CLICKHOUSE_DSN" description:"optional ClickHouse DSN for the evidence archive"`
	Vout          uint32        `long:"vout" env:"ANALYZER_PEEL_VOUT" description:"output index to start from" default:"0"`
	MaxHops       int           `long:"max-hops" env:"ANALYZER_PEEL_MAX_HOPS" description:"maximum hops to trace" default:"8"`
	ForceVout     bool          `long:"force-vout" env:"ANALYZER_PEEL_FORCE_VOUT" description:"always resolve the hop value from the funding transaction"`
	Args          struct {
		TxID string `positional-arg-name:"txid" description:"transaction id to start from"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("peel analyzer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	client, err := esplora.NewClient(esplora.Config{
		BaseURL: cfg.EsploraURL,
		MaxRPS:  cfg.MaxRPS,
	}, metrics.NewEsploraClient())
	if err != nil {
		return fmt.Errorf("init esplora client: %w", err)
	}

	analyzer, err := analysis.NewPeelAnalyzer(client, metrics.NewAnalysis(), cfg.CallDelay, logger)
	if err != nil {
		return fmt.Errorf("init peel analyzer: %w", err)
	}

	report, err := analyzer.Analyze(ctx, analysis.TraceParams{
		TxID:      cfg.Args.TxID,
		Vout:      cfg.Vout,
		MaxHops:   cfg.MaxHops,
		ForceVout: cfg.ForceVout,
	})
	if err != nil {
		return fmt.Errorf("trace peel chain: %w", err)
	}

	for i, hop := range report.Hops {
		logger.Info("hop",
			zap.Int("index", i),
			zap.String("from_tx", hop.FromTx),
			zap.Uint32("from_vout", hop.FromOutputIndex),
			zap.Int64("value_sats", hop.ValueSats),
			zap.String("value_source", hop.ValueSource),
			zap.Bool("spent", hop.Spent),
			zap.String("spent_in_tx", hop.SpentInTx),
			zap.String("spent_to_address", hop.SpentToAddress),
			zap.String("error", hop.Err),
		)
	}
	logger.Info("peel verdict",
		zap.Float64("score", report.Score.Score),
		zap.String("interpretation", report.Score.Interpretation),
		zap.Int("hops", len(report.Hops)),
	)

	writer, err := export.NewRunWriter(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("init run writer: %w", err)
	}
	run, err := writer.NewRun()
	if err != nil {
		return fmt.Errorf("create run directory: %w", err)
	}
	if err := run.WritePeelReport(report); err != nil {
		return fmt.Errorf("write evidence files: %w", err)
	}
	logger.Info("evidence written", zap.String("run_id", run.ID()), zap.String("dir", run.Dir()))

	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewEvidenceArchive())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		if err := repo.InsertPeelHops(ctx, run.ID(), report.Hops); err != nil {
			return fmt.Errorf("archive evidence: %w", err)
		}
		logger.Info("evidence archived", zap.String("run_id", run.ID()))
	}
	return nil
}
