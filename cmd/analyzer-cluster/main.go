// Package main grows an input-ownership cluster around a seed address.
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
	"github.com/forensiclabs/utxoscope-backend/internal/model"
	"github.com/forensiclabs/utxoscope-backend/internal/provider/esplora"
	"github.com/forensiclabs/utxoscope-backend/internal/repository/clickhouse"
)

type config struct {
	EsploraURL    string        `long:"esplora-url" env:"ANALYZER_CLUSTER_ESPLORA_URL" description:"Esplora API base URL" default:"https://blockstream.info/api"`
	CallDelay     time.Duration `long:"call-delay" env:"ANALYZER_CLUSTER_CALL_DELAY" description:"pause between successive provider calls" default:"250ms"`
	MaxRPS        int           `long:"max-rps" env:"ANALYZER_CLUSTER_MAX_RPS" description:"request rate cap against the Esplora instance" default:"4"`
	OutputDir     string        `long:"output-dir" env:"ANALYZER_CLUSTER_OUTPUT_DIR" description:"root directory for CSV evidence runs" default:"outputs"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"ANALYZER_CLUSTER_CLICKHOUSE_DSN" description:"optional ClickHouse DSN for the evidence archive"`
	MaxTxs        int           `long:"max-txs" env:"ANALYZER_CLUSTER_MAX_TXS" description:"maximum history transactions to scan" default:"200"`
	Args          struct {
		Address string `positional-arg-name:"address" description:"seed address"`
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
		logger.Fatal("cluster analyzer failed", zap.Error(err))
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

	driver, err := analysis.NewClusterDriver(client, metrics.NewAnalysis(), cfg.CallDelay, logger)
	if err != nil {
		return fmt.Errorf("init cluster driver: %w", err)
	}

	report, err := driver.Cluster(ctx, cfg.Args.Address, cfg.MaxTxs)
	if err != nil {
		return fmt.Errorf("cluster from address: %w", err)
	}

	fields := []zap.Field{
		zap.String("seed", report.Seed),
		zap.Int("txs_scanned", report.TxsScanned),
		zap.Int("members", len(report.Members)),
		zap.Int("change_candidates", len(report.Candidates)),
	}
	if report.SeedStats != nil {
		fields = append(fields, zap.Int64("seed_tx_count", report.SeedStats.TxCount))
	}
	logger.Info("cluster grown", fields...)

	writer, err := export.NewRunWriter(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("init run writer: %w", err)
	}
	run, err := writer.NewRun()
	if err != nil {
		return fmt.Errorf("create run directory: %w", err)
	}
	if err := run.WriteClusterReport(report); err != nil {
		return fmt.Errorf("write evidence files: %w", err)
	}
	logger.Info("evidence written", zap.String("run_id", run.ID()), zap.String("dir", run.Dir()))

	if cfg.ClickhouseDSN != "" {
		if err := archive(ctx, cfg.ClickhouseDSN, run.ID(), report); err != nil {
			return fmt.Errorf("archive evidence: %w", err)
		}
		logger.Info("evidence archived", zap.String("run_id", run.ID()))
	}
	return nil
}

func archive(ctx context.Context, dsn, runID string, report model.ClusterReport) error {
	repo, err := clickhouse.NewRepository(dsn, metrics.NewEvidenceArchive())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	groups := []model.ClusterGroup{{Root: report.Seed, Members: report.Members}}
	if err := repo.InsertClusterMembers(ctx, runID, groups); err != nil {
		return err
	}
	return repo.InsertChangeCandidates(ctx, runID, report.Candidates)
}
