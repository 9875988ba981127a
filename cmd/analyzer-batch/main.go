// Package main runs the batch transaction analyzer: coinjoin and change
// heuristics, graph building, and input clustering over a txid list.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
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
	EsploraURL    string        `long:"esplora-url" env:"ANALYZER_BATCH_ESPLORA_URL" description:"Esplora API base URL" default:"https://blockstream.info/api"`
	CallDelay     time.Duration `long:"call-delay" env:"ANALYZER_BATCH_CALL_DELAY" description:"pause between successive provider calls" default:"250ms"`
	MaxRPS        int           `long:"max-rps" env:"ANALYZER_BATCH_MAX_RPS" description:"request rate cap against the Esplora instance" default:"4"`
	OutputDir     string        `long:"output-dir" env:"ANALYZER_BATCH_OUTPUT_DIR" description:"root directory for CSV evidence runs" default:"outputs"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"ANALYZER_BATCH_CLICKHOUSE_DSN" description:"optional ClickHouse DSN for the evidence archive"`
	TxIDsFile     string        `long:"txids-file" env:"ANALYZER_BATCH_TXIDS_FILE" description:"file with one txid per line"`
	Args          struct {
		TxIDs []string `positional-arg-name:"txid" description:"transaction ids to analyze"`
	} `positional-args:"yes"`
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
		logger.Fatal("batch analyzer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	txids := append([]string(nil), cfg.Args.TxIDs...)
	if cfg.TxIDsFile != "" {
		fromFile, err := readTxIDsFile(cfg.TxIDsFile)
		if err != nil {
			return err
		}
		txids = append(txids, fromFile...)
	}
	if len(txids) == 0 {
		return errors.New("at least one txid is required")
	}

	client, err := esplora.NewClient(esplora.Config{
		BaseURL: cfg.EsploraURL,
		MaxRPS:  cfg.MaxRPS,
	}, metrics.NewEsploraClient())
	if err != nil {
		return fmt.Errorf("init esplora client: %w", err)
	}

	analyzer, err := analysis.NewBatchAnalyzer(client, metrics.NewAnalysis(), cfg.CallDelay, logger)
	if err != nil {
		return fmt.Errorf("init batch analyzer: %w", err)
	}

	report, err := analyzer.Analyze(ctx, txids)
	if err != nil {
		return fmt.Errorf("analyze transactions: %w", err)
	}

	writer, err := export.NewRunWriter(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("init run writer: %w", err)
	}
	run, err := writer.NewRun()
	if err != nil {
		return fmt.Errorf("create run directory: %w", err)
	}
	if err := run.WriteBatchReport(report); err != nil {
		return fmt.Errorf("write evidence files: %w", err)
	}
	logger.Info("evidence written",
		zap.String("run_id", run.ID()),
		zap.String("dir", run.Dir()),
		zap.Int("transactions", len(report.Flags)),
		zap.Int("clusters", len(report.Clusters)),
	)

	if cfg.ClickhouseDSN != "" {
		if err := archive(ctx, cfg.ClickhouseDSN, run.ID(), report); err != nil {
			return fmt.Errorf("archive evidence: %w", err)
		}
		logger.Info("evidence archived", zap.String("run_id", run.ID()))
	}
	return nil
}

func archive(ctx context.Context, dsn, runID string, report model.BatchReport) error {
	repo, err := clickhouse.NewRepository(dsn, metrics.NewEvidenceArchive())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	if err := repo.InsertBipartiteEdges(ctx, runID, report.Bipartite); err != nil {
		return err
	}
	if err := repo.InsertProjectedEdges(ctx, runID, report.Projected); err != nil {
		return err
	}
	if err := repo.InsertClusterMembers(ctx, runID, report.Clusters); err != nil {
		return err
	}
	return repo.InsertChangeCandidates(ctx, runID, changeCandidates(report.Flags))
}

func changeCandidates(flags []model.TxFlag) []model.ChangeCandidate {
	var candidates []model.ChangeCandidate
	for _, flag := range flags {
		candidates = append(candidates, flag.ChangeScores...)
	}
	return candidates
}

func readTxIDsFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read txids file: %w", err)
	}

	var txids []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		txids = append(txids, line)
	}
	return txids, nil
}
