package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/forensiclabs/utxoscope-backend/internal/clock"
	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// BatchAnalyzer runs the per-transaction heuristics over an explicit txid
// list and aggregates the evidence: coinjoin and change scores per
// transaction, the bipartite and projected edge sets, and the common-input
// clusters.
type BatchAnalyzer struct {
	src       Source
	metrics   Metrics
	logger    *zap.Logger
	callDelay time.Duration
}

// NewBatchAnalyzer constructs a batch analyzer. callDelay paces successive
// transaction fetches.
func NewBatchAnalyzer(src Source, metrics Metrics, callDelay time.Duration, logger *zap.Logger) (*BatchAnalyzer, error) {
	if src == nil {
		return nil, errors.New("source is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if callDelay < 0 {
		callDelay = 0
	}
	return &BatchAnalyzer{
		src:       src,
		metrics:   metrics,
		logger:    logger.Named("batch_analyzer"),
		callDelay: callDelay,
	}, nil
}

// Analyze processes the given transactions in order. A transaction that
// cannot be fetched is recorded with an error tag and contributes nothing
// else; the run continues.
func (a *BatchAnalyzer) Analyze(ctx context.Context, txids []string) (report model.BatchReport, err error) {
	started := time.Now()
	defer func() { a.metrics.ObserveRun("batch", err, started) }()

	cleaned := make([]string, 0, len(txids))
	for _, raw := range txids {
		if txid := strings.TrimSpace(raw); txid != "" {
			cleaned = append(cleaned, txid)
		}
	}
	if len(cleaned) == 0 {
		return model.BatchReport{}, errors.New("at least one txid is required")
	}

	clusters := NewClusterSet()
	builder := NewGraphBuilder()
	flags := make([]model.TxFlag, 0, len(cleaned))

	for _, txid := range cleaned {
		tx, fetchErr := a.src.Transaction(ctx, txid)
		if fetchErr != nil {
			a.logger.Warn("transaction fetch failed",
				zap.String("txid", txid),
				zap.Error(fetchErr))
			flags = append(flags, model.TxFlag{TxID: txid, Err: "fetch_failed"})
		} else {
			coinjoin, coinjoinScore := DetectCoinjoin(tx)
			flags = append(flags, model.TxFlag{
				TxID:          txid,
				Coinjoin:      coinjoin,
				CoinjoinScore: coinjoinScore,
				ChangeScores:  ScoreOutputsSimple(tx),
			})
			builder.AddTransaction(tx)
			clusters.UnionInputs(inputAddresses(tx))
		}

		if err = clock.SleepWithContext(ctx, a.callDelay); err != nil {
			return model.BatchReport{}, err
		}
	}

	edges := builder.Edges()
	report = model.BatchReport{
		Flags:     flags,
		Bipartite: edges,
		Projected: ProjectEdges(edges),
		Clusters:  clusters.Groups(),
	}
	a.logger.Info("batch analysis complete",
		zap.Int("transactions", len(flags)),
		zap.Int("bipartite_edges", len(edges)),
		zap.Int("projected_edges", len(report.Projected)),
		zap.Int("clusters", len(report.Clusters)))
	return report, nil
}

// inputAddresses extracts prevout addresses in input order, empty strings
// standing in for unknown prevouts.
func inputAddresses(tx model.Transaction) []string {
	addrs := make([]string, 0, len(tx.Inputs))
	for _, in := range tx.Inputs {
		addrs = append(addrs, in.PrevoutAddress)
	}
	return addrs
}
