package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/forensiclabs/utxoscope-backend/internal/clock"
	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// ClusterDriver grows a cluster around a seed address: common-input unions
// over the seed's transaction history plus separately-tracked change
// candidates from transactions the seed funded. Candidates never join the
// cluster; only the common-input signal merges partitions.
type ClusterDriver struct {
	src       Source
	history   *HistoryResolver
	metrics   Metrics
	logger    *zap.Logger
	callDelay time.Duration
}

// NewClusterDriver constructs a cluster driver. callDelay paces successive
// provider calls.
func NewClusterDriver(src Source, metrics Metrics, callDelay time.Duration, logger *zap.Logger) (*ClusterDriver, error) {
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	history, err := NewHistoryResolver(src, callDelay, logger)
	if err != nil {
		return nil, fmt.Errorf("create history resolver: %w", err)
	}
	if callDelay < 0 {
		callDelay = 0
	}
	return &ClusterDriver{
		src:       src,
		history:   history,
		metrics:   metrics,
		logger:    logger.Named("cluster_driver"),
		callDelay: callDelay,
	}, nil
}

// Cluster scans up to maxTxs confirmed transactions around seed. Membership
// comes from the union-find partition containing the seed; every output of a
// seed-funded transaction scoring at or above the candidate threshold is
// reported as possible change, unconfirmed. Seed stats are attached
// best-effort.
func (d *ClusterDriver) Cluster(ctx context.Context, seed string, maxTxs int) (report model.ClusterReport, err error) {
	started := time.Now()
	defer func() { d.metrics.ObserveRun("cluster", err, started) }()

	if seed == "" {
		return model.ClusterReport{}, errors.New("seed address is required")
	}
	if maxTxs < 1 {
		return model.ClusterReport{}, fmt.Errorf("max txs must be positive, got %d", maxTxs)
	}

	cache := NewHistoryCache()
	txs, err := d.history.History(ctx, cache, seed, maxTxs)
	if err != nil {
		return model.ClusterReport{}, fmt.Errorf("resolve seed history: %w", err)
	}

	clusters := NewClusterSet()
	for _, tx := range txs {
		clusters.UnionInputs(inputAddresses(tx))
	}

	var candidates []model.ChangeCandidate
	for _, tx := range txs {
		if !spendsFrom(tx, seed) {
			continue
		}
		for _, candidate := range ScoreOutputsDetailed(tx) {
			if candidate.Score >= changeCandidateThreshold {
				candidates = append(candidates, candidate)
			}
		}
	}

	report = model.ClusterReport{
		Seed:       seed,
		TxsScanned: len(txs),
		Members:    clusters.Members(seed),
		Candidates: candidates,
	}

	if err := clock.SleepWithContext(ctx, d.callDelay); err != nil {
		return report, err
	}
	stats, statsErr := d.src.AddressStats(ctx, seed)
	if statsErr != nil {
		d.logger.Debug("seed stats fetch failed",
			zap.String("address", seed),
			zap.Error(statsErr))
	} else {
		report.SeedStats = &stats
	}

	d.logger.Info("cluster analysis complete",
		zap.String("seed", seed),
		zap.Int("txs_scanned", report.TxsScanned),
		zap.Int("members", len(report.Members)),
		zap.Int("change_candidates", len(report.Candidates)))
	return report, nil
}

// spendsFrom reports whether address funds any input of the transaction.
func spendsFrom(tx model.Transaction, address string) bool {
	for _, in := range tx.Inputs {
		if in.PrevoutAddress == address {
			return true
		}
	}
	return false
}
