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

// HistoryCache memoizes address-history lookups for a single analysis run.
// Construct a fresh cache per run; a shared one grows without bound and
// serves stale pages across runs.
type HistoryCache struct {
	pages map[string][]model.Transaction
}

// NewHistoryCache returns an empty run-scoped cache.
func NewHistoryCache() *HistoryCache {
	return &HistoryCache{pages: make(map[string][]model.Transaction)}
}

func (c *HistoryCache) get(address string) ([]model.Transaction, bool) {
	txs, ok := c.pages[address]
	return txs, ok
}

func (c *HistoryCache) put(address string, txs []model.Transaction) {
	c.pages[address] = txs
}

// HistoryResolver walks an address's paginated transaction history,
// most recent first.
type HistoryResolver struct {
	src       Source
	logger    *zap.Logger
	callDelay time.Duration
}

// NewHistoryResolver constructs a history resolver. callDelay paces
// successive page fetches.
func NewHistoryResolver(src Source, callDelay time.Duration, logger *zap.Logger) (*HistoryResolver, error) {
	if src == nil {
		return nil, errors.New("source is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if callDelay < 0 {
		callDelay = 0
	}
	return &HistoryResolver{
		src:       src,
		logger:    logger.Named("history_resolver"),
		callDelay: callDelay,
	}, nil
}

// History returns up to maxTxs confirmed transactions touching address,
// most recent first. A page failure mid-walk degrades to the transactions
// collected so far; a failure before anything was collected is returned to
// the caller. cache may be nil to disable memoization.
func (r *HistoryResolver) History(ctx context.Context, cache *HistoryCache, address string, maxTxs int) ([]model.Transaction, error) {
	if address == "" {
		return nil, errors.New("address is required")
	}
	if maxTxs < 1 {
		return nil, fmt.Errorf("max txs must be positive, got %d", maxTxs)
	}
	if cache != nil {
		if txs, ok := cache.get(address); ok {
			if len(txs) > maxTxs {
				txs = txs[:maxTxs]
			}
			return txs, nil
		}
	}

	collected := make([]model.Transaction, 0, maxTxs)
	cursor := ""
	for len(collected) < maxTxs {
		page, err := r.src.AddressTransactions(ctx, address, cursor)
		if err != nil {
			if len(collected) == 0 {
				return nil, fmt.Errorf("fetch address transactions: %w", err)
			}
			r.logger.Warn("history page fetch failed, keeping partial window",
				zap.String("address", address),
				zap.Int("collected", len(collected)),
				zap.Error(err))
			break
		}
		for _, tx := range page.Txs {
			if !tx.Confirmed {
				continue
			}
			collected = append(collected, tx)
			if len(collected) >= maxTxs {
				break
			}
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor

		if err := clock.SleepWithContext(ctx, r.callDelay); err != nil {
			return collected, err
		}
	}

	if cache != nil {
		cache.put(address, collected)
	}
	return collected, nil
}
