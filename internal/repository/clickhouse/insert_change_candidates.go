package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
	"github.com/forensiclabs/utxoscope-backend/pkg/safe"
)

// InsertChangeCandidates stores scored change outputs. Scores from the
// detailed heuristic may be negative and are kept as-is.
func (r *Repository) InsertChangeCandidates(ctx context.Context, runID string, candidates []model.ChangeCandidate) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_change_candidates", err, start)
	}()

	if len(candidates) == 0 {
		return nil
	}

	const query = `
INSERT INTO evidence_change_candidates (
	run_id,
	txid,
	output_index,
	address,
	value_sats,
	score,
	flags
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare change candidates batch: %w", err)
	}

	for _, candidate := range candidates {
		var sats uint64
		if sats, err = safe.Uint64(candidate.ValueSats); err != nil {
			return fmt.Errorf("convert candidate value: %w", err)
		}
		if err = batch.Append(
			runID,
			candidate.TxID,
			candidate.OutputIndex,
			candidate.Address,
			sats,
			candidate.Score,
			candidate.Flags,
		); err != nil {
			return fmt.Errorf("append change candidate: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert change candidates: %w", err)
	}
	return nil
}
