package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
	"github.com/forensiclabs/utxoscope-backend/pkg/safe"
)

// InsertPeelHops stores a traced chain with an explicit hop index so the
// archive preserves trace order.
func (r *Repository) InsertPeelHops(ctx context.Context, runID string, hops []model.PeelHop) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_peel_hops", err, start)
	}()

	if len(hops) == 0 {
		return nil
	}

	const query = `
INSERT INTO evidence_peel_hops (
	run_id,
	hop_index,
	from_tx,
	from_vout,
	value_sats,
	value_source,
	spent,
	spent_in_tx,
	spent_in_input_index,
	spent_to_address,
	error
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare peel hops batch: %w", err)
	}

	for i, hop := range hops {
		var index uint32
		if index, err = safe.Uint32(i); err != nil {
			return fmt.Errorf("convert hop index: %w", err)
		}
		var sats uint64
		if sats, err = safe.Uint64(hop.ValueSats); err != nil {
			return fmt.Errorf("convert hop value: %w", err)
		}
		if err = batch.Append(
			runID,
			index,
			hop.FromTx,
			hop.FromOutputIndex,
			sats,
			hop.ValueSource,
			hop.Spent,
			hop.SpentInTx,
			hop.SpentInInputIndex,
			hop.SpentToAddress,
			hop.Err,
		); err != nil {
			return fmt.Errorf("append peel hop: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert peel hops: %w", err)
	}
	return nil
}
