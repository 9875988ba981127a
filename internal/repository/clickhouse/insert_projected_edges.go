package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
	"github.com/forensiclabs/utxoscope-backend/pkg/safe"
)

// InsertProjectedEdges stores the derived address-to-address edges of one run.
func (r *Repository) InsertProjectedEdges(ctx context.Context, runID string, edges []model.ProjectedEdge) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_projected_edges", err, start)
	}()

	if len(edges) == 0 {
		return nil
	}

	const query = `
INSERT INTO evidence_projected_edges (
	run_id,
	txid,
	from_address,
	to_address,
	value_sats
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare projected edges batch: %w", err)
	}

	for _, edge := range edges {
		var sats uint64
		if sats, err = safe.Uint64(edge.ValueSats); err != nil {
			return fmt.Errorf("convert edge value: %w", err)
		}
		if err = batch.Append(
			runID,
			edge.TxID,
			edge.FromAddress,
			edge.ToAddress,
			sats,
		); err != nil {
			return fmt.Errorf("append projected edge: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert projected edges: %w", err)
	}
	return nil
}
