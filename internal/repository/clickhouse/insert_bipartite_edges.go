package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
	"github.com/forensiclabs/utxoscope-backend/pkg/safe"
)

// InsertBipartiteEdges stores the raw address/transaction edges of one run.
func (r *Repository) InsertBipartiteEdges(ctx context.Context, runID string, edges []model.BipartiteEdge) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_bipartite_edges", err, start)
	}()

	if len(edges) == 0 {
		return nil
	}

	const query = `
INSERT INTO evidence_bipartite_edges (
	run_id,
	kind,
	from_node,
	to_node,
	value_sats,
	txid
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare bipartite edges batch: %w", err)
	}

	for _, edge := range edges {
		var sats uint64
		if sats, err = safe.Uint64(edge.ValueSats); err != nil {
			return fmt.Errorf("convert edge value: %w", err)
		}
		if err = batch.Append(
			runID,
			string(edge.Kind),
			edge.From,
			edge.To,
			sats,
			edge.TxID,
		); err != nil {
			return fmt.Errorf("append bipartite edge: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert bipartite edges: %w", err)
	}
	return nil
}
