package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// InsertClusterMembers stores one row per clustered address, flattening each
// group under its representative root.
func (r *Repository) InsertClusterMembers(ctx context.Context, runID string, groups []model.ClusterGroup) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_cluster_members", err, start)
	}()

	if len(groups) == 0 {
		return nil
	}

	const query = `
INSERT INTO evidence_cluster_members (
	run_id,
	cluster_root,
	member_address
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare cluster members batch: %w", err)
	}

	for _, group := range groups {
		for _, member := range group.Members {
			if err = batch.Append(runID, group.Root, member); err != nil {
				return fmt.Errorf("append cluster member: %w", err)
			}
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert cluster members: %w", err)
	}
	return nil
}
