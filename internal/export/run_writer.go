// Package export archives analysis reports as CSV evidence files, one
// directory per run.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
)

// Evidence file names inside a run directory.
const (
	FileBipartiteEdges     = "bipartite_edges.csv"
	FileProjectedEdges     = "evidence_address_to_address.csv"
	FileClusters           = "clusters.csv"
	FileTxFlags            = "tx_flags.csv"
	FileClustersFromSeed   = "clusters_from_address.csv"
	FilePeelChain          = "peel_chain.csv"
	runDirectoryPermission = 0o755
)

// RunWriter creates per-run evidence directories under a fixed root.
type RunWriter struct {
	root string
}

// NewRunWriter constructs a writer rooted at dir.
func NewRunWriter(dir string) (*RunWriter, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	return &RunWriter{root: dir}, nil
}

// NewRun allocates a fresh run directory named by a new run id.
func (w *RunWriter) NewRun() (*Run, error) {
	id := uuid.NewString()
	dir := filepath.Join(w.root, id)
	if err := os.MkdirAll(dir, runDirectoryPermission); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	return &Run{id: id, dir: dir}, nil
}

// Run is one analysis run's evidence directory.
type Run struct {
	id  string
	dir string
}

// ID returns the run identifier, shared with the ClickHouse archive.
func (r *Run) ID() string { return r.id }

// Dir returns the run directory path.
func (r *Run) Dir() string { return r.dir }

// WriteBatchReport archives a batch run: bipartite and projected edges,
// common-input clusters, and per-transaction flags.
func (r *Run) WriteBatchReport(report model.BatchReport) error {
	bipartite := make([][]string, 0, len(report.Bipartite))
	for _, edge := range report.Bipartite {
		bipartite = append(bipartite, []string{
			string(edge.Kind),
			edge.From,
			edge.To,
			strconv.FormatInt(edge.ValueSats, 10),
			edge.TxID,
		})
	}
	if err := r.writeFile(FileBipartiteEdges, []string{"type", "from", "to", "sats", "txid"}, bipartite); err != nil {
		return err
	}

	projected := make([][]string, 0, len(report.Projected))
	for _, edge := range report.Projected {
		projected = append(projected, []string{
			edge.TxID,
			edge.FromAddress,
			edge.ToAddress,
			strconv.FormatInt(edge.ValueSats, 10),
			formatBTC(edge.ValueSats),
		})
	}
	if err := r.writeFile(FileProjectedEdges, []string{"txid", "from", "to", "sats", "btc"}, projected); err != nil {
		return err
	}

	var clusters [][]string
	for _, group := range report.Clusters {
		for _, member := range group.Members {
			clusters = append(clusters, []string{group.Root, member})
		}
	}
	if err := r.writeFile(FileClusters, []string{"cluster_root", "member_address"}, clusters); err != nil {
		return err
	}

	flags := make([][]string, 0, len(report.Flags))
	for _, flag := range report.Flags {
		scores, err := json.Marshal(flag.ChangeScores)
		if err != nil {
			return fmt.Errorf("encode change scores for %s: %w", flag.TxID, err)
		}
		flags = append(flags, []string{
			flag.TxID,
			strconv.FormatBool(flag.Coinjoin),
			strconv.FormatFloat(flag.CoinjoinScore, 'f', 4, 64),
			string(scores),
			flag.Err,
		})
	}
	return r.writeFile(FileTxFlags, []string{"txid", "coinjoin", "coinjoin_score", "change_scores_json", "error"}, flags)
}

// WriteClusterReport archives the membership grown around a seed together
// with the unconfirmed change candidates, one row per address.
func (r *Run) WriteClusterReport(report model.ClusterReport) error {
	byAddress := make(map[string][]model.ChangeCandidate)
	for _, candidate := range report.Candidates {
		byAddress[candidate.Address] = append(byAddress[candidate.Address], candidate)
	}

	var rows [][]string
	seen := make(map[string]struct{}, len(report.Members))
	for _, member := range report.Members {
		rows = append(rows, clusterRow(member, byAddress[member]))
		seen[member] = struct{}{}
	}

	// Candidates outside the confirmed membership, in first-flagged order.
	for _, candidate := range report.Candidates {
		if _, ok := seen[candidate.Address]; ok {
			continue
		}
		seen[candidate.Address] = struct{}{}
		rows = append(rows, clusterRow(candidate.Address, byAddress[candidate.Address]))
	}

	return r.writeFile(FileClustersFromSeed,
		[]string{"address", "inferred_change_count", "possible_change", "flags"}, rows)
}

// WritePeelReport archives a traced chain, one row per hop.
func (r *Run) WritePeelReport(report model.PeelReport) error {
	rows := make([][]string, 0, len(report.Hops))
	for _, hop := range report.Hops {
		vin := ""
		if hop.SpentInInputIndex != nil {
			vin = strconv.FormatUint(uint64(*hop.SpentInInputIndex), 10)
		}
		rows = append(rows, []string{
			hop.FromTx,
			strconv.FormatUint(uint64(hop.FromOutputIndex), 10),
			strconv.FormatInt(hop.ValueSats, 10),
			formatBTC(hop.ValueSats),
			hop.ValueSource,
			strconv.FormatBool(hop.Spent),
			hop.SpentInTx,
			hop.SpentToAddress,
			vin,
			hop.Err,
		})
	}
	header := []string{
		"from_tx", "from_vout", "value_sats", "value_btc", "value_source",
		"spent", "spent_in_tx", "spent_addr", "spent_in_vin_index", "error",
	}
	return r.writeFile(FilePeelChain, header, rows)
}

func (r *Run) writeFile(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return f.Close()
}

func clusterRow(address string, candidates []model.ChangeCandidate) []string {
	possible := "no"
	if len(candidates) > 0 {
		possible = "yes"
	}
	return []string{
		address,
		strconv.Itoa(len(candidates)),
		possible,
		joinFlags(candidates),
	}
}

func joinFlags(candidates []model.ChangeCandidate) string {
	set := make(map[string]struct{})
	for _, candidate := range candidates {
		for _, flag := range candidate.Flags {
			set[flag] = struct{}{}
		}
	}
	if len(set) == 0 {
		return ""
	}
	flags := make([]string, 0, len(set))
	for flag := range set {
		flags = append(flags, flag)
	}
	sort.Strings(flags)
	return strings.Join(flags, ",")
}

func formatBTC(sats int64) string {
	return strconv.FormatFloat(btcutil.Amount(sats).ToBTC(), 'f', 8, 64)
}
