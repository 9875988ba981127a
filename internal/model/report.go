package model

// ChangeCandidate scores one output's likelihood of being the sender's
// change. Candidates are advisory evidence and never promote an address into
// a cluster.
type ChangeCandidate struct {
	TxID        string   `json:"txid"`
	OutputIndex uint32   `json:"output_index"`
	Address     string   `json:"address,omitempty"`
	ValueSats   int64    `json:"value_sats"`
	Score       float64  `json:"score"`
	Flags       []string `json:"flags,omitempty"`
}

// ClusterGroup is one union-find partition keyed by its representative.
type ClusterGroup struct {
	Root    string   `json:"root"`
	Members []string `json:"members"`
}

// TxFlag summarizes the per-transaction findings of a batch run. Err records
// a failed fetch; such transactions contribute nothing else to the run.
type TxFlag struct {
	TxID          string            `json:"txid"`
	Coinjoin      bool              `json:"coinjoin"`
	CoinjoinScore float64           `json:"coinjoin_score"`
	ChangeScores  []ChangeCandidate `json:"change_scores,omitempty"`
	Err           string            `json:"error,omitempty"`
}

// BatchReport aggregates everything a batch analysis produced.
type BatchReport struct {
	Flags     []TxFlag        `json:"tx_flags"`
	Bipartite []BipartiteEdge `json:"bipartite_edges"`
	Projected []ProjectedEdge `json:"projected_edges"`
	Clusters  []ClusterGroup  `json:"clusters"`
}

// ClusterReport describes the partition grown around a seed address together
// with the separately-tracked, unconfirmed change candidates.
type ClusterReport struct {
	Seed       string            `json:"seed"`
	TxsScanned int               `json:"txs_scanned"`
	Members    []string          `json:"members"`
	Candidates []ChangeCandidate `json:"change_candidates,omitempty"`
	SeedStats  *AddressStats     `json:"seed_stats,omitempty"`
}
