package model

// Provenance tags recording which fallback produced a hop's value.
const (
	ValueSourceOutspends          = "outspends"
	ValueSourceTxVout             = "tx_vout"
	ValueSourceTxVoutMissingIndex = "tx_vout_missing_index"
	ValueSourceTxVoutError        = "tx_vout_error"
	ValueSourceProxySpentLargest  = "proxy_spent_largest"
	ValueSourceProxyError         = "proxy_error"
	ValueSourceOutspendsError     = "outspends_error"
	ValueSourceOutOfRange         = "vout_index_out_of_range"
	ValueSourceUnknown            = "unknown"
)

// PeelHop records one step of a traced spend chain. Err is set when the spend
// lookup for this hop failed; the chain terminates on such hops.
type PeelHop struct {
	FromTx            string  `json:"from_tx"`
	FromOutputIndex   uint32  `json:"from_output_index"`
	ValueSats         int64   `json:"value_sats"`
	ValueSource       string  `json:"value_source"`
	Spent             bool    `json:"spent"`
	SpentInTx         string  `json:"spent_in_tx,omitempty"`
	SpentInInputIndex *uint32 `json:"spent_in_input_index,omitempty"`
	SpentToAddress    string  `json:"spent_to_address,omitempty"`
	Err               string  `json:"error,omitempty"`
}

// PeelBreakdown exposes every component feeding a peel score so a reviewer
// can audit how the number was reached.
type PeelBreakdown struct {
	Reason            string    `json:"reason,omitempty"`
	HopCount          int       `json:"hop_count"`
	ValueCount        int       `json:"value_count"`
	Monotonicity      float64   `json:"monotonicity"`
	RatioStability    float64   `json:"ratio_stability"`
	SmallPeelPresence float64   `json:"small_peel_presence"`
	HopFactor         float64   `json:"hop_factor"`
	Ratios            []float64 `json:"ratios,omitempty"`
	ValueSources      []string  `json:"value_sources,omitempty"`
}

// PeelScore is the scored verdict over a traced chain.
type PeelScore struct {
	Score          float64       `json:"score"`
	Interpretation string        `json:"interpretation"`
	Breakdown      PeelBreakdown `json:"breakdown"`
}

// PeelReport bundles a traced chain with its score and the trace parameters.
type PeelReport struct {
	StartTxID string    `json:"start_txid"`
	StartVout uint32    `json:"start_vout"`
	MaxHops   int       `json:"max_hops"`
	ForceVout bool      `json:"force_vout"`
	Hops      []PeelHop `json:"hops"`
	Score     PeelScore `json:"score"`
}
